package keymap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tomlKeymap = `
name = "editor"
scope = "editor"

[[bindings]]
keys = "ctrl+s, cmd+s"
action = "file.save"
description = "Save"

[[bindings]]
keys = "ctrl+1"
action = "scope.set"
on = "keyup"
args = { scope = "one" }
`

const yamlKeymap = `
name: editor
scope: editor
bindings:
  - keys: "ctrl+s, cmd+s"
    action: file.save
    description: Save
  - keys: ctrl+1
    action: scope.set
    on: keyup
    args:
      scope: one
`

const jsonKeymap = `{
	"name": "editor",
	"scope": "editor",
	"bindings": [
		{"keys": "ctrl+s, cmd+s", "action": "file.save", "description": "Save"},
		{"keys": "ctrl+1", "action": "scope.set", "on": "keyup", "args": {"scope": "one"}}
	]
}`

func TestLoaderReaderFormats(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, tomlKeymap},
		{FormatYAML, yamlKeymap},
		{FormatJSON, jsonKeymap},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			km, err := NewLoader().LoadReader(tt.format, strings.NewReader(tt.data))
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}

			if km.Name != "editor" {
				t.Errorf("Name = %q, want %q", km.Name, "editor")
			}
			if km.Scope != "editor" {
				t.Errorf("Scope = %q, want %q", km.Scope, "editor")
			}
			if len(km.Bindings) != 2 {
				t.Fatalf("len(Bindings) = %d, want 2", len(km.Bindings))
			}

			b := km.Bindings[0]
			if b.Keys != "ctrl+s, cmd+s" || b.Action != "file.save" || b.Description != "Save" {
				t.Errorf("Bindings[0] = %+v", b)
			}

			b = km.Bindings[1]
			if b.On != OnKeyup {
				t.Errorf("Bindings[1].On = %q, want %q", b.On, OnKeyup)
			}
			if b.Args["scope"] != "one" {
				t.Errorf("Bindings[1].Args[scope] = %v, want %q", b.Args["scope"], "one")
			}
		})
	}
}

func TestLoaderParseError(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, "name = \n"},
		{FormatYAML, "bindings: [\n"},
		{FormatJSON, "{"},
		{FormatJSON, `{"name": "x", "unknown": 1}`},
	}

	for _, tt := range tests {
		_, err := NewLoader().LoadReader(tt.format, strings.NewReader(tt.data))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("LoadReader(%s, %q) error = %v, want *ParseError", tt.format, tt.data, err)
		}
	}
}

func TestLoaderTOMLPosition(t *testing.T) {
	_, err := NewLoader().LoadReader(FormatTOML, strings.NewReader("name = \"x\"\nbindings = oops\n"))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestLoaderValidates(t *testing.T) {
	_, err := NewLoader().LoadReader(FormatYAML, strings.NewReader("bindings:\n  - keys: a\n"))
	if !errors.Is(err, ErrEmptyAction) {
		t.Errorf("LoadReader() error = %v, want %v", err, ErrEmptyAction)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"a.YAML", FormatYAML, false},
		{"dir/a.yml", FormatYAML, false},
		{"a.toml", FormatTOML, false},
		{"a.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "global.yaml")
	writeFile(t, path, "bindings:\n  - keys: ctrl+q\n    action: app.quit\n")

	km, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if km.Name != "global" {
		t.Errorf("Name = %q, want %q (from file name)", km.Name, "global")
	}
	if km.Source != path {
		t.Errorf("Source = %q, want %q", km.Source, path)
	}

	if _, err := NewLoader().LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFile(missing) should fail")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.toml"), tomlKeymap)
	writeFile(t, filepath.Join(dir, "b.json"), jsonKeymap)
	writeFile(t, filepath.Join(dir, "c.yaml"), "bindings: [\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	extra := filepath.Join(t.TempDir(), "extra.yml")
	writeFile(t, extra, yamlKeymap)

	l := NewLoader()
	l.AddSearchPath(dir)
	l.AddSearchPath(extra)
	l.AddSearchPath(filepath.Join(dir, "missing"))

	var warned []string
	l.OnWarning(func(path string, err error) {
		warned = append(warned, filepath.Base(path))
	})

	keymaps, err := l.LoadAll()
	if err == nil {
		t.Error("LoadAll() error = nil, want joined per-file error")
	}
	if len(keymaps) != 3 {
		t.Fatalf("len(LoadAll()) = %d, want 3", len(keymaps))
	}
	if keymaps[2].Source != extra {
		t.Errorf("keymaps[2].Source = %q, want %q", keymaps[2].Source, extra)
	}
	if len(warned) != 2 {
		t.Errorf("warnings = %v, want 2 (missing path, bad yaml)", warned)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	km := NewKeymap("rt").InScope("editor").Add("ctrl+s", "file.save")

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		var buf bytes.Buffer
		if err := Encode(&buf, format, km); err != nil {
			t.Fatalf("Encode(%s) error = %v", format, err)
		}

		got, err := NewLoader().LoadReader(format, &buf)
		if err != nil {
			t.Fatalf("LoadReader(%s) error = %v", format, err)
		}
		if got.Name != "rt" || got.Scope != "editor" || len(got.Bindings) != 1 {
			t.Errorf("%s round trip = %+v", format, got)
		}
	}
}

func TestKeymapSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	km := NewKeymap("saved").Add("f5", "app.reload")

	if err := km.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	got, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got.Bindings[0].Action != "app.reload" {
		t.Errorf("Action = %q, want %q", got.Bindings[0].Action, "app.reload")
	}
}
