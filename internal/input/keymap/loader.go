package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a keymap file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for files with an unrecognized extension.
var ErrUnknownFormat = errors.New("unknown keymap format")

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// ParseError describes a keymap file that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader loads keymaps from files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string

	// warn receives per-file errors from LoadAll. May be nil.
	warn func(path string, err error)
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a file or directory to load keymaps from.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// SearchPaths returns the configured search paths.
func (l *Loader) SearchPaths() []string {
	return slices.Clone(l.searchPaths)
}

// OnWarning sets a callback for files skipped by LoadAll.
func (l *Loader) OnWarning(fn func(path string, err error)) {
	l.warn = fn
}

// LoadFile loads a keymap, picking the decoder from the extension.
// The keymap's Source is set to the path and its Name defaults to the
// file's base name.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.decode(path, format, f)
	if err != nil {
		return nil, err
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	km.Source = path
	return km, nil
}

// LoadReader loads a keymap in the given format from a reader.
func (l *Loader) LoadReader(format Format, r io.Reader) (*Keymap, error) {
	return l.decode("<reader>", format, r)
}

func (l *Loader) decode(source string, format Format, r io.Reader) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	km := &Keymap{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(km)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(km)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(km)
	default:
		return nil, fmt.Errorf("%s: %w", source, ErrUnknownFormat)
	}
	if err != nil {
		return nil, newParseError(source, err)
	}

	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("keymap %s: %w", source, err)
	}
	return km, nil
}

// newParseError wraps a decoder error, extracting a position when the
// decoder reports one.
func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		pe.Line, pe.Column = tomlErr.Position()
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Message = fmt.Sprintf("%s (offset %d)", syntaxErr.Error(), syntaxErr.Offset)
	}
	return pe
}

// Files returns the keymap files found in the search paths, in search
// path order and then lexical order. Paths naming a file are returned
// as-is; directories contribute every file with a known extension.
func (l *Loader) Files() []string {
	var files []string
	for _, p := range l.searchPaths {
		info, err := os.Stat(p)
		if err != nil {
			if l.warn != nil {
				l.warn(p, err)
			}
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			if l.warn != nil {
				l.warn(p, err)
			}
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatFor(e.Name()); err == nil {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}
	return files
}

// LoadAll loads every keymap file in the search paths.
// Files that fail to load are reported to the warning callback and
// skipped. The returned error joins every per-file failure.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)
	var errs []error

	for _, path := range l.Files() {
		km, err := l.LoadFile(path)
		if err != nil {
			if l.warn != nil {
				l.warn(path, err)
			}
			errs = append(errs, err)
			continue
		}
		keymaps = append(keymaps, km)
	}

	return keymaps, errors.Join(errs...)
}

// Encode writes km in the given format.
func Encode(w io.Writer, format Format, km *Keymap) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(km)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(km); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(km)
	}
	return ErrUnknownFormat
}

// SaveFile writes km to path in the format implied by its extension.
func (k *Keymap) SaveFile(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, k); err != nil {
		return fmt.Errorf("encoding keymap: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
