package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ParseError reports a configuration file that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads path, applies environment overrides and validates the
// result. A missing file yields the defaults with overrides applied.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		data = nil
	case err != nil:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := decode(path, data, NewEnvLoader(EnvPrefix))
	if err != nil {
		return Config{}, err
	}
	if data != nil {
		cfg.Path = path
	}
	return cfg.ExpandPaths(), nil
}

// LoadReader decodes TOML from r without environment overrides.
func LoadReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return decode("<reader>", data, nil)
}

func decode(source string, data []byte, env *EnvLoader) (Config, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, parseError(source, err, true)
	}

	if env != nil {
		overrides, err := env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("environment: %w", err)
		}
		raw = DeepMerge(raw, overrides)
	}

	merged, err := toml.Marshal(raw)
	if err != nil {
		return Config{}, fmt.Errorf("merging config: %w", err)
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		// Positions refer to the merged document, not the file.
		return Config{}, parseError(source, err, false)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

func parseError(source string, err error, withPos bool) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	if withPos && errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		pe.Message = strictErr.String()
	}
	return pe
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(cfg)
}
