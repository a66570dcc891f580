package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/crossing.yaml
var defaultYAML []byte

// LocalConfigPath is checked relative to the working directory.
const LocalConfigPath = "configs/crossing.yaml"

// Loaded is a parsed configuration together with the file it came from.
type Loaded struct {
	Config
	Path string // Empty when the embedded default was used
}

// WritablePath returns where the high score should be written back.
// The embedded default cannot be modified, so the user config path is used instead.
func (l Loaded) WritablePath() string {
	if l.Path != "" {
		return l.Path
	}
	return UserConfigPath()
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Load loads the game configuration.
// Search order: customPath -> ~/.crossing/config.yaml -> ./configs/crossing.yaml -> embedded default.
// A file that exists but is malformed or incomplete is an error; it is never skipped.
func Load(customPath string) (Loaded, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	if userPath := UserConfigPath(); userPath != "" && fileExists(userPath) {
		return LoadFile(userPath)
	}

	if fileExists(LocalConfigPath) {
		return LoadFile(LocalConfigPath)
	}

	cfg, err := Parse(defaultYAML, "")
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg}, nil
}

// LoadFile loads and validates a single configuration file.
func LoadFile(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, &Error{Path: path, Err: err}
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, Path: path}, nil
}

// Parse decodes a configuration document, checking that every required key
// is present before decoding and that values are in range afterwards.
// path is only used for error messages.
func Parse(data []byte, path string) (Config, error) {
	var cfg Config

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return cfg, &Error{Path: path, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	if err := checkRequired(&root); err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return cfg, err
	}

	if err := root.Decode(&cfg); err != nil {
		return cfg, &Error{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

// checkRequired walks the document and reports the first missing key.
func checkRequired(root *yaml.Node) error {
	doc := documentMapping(root)
	if doc == nil {
		return &Error{Key: sectionOrder[0], Err: ErrMissingKey}
	}

	for _, section := range sectionOrder {
		sec := mappingValue(doc, section)
		switch {
		case sec == nil:
			return &Error{Key: section, Err: ErrMissingKey}
		case isNull(sec) || (sec.Kind == yaml.MappingNode && len(sec.Content) == 0):
			// A bare "section:" header names its first missing key
			return &Error{Key: section + "." + requiredKeys[section][0], Err: ErrMissingKey}
		case sec.Kind != yaml.MappingNode:
			return &Error{Key: section, Err: ErrInvalidValue}
		}
		for _, key := range requiredKeys[section] {
			v := mappingValue(sec, key)
			if v == nil || isNull(v) {
				return &Error{Key: section + "." + key, Err: ErrMissingKey}
			}
			if v.Kind != yaml.ScalarNode {
				return &Error{Key: section + "." + key, Err: ErrInvalidValue}
			}
		}
	}
	return nil
}

// documentMapping returns the top-level mapping of a document node, or nil.
func documentMapping(root *yaml.Node) *yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	return doc
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// UserConfigPath returns ~/.crossing/config.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crossing", "config.yaml")
}

// WriteDefault writes the embedded default configuration to path.
// Existing files are left untouched unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite && fileExists(path) {
		return fmt.Errorf("config: %s already exists: %w", path, fs.ErrExist)
	}
	return writeFileAtomic(path, defaultYAML)
}

// writeFileAtomic replaces path via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".crossing-*.yaml")
	if err != nil {
		return fmt.Errorf("config: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("config: cannot write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: cannot close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("config: cannot replace %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
