package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// RaiseHighScore rewrites score_keeping.high_score in the file at path when
// score is greater than the value currently stored there. The rest of the
// document, comments included, is preserved. A missing file is created from
// the embedded default. Reports whether the file was changed.
func RaiseHighScore(path string, score int) (bool, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = defaultYAML
	case err != nil:
		return false, fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return false, &Error{Path: path, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	doc := documentMapping(&root)
	if doc == nil {
		return false, &Error{Path: path, Key: "score_keeping", Err: ErrMissingKey}
	}
	section := mappingValue(doc, "score_keeping")
	if section == nil || section.Kind != yaml.MappingNode {
		return false, &Error{Path: path, Key: "score_keeping", Err: ErrMissingKey}
	}

	node := mappingValue(section, "high_score")
	if node == nil {
		node = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: "0"}
		section.Content = append(section.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "high_score"},
			node,
		)
	}

	if current, err := strconv.Atoi(node.Value); err == nil && current >= score {
		return false, nil
	}

	node.Kind = yaml.ScalarNode
	node.Tag = "!!int"
	node.Style = 0
	node.Value = strconv.Itoa(score)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(&root); err != nil {
		return false, fmt.Errorf("config: cannot encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return false, fmt.Errorf("config: cannot encode %s: %w", path, err)
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

// HighScoreFile serializes high score write-back to one config file.
// It is safe for concurrent use by several sessions (e.g. over SSH).
type HighScoreFile struct {
	mu   sync.Mutex
	path string
}

// NewHighScoreFile creates a writer for the config file at path.
func NewHighScoreFile(path string) *HighScoreFile {
	return &HighScoreFile{path: path}
}

// Path returns the file being written.
func (f *HighScoreFile) Path() string {
	return f.path
}

// WriteHighScore persists score if it beats the stored high score.
func (f *HighScoreFile) WriteHighScore(score int) error {
	if f.path == "" {
		return errors.New("config: no writable config path for high score")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	_, err := RaiseHighScore(f.path, score)
	return err
}
