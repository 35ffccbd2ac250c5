package tokenizer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingSection reports a required configuration section that is
	// absent from the document.
	ErrMissingSection = errors.New("section not found in tokenizer config")

	// ErrBadSection reports a section whose shape does not match the
	// configuration schema.
	ErrBadSection = errors.New("invalid section in tokenizer config")
)

// Document is a parsed tokenizer configuration. Rule sections are resolved
// lazily so that a Document can be inspected before compilation.
type Document struct {
	root map[string]any
	dir  string
}

// LoadDocument reads and parses a tokenizer configuration file. File
// references inside the document resolve relative to the file's directory.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokenizer config %s: %w", path, err)
	}
	return ParseDocument(data, filepath.Dir(path))
}

// ParseDocument parses a YAML tokenizer configuration. dir is the directory
// against which rule file references are resolved.
func ParseDocument(data []byte, dir string) (*Document, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse tokenizer config: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	return &Document{root: root, dir: dir}, nil
}

// section returns a required top-level entry.
func (d *Document) section(name string) (any, error) {
	v, ok := d.root[name]
	if !ok {
		slog.Error("section not found in tokenizer config", "section", name)
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, name)
	}
	return v, nil
}

// Rules resolves a rule section into a single ';'-separated rule string. A
// list section is flattened and joined with a trailing ';'; a string
// section names a rule file whose content is returned verbatim; a null
// section resolves to the empty string.
func (d *Document) Rules(name string) (string, error) {
	content, err := d.section(name)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", nil
	}
	if ref, ok := content.(string); ok {
		data, err := os.ReadFile(filepath.Join(d.dir, ref))
		if err != nil {
			return "", fmt.Errorf("rule file for section %s: %w", name, err)
		}
		return string(data), nil
	}

	flat, err := flattenList(content, name)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(flat))
	for _, ele := range flat {
		line, ok := ele.(string)
		if !ok {
			return "", fmt.Errorf("%w: rule lines in section %q must be strings", ErrBadSection, name)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, ";") + ";", nil
}

// Sanitizers returns the optional sanitizer configuration unchanged, or an
// empty list when the document has none.
func (d *Document) Sanitizers() any {
	if v, ok := d.root["sanitizers"]; ok {
		return v
	}
	return []any{}
}

// flattenList flattens arbitrarily nested configuration lists into one
// level. nil flattens to nothing; anything but a list is an error.
func flattenList(content any, section string) ([]any, error) {
	if content == nil {
		return nil, nil
	}
	list, ok := content.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: list expected in section %q", ErrBadSection, section)
	}
	var out []any
	for _, ele := range list {
		if sub, ok := ele.([]any); ok {
			flat, err := flattenList(sub, section)
			if err != nil {
				return nil, err
			}
			out = append(out, flat...)
		} else {
			out = append(out, ele)
		}
	}
	return out, nil
}
