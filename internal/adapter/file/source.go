package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/office-picker/internal/domain"
	"gopkg.in/yaml.v3"
)

// Source reads a location or office fixture from disk. YAML files are
// decoded into the domain types and re-encoded as JSON so they pass through
// the same normalization as API responses.
type Source struct {
	path string
	kind domain.LoadSource
}

// NewSource creates a Source for path holding data of the given kind. The
// format is chosen by extension: .yaml and .yml are YAML, anything else is JSON.
func NewSource(path string, kind domain.LoadSource) *Source {
	return &Source{path: path, kind: kind}
}

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return s.yamlToJSON(data)
	default:
		return data, nil
	}
}

// envelopeKeys lists the wrapper keys each kind of response may use.
func (s *Source) envelopeKeys() []string {
	if s.kind == domain.SourceFacilities {
		return []string{"data", "offices"}
	}
	return []string{"countries"}
}

// yamlToJSON decodes known layouts into the typed structs so scalars land in
// their declared types. An unquoted `id: 1` becomes the string "1".
func (s *Source) yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml fixture: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return []byte{}, nil
	}
	root := doc.Content[0]

	var out any
	switch root.Kind {
	case yaml.SequenceNode:
		items, err := s.decodeItems(root)
		if err != nil {
			return nil, err
		}
		out = items
	case yaml.MappingNode:
		key, value := findKey(root, s.envelopeKeys())
		if value == nil {
			if err := root.Decode(&out); err != nil {
				return nil, fmt.Errorf("parse yaml fixture: %w", err)
			}
			break
		}
		items, err := s.decodeItems(value)
		if err != nil {
			return nil, err
		}
		out = map[string]any{key: items}
	default:
		if err := root.Decode(&out); err != nil {
			return nil, fmt.Errorf("parse yaml fixture: %w", err)
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("convert yaml fixture: %w", err)
	}
	return b, nil
}

func (s *Source) decodeItems(n *yaml.Node) (any, error) {
	if s.kind == domain.SourceFacilities {
		facilities := []domain.Facility{}
		if err := n.Decode(&facilities); err != nil {
			return nil, fmt.Errorf("parse yaml offices: %w", err)
		}
		return facilities, nil
	}
	countries := []domain.Country{}
	if err := n.Decode(&countries); err != nil {
		return nil, fmt.Errorf("parse yaml locations: %w", err)
	}
	return countries, nil
}

// findKey returns the first of keys present in mapping m and its value node.
func findKey(m *yaml.Node, keys []string) (string, *yaml.Node) {
	for _, want := range keys {
		for i := 0; i+1 < len(m.Content); i += 2 {
			if m.Content[i].Value == want {
				return want, m.Content[i+1]
			}
		}
	}
	return "", nil
}
