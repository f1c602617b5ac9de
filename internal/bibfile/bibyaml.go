package bibfile

import (
	"fmt"

	"github.com/matsen/papers/internal/reference"
	"gopkg.in/yaml.v3"
)

// yamlEntry is the bibyaml document shape, shared with the bibdata files
// of a repository so that one can be re-imported directly.
type yamlEntry struct {
	Citekey string              `yaml:"citekey"`
	Entry   reference.Reference `yaml:"entry"`
}

// ParseBibYAML reads either a single {citekey, entry} document or a list
// of them.
func ParseBibYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var docs []yamlEntry
	switch root := doc.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&docs); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var single yamlEntry
		if err := root.Decode(&single); err != nil {
			return nil, err
		}
		docs = append(docs, single)
	default:
		return nil, fmt.Errorf("expected a mapping or a list at line %d", root.Line)
	}

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		ref := d.Entry
		if ref.Source.Type == "" {
			ref.Source.Type = "bibyaml"
		}
		entries = append(entries, Entry{Citekey: d.Citekey, Ref: ref})
	}
	return entries, nil
}
