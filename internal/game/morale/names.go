package morale

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names maps morale types to their display templates. A template may contain
// one %s, replaced by the entry's item name.
type Names map[Type]string

type namesFile struct {
	Types []struct {
		ID   Type   `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"types"`
}

// ParseNames decodes a YAML document of the form `types: [{id, name}]`.
func ParseNames(data []byte) (Names, error) {
	var f namesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing morale types: %w", err)
	}
	out := make(Names, len(f.Types))
	for _, t := range f.Types {
		if t.ID == "" {
			return nil, fmt.Errorf("parsing morale types: type with empty id")
		}
		if strings.Count(t.Name, "%s") > 1 {
			return nil, fmt.Errorf("parsing morale types: %s has more than one %%s", t.ID)
		}
		out[t.ID] = t.Name
	}
	return out, nil
}

// Describe renders the display name of e. itemName replaces %s.
func (n Names) Describe(e Entry, itemName string) string {
	tmpl, ok := n[e.Type]
	if !ok || tmpl == "" {
		return string(e.Type)
	}
	if strings.Contains(tmpl, "%s") {
		if itemName == "" {
			itemName = e.ItemType
		}
		return strings.Replace(tmpl, "%s", itemName, 1)
	}
	return tmpl
}
