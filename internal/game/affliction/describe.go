package affliction

import (
	"fmt"

	"github.com/cory-johannsen/biosim/internal/game/character"
)

// Description is one displayable affliction.
type Description struct {
	Name string
	Text string
}

// Describe lists c's active effects followed by its legacy diseases, each as
// a display name and description. Effects without a name are omitted.
func Describe(c *character.Character) []Description {
	var out []Description
	for _, a := range c.Effects.All() {
		name := a.Def.DisplayName(a.Intensity)
		if name == "" {
			continue
		}
		if a.Part.Valid() {
			name = fmt.Sprintf("%s (%s)", name, a.Part)
		}
		out = append(out, Description{Name: name, Text: a.Def.Description})
	}
	for _, d := range c.Diseases.All() {
		def, ok := c.Catalog().Effects.Get(d.Type)
		if !ok {
			out = append(out, Description{Name: string(d.Type)})
			continue
		}
		out = append(out, Description{Name: def.DisplayName(d.Intensity), Text: def.Description})
	}
	return out
}
