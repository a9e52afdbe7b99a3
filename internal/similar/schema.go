package similar

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Examples is the schema derived from a set of similar notes, ready to
// constrain a model prompt.
type Examples struct {
	// Prompt is the formatted example block.
	Prompt string

	// ValidProperties is the union of property names across examples;
	// the model may only use these.
	ValidProperties []string

	// PropertyOrder is the canonical ordering hint for merged output.
	PropertyOrder []string
}

// DerivePropertyOrder computes a canonical property order by averaging
// each property's positional index across the examples. Only examples
// containing a property count toward its average, so properties that tend
// to appear earlier sort earlier even when no single example has them
// all. Ties keep first-encounter order.
func DerivePropertyOrder(examples []Note) []string {
	positions := map[string]float64{}
	counts := map[string]int{}
	var encounter []string

	for _, ex := range examples {
		if ex.Frontmatter == nil {
			continue
		}
		for i, prop := range ex.Frontmatter.Keys() {
			if counts[prop] == 0 {
				encounter = append(encounter, prop)
			}
			positions[prop] += float64(i)
			counts[prop]++
		}
	}

	order := make([]string, len(encounter))
	copy(order, encounter)
	sort.SliceStable(order, func(i, j int) bool {
		avgI := positions[order[i]] / float64(counts[order[i]])
		avgJ := positions[order[j]] / float64(counts[order[j]])
		return avgI < avgJ
	})
	return order
}

// FormatExamplesForPrompt serializes the selected examples into a prompt
// block and derives the permissible property set and canonical order.
// vaultTags and allTitles give the model existing vocabulary to prefer
// over inventing new values.
func FormatExamplesForPrompt(examples []Note, vaultTags []string, allTitles []string) Examples {
	propertyOrder := DerivePropertyOrder(examples)

	var b strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&b, "Example %d (%s):\n", i+1, ex.Path)
		encoded, err := yaml.Marshal(ex.Frontmatter)
		if err != nil {
			continue
		}
		b.Write(encoded)
		b.WriteString("\n")
	}

	if len(vaultTags) > 0 {
		b.WriteString("Existing tags in this vault: ")
		b.WriteString(strings.Join(vaultTags, ", "))
		b.WriteString("\n")
	}
	if len(allTitles) > 0 {
		b.WriteString("Existing note titles: ")
		b.WriteString(strings.Join(allTitles, ", "))
		b.WriteString("\n")
	}

	valid := make([]string, len(propertyOrder))
	copy(valid, propertyOrder)

	return Examples{
		Prompt:          b.String(),
		ValidProperties: valid,
		PropertyOrder:   propertyOrder,
	}
}
