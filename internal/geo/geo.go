package geo

import (
	"encoding/json"
	"fmt"
	"os"
)

// Tree is the administrative hierarchy the feed is scoped by:
// counties contain constituencies, constituencies contain wards.
// It is loaded once at startup and read-only afterwards.
type Tree struct {
	Counties []County `json:"counties"`
}

type County struct {
	Name           string         `json:"name"`
	Constituencies []Constituency `json:"constituencies"`
}

type Constituency struct {
	Name  string `json:"name"`
	Wards []Ward `json:"wards"`
}

type Ward struct {
	Name string `json:"name"`
}

func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geo dataset: %w", err)
	}
	return ParseTree(data)
}

func ParseTree(data []byte) (*Tree, error) {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse geo dataset: %w", err)
	}
	return &tree, nil
}

// Resolve expands a selector into the set of location names a feed query
// should match. The second result reports the home sentinel: no location
// restriction at all. Unknown county or constituency names resolve to an
// empty set rather than an error; ward values pass through unvalidated.
// Matching is exact and case-sensitive.
func (t *Tree) Resolve(sel Selector) ([]string, bool) {
	switch sel.Level() {
	case LevelHome:
		return nil, true
	case LevelCounty:
		for _, county := range t.Counties {
			if county.Name != sel.value {
				continue
			}
			names := []string{county.Name}
			for _, cs := range county.Constituencies {
				names = append(names, cs.Name)
			}
			for _, cs := range county.Constituencies {
				for _, w := range cs.Wards {
					names = append(names, w.Name)
				}
			}
			return names, false
		}
		return []string{}, false
	case LevelConstituency:
		for _, county := range t.Counties {
			for _, cs := range county.Constituencies {
				if cs.Name != sel.value {
					continue
				}
				names := []string{cs.Name}
				for _, w := range cs.Wards {
					names = append(names, w.Name)
				}
				return names, false
			}
		}
		return []string{}, false
	case LevelWard:
		return []string{sel.value}, false
	}
	return []string{}, false
}
