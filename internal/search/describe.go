package search

import (
	"strings"

	"txnhistory/internal/core"
)

// DescriptionGroup gathers the matched records sharing a condensed description
type DescriptionGroup struct {
	Key          string   `json:"key"`
	Count        int      `json:"count"`
	Descriptions []string `json:"descriptions"`
	Joined       string   `json:"joined"`
}

// Condense keeps the first two whitespace-separated tokens of a description.
func Condense(desc string) string {
	tokens := strings.Fields(desc)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}

// GroupDescriptions buckets records by condensed description. Keys and the
// distinct full descriptions inside each key keep first-seen order.
func GroupDescriptions(records []core.Record) []DescriptionGroup {
	groups := make([]DescriptionGroup, 0)
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	for _, r := range records {
		key := Condense(r.Description)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DescriptionGroup{Key: key})
			seen[key] = make(map[string]struct{})
		}
		g := &groups[i]
		g.Count++
		if _, dup := seen[key][r.Description]; !dup {
			seen[key][r.Description] = struct{}{}
			g.Descriptions = append(g.Descriptions, r.Description)
		}
	}

	for i := range groups {
		groups[i].Joined = strings.Join(groups[i].Descriptions, "\n")
	}
	return groups
}

// Keys lists the group keys in order.
func Keys(groups []DescriptionGroup) []string {
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	return keys
}
