// ABOUTME: Tag helpers for snippets.
// ABOUTME: Tags are case-sensitive labels; parsing trims blanks and drops duplicates.

package models

import "strings"

// ParseTags splits a comma-separated list, trims each label, drops blanks,
// and removes duplicates while keeping authoring order.
func ParseTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	return DedupeTags(strings.Split(csv, ","))
}

func DedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
