// ABOUTME: Filtering and tag aggregation over a loaded snippet collection.
// ABOUTME: Pure functions; callers load snippets from a Store and pass them in.

package query

import (
	"slices"
	"strings"

	"github.com/harper/scsnip/internal/models"
)

// Filter selects snippets. Empty fields are unset. When both Tag and Folder
// are set, Tag wins and Folder is ignored.
type Filter struct {
	SearchText string
	Folder     string
	Tag        string
}

func (f Filter) IsEmpty() bool {
	return f.SearchText == "" && f.Folder == "" && f.Tag == ""
}

// Apply returns the snippets matching f, preserving input order.
func Apply(snippets []*models.Snippet, f Filter) []*models.Snippet {
	out := make([]*models.Snippet, 0, len(snippets))
	search := strings.ToLower(f.SearchText)
	for _, s := range snippets {
		if search != "" && !matchesSearch(s, search) {
			continue
		}
		switch {
		case f.Tag != "":
			if !s.HasTag(f.Tag) {
				continue
			}
		case f.Folder != "":
			if s.Folder != f.Folder {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// matchesSearch expects search to be lower-cased already.
func matchesSearch(s *models.Snippet, search string) bool {
	if strings.Contains(strings.ToLower(s.Name), search) ||
		strings.Contains(strings.ToLower(s.Code), search) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return s.Description != nil && strings.Contains(strings.ToLower(*s.Description), search)
}

// Describe renders the active folder and tag selection, or "" when neither
// is set.
func (f Filter) Describe() string {
	var parts []string
	if f.Folder != "" {
		parts = append(parts, "Folder: "+f.Folder)
	}
	if f.Tag != "" {
		parts = append(parts, "Tag: "+f.Tag)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filtering by: " + strings.Join(parts, " & ")
}

// AllTags returns every distinct tag, sorted ascending.
func AllTags(snippets []*models.Snippet) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, s := range snippets {
		for _, tag := range s.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

type TagCount struct {
	Tag   string
	Count int
}

// TagCounts reports how many snippets carry each tag, ordered by tag.
func TagCounts(snippets []*models.Snippet) []TagCount {
	counts := make(map[string]int)
	for _, s := range snippets {
		seen := make(map[string]bool, len(s.Tags))
		for _, tag := range s.Tags {
			if !seen[tag] {
				seen[tag] = true
				counts[tag]++
			}
		}
	}
	out := make([]TagCount, 0, len(counts))
	for _, tag := range AllTags(snippets) {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}
	return out
}
