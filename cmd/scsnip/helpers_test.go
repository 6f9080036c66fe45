// ABOUTME: Tests for small helpers shared by the CLI commands.
// ABOUTME: Covers folder grouping, filename sanitizing, and edit change detection.

package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/harper/scsnip/internal/models"
)

func mustSnippet(t *testing.T, name, folder string) *models.Snippet {
	t.Helper()
	s, err := models.NewSnippet(name, nil, "1", nil, folder)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestGroupByFolder(t *testing.T) {
	snippets := []*models.Snippet{
		mustSnippet(t, "a", "pads"),
		mustSnippet(t, "b", "drums/kicks"),
		mustSnippet(t, "c", "pads"),
		mustSnippet(t, "d", "drums"),
	}

	order, groups := groupByFolder(snippets)

	want := []string{"drums", "drums/kicks", "pads"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
		}
	}
	if len(groups["pads"]) != 2 || groups["pads"][0].Name != "a" {
		t.Errorf("expected pads to keep order a, c")
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename(`a/b:c?"d"`); got != "a-b-c--d-" {
		t.Errorf("unexpected sanitized name %q", got)
	}
}

func TestSanitizeFilenameKeepsWholeRunes(t *testing.T) {
	name := strings.Repeat("a", 99) + "äöü"

	got := sanitizeFilename(name)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated name is not valid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 99)+"ä" {
		t.Errorf("expected 100 runes, got %q", got)
	}
	if short := sanitizeFilename("Glocke ß"); short != "Glocke ß" {
		t.Errorf("short names should be unchanged, got %q", short)
	}
}

func TestUnchanged(t *testing.T) {
	s := mustSnippet(t, "a", "pads")

	if !unchanged(s, "a", nil, "1", nil, "pads") {
		t.Error("identical fields should be unchanged")
	}
	if unchanged(s, "a", models.StringPtr(""), "1", nil, "pads") {
		t.Error("adding an empty description is a change")
	}
	if unchanged(s, "a", nil, "1", []string{"x"}, "pads") {
		t.Error("adding a tag is a change")
	}
}
