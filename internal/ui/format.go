// ABOUTME: Terminal UI formatting for scsnip output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/query"
)

const dateLayout = "2006-01-02 15:04"

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatSnippetListItem(s *models.Snippet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s  %s\n", faint(s.ShortID()), bold(s.Name), yellow(s.Folder)))

	if len(s.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("         %s %s\n",
			faint("Tags:"),
			cyan(strings.Join(s.Tags, ", "))))
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Modified:"),
		faint(s.ModifiedDate.Local().Format(dateLayout))))

	return sb.String()
}

func FormatSnippetHeader(s *models.Snippet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(s.Name)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(s.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Folder:"), yellow(s.Folder)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(s.CreatedDate.Local().Format(dateLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Modified:"), faint(s.ModifiedDate.Local().Format(dateLayout))))

	if len(s.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(s.Tags, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// SnippetMarkdown lays out the description followed by the code in a fence.
func SnippetMarkdown(s *models.Snippet) string {
	var sb strings.Builder
	if d := strings.TrimSpace(s.DescriptionText()); d != "" {
		sb.WriteString(d)
		sb.WriteString("\n\n")
	}
	fence := "```"
	for strings.Contains(s.Code, fence) {
		fence += "`"
	}
	sb.WriteString(fence + "supercollider\n")
	sb.WriteString(s.Code)
	if !strings.HasSuffix(s.Code, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence + "\n")
	return sb.String()
}

func FormatMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatTagList(tags []query.TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan(t.Tag),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

// FormatFolderTree prints one folder per line, indented by depth. counts maps
// a folder path to the number of snippets directly inside it.
func FormatFolderTree(root *query.FolderNode, counts map[string]int) string {
	var sb strings.Builder
	root.Walk(func(n *query.FolderNode, depth int) {
		sb.WriteString(strings.Repeat("  ", depth+1))
		sb.WriteString(yellow(n.Name))
		if c := counts[n.Path]; c > 0 {
			sb.WriteString(" " + faint(fmt.Sprintf("(%d)", c)))
		}
		sb.WriteString("\n")
	})
	return sb.String()
}

func FormatFolderSectionHeader(folder string) string {
	return fmt.Sprintf("\n%s %s\n", "📁", bold(folder))
}

func FormatFilterLabel(f query.Filter) string {
	label := f.Describe()
	if f.SearchText != "" {
		search := fmt.Sprintf("Search: %q", f.SearchText)
		if label == "" {
			label = search
		} else {
			label += " & " + search
		}
	}
	if label == "" {
		return ""
	}
	return faint(label) + "\n"
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
