package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTable_View(t *testing.T) {
	table := NewTable("Users", "ID", "Name")
	table.AddRow("1", "Leanne Graham")
	table.AddRow("10")

	lines := strings.Split(strings.TrimRight(table.View(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "Users") {
		t.Fatalf("expected title line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Name") || !strings.Contains(lines[3], "Leanne Graham") {
		t.Fatalf("unexpected table body: %q", lines)
	}
	header, row := lipgloss.Width(lines[1]), lipgloss.Width(lines[3])
	if header != row || row != lipgloss.Width(lines[4]) {
		t.Fatalf("expected aligned rows, got widths %d %d %d", header, row, lipgloss.Width(lines[4]))
	}
}

func TestTable_EmptyMessage(t *testing.T) {
	table := NewTable("Posts", "ID", "Title")
	table.Empty = "No posts."
	out := table.View()
	if !strings.Contains(out, "No posts.") || strings.Contains(out, "Title") {
		t.Fatalf("unexpected empty table output %q", out)
	}
}
