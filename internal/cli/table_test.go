package cli

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable("Name", "Hex", "Category")

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable("Name", "Hex")

	// Matching row
	table.AddRow("Cerise", "#DE3163")
	if len(table.rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(table.rows))
	}

	// Short row is padded with blanks
	table.AddRow("Kurenai")
	if len(table.rows[1]) != 2 {
		t.Errorf("Expected row padded to 2 columns, got %d", len(table.rows[1]))
	}
	if table.rows[1][1] != "" {
		t.Errorf("Expected empty string for padded column, got %q", table.rows[1][1])
	}

	// Long row is truncated
	table.AddRow("Ruri", "#1E50A2", "extra")
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected row truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("Name", "Hex", "Category")
	table.AddRow("Cerise", "#DE3163", "pink")
	table.AddRow("Ruri", "#1E50A2", "blue")

	output := table.Render()

	for _, want := range []string{"Name", "Hex", "Category", "Cerise", "#DE3163", "Ruri", "blue"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q", want)
		}
	}

	lines := strings.Split(output, "\n")
	if len(lines) < 4 {
		t.Fatalf("Expected at least 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("Expected separator line with dashes, got: %q", lines[1])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	table := NewTable()

	if output := table.Render(); output != "" {
		t.Errorf("Expected empty string for a headerless table, got: %q", output)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	table := NewTable("Column1", "Column2")

	output := table.Render()
	if !strings.Contains(output, "Column1") {
		t.Error("Output should contain headers even without rows")
	}

	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Error("Expected at least header and separator lines")
	}
}

func TestTableColumnAlignment(t *testing.T) {
	table := NewTable("Short", "Very Long Header", "Mid")
	table.AddRow("A", "B", "C")
	table.AddRow("123456789", "X", "Test")

	lines := strings.Split(table.Render(), "\n")
	if len(lines) < 4 {
		t.Fatalf("Expected at least 4 lines, got %d", len(lines))
	}

	// The separator mirrors the header widths exactly.
	if len(lines[1]) != len(lines[0]) {
		t.Errorf("Separator length (%d) should match header length (%d)", len(lines[1]), len(lines[0]))
	}
}

func TestTableWrapping(t *testing.T) {
	table := NewTable("Name", "Description")
	table.SetColumnMaxWidth(1, 12)
	table.AddRow("random", "Generate random colours, reproducible with a seed")

	output := table.Render()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	// Header, separator, then the wrapped row spanning several lines.
	if len(lines) <= 3 {
		t.Fatalf("Expected the row to wrap over multiple lines, got %d lines", len(lines))
	}
	for i, line := range lines {
		if len(line) > len(lines[0]) {
			t.Errorf("line %d is wider than the header line (%d > %d)", i, len(line), len(lines[0]))
		}
	}
	if !strings.Contains(output, "random") {
		t.Error("Output should contain the unwrapped first column")
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"x", 1, "x"},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	// A word longer than the width is split.
	long := wrapText("abcdefghijkl", 5)
	if len(long) != 3 {
		t.Fatalf("Expected 3 lines for the split word, got %d: %v", len(long), long)
	}
	if long[0] != "abcde" || long[1] != "fghij" || long[2] != "kl" {
		t.Errorf("unexpected split: %v", long)
	}
}
