package tasknote

import (
	"strings"
	"testing"
)

func TestFormatTask_WithDate(t *testing.T) {
	got := FormatTask("Buy groceries", "2024-01-17")
	want := "- [ ] Buy groceries ⏳ 2024-01-17"
	if got != want {
		t.Errorf("FormatTask = %q, want %q", got, want)
	}
}

func TestFormatTask_WithoutDate(t *testing.T) {
	got := FormatTask("Buy groceries", "")
	if got != "- [ ] Buy groceries" {
		t.Errorf("FormatTask = %q", got)
	}
	if strings.Contains(got, "⏳") {
		t.Error("hourglass present without due date")
	}
}

func TestFormatTask_TrimsDescription(t *testing.T) {
	got := FormatTask("  \tcall mom \n", "")
	if got != "- [ ] call mom" {
		t.Errorf("FormatTask = %q", got)
	}
}

func TestFormatTask_DueDatePassedVerbatim(t *testing.T) {
	got := FormatTask("x", "next friday")
	if !strings.HasSuffix(got, " ⏳ next friday") {
		t.Errorf("FormatTask = %q, want verbatim due suffix", got)
	}
}

func TestFormatTask_Prefix(t *testing.T) {
	for _, d := range []string{"", "a", " spaced out ", "- [ ] nested"} {
		got := FormatTask(d, "2024-01-01")
		want := "- [ ] " + strings.TrimSpace(d)
		if !strings.HasPrefix(got, want) {
			t.Errorf("FormatTask(%q) = %q, want prefix %q", d, got, want)
		}
	}
}
