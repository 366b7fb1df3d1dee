package dailynote

import (
	"testing"
	"time"
)

var day = time.Date(2024, 1, 17, 8, 0, 0, 0, time.Local)

func TestTranslate(t *testing.T) {
	cases := map[string]string{
		"YYYY-MM-DD":         "%Y-%m-%d",
		"YY.MM.DD":           "%y.%m.%d",
		"dddd, MMMM DD YYYY": "%A, %B %d %Y",
		"ddd MMM DD":         "%a %b %d",
		"YYYYMMDD":           "%Y%m%d",
		"Daily Notes":        "Daily Notes",
		"YYYYY":              "%YY",
	}
	for in, want := range cases {
		if got := Translate(in); got != want {
			t.Errorf("Translate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranslate_Idempotent(t *testing.T) {
	for _, in := range []string{"YYYY-MM-DD", "dddd MMMM", "YYYYYY", "MMMMM DDD", "Journal/YYYY/MM"} {
		once := Translate(in)
		if twice := Translate(once); twice != once {
			t.Errorf("Translate(Translate(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestRender(t *testing.T) {
	cases := map[string]string{
		"YYYY-MM-DD":         "2024-01-17",
		"DD.MM.YY":           "17.01.24",
		"dddd, MMMM DD YYYY": "Wednesday, January 17 2024",
		"ddd MMM DD":         "Wed Jan 17",
	}
	for in, want := range cases {
		got, err := Render(in, day)
		if err != nil {
			t.Fatalf("Render(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Render(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRender_StrayPercent(t *testing.T) {
	if _, err := Render("YYYY 100%", day); err == nil {
		t.Error("expected error for trailing %")
	}
}
