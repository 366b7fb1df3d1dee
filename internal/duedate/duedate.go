// Package duedate turns phrases such as "tomorrow" or "next friday" into
// the YYYY-MM-DD form the Obsidian Tasks plugin reads after ⏳.
package duedate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/starford/quicktask/internal/apperr"
)

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// shorthands are expanded before parsing. Matching is whole-word and
// case-insensitive, so "Tom" counts but "tomato" does not.
var shorthands = map[string]string{
	"tod": "today",
	"tom": "tomorrow",
	"yes": "yesterday",
	"mon": "monday",
	"tue": "tuesday",
	"wed": "wednesday",
	"thu": "thursday",
	"fri": "friday",
	"sat": "saturday",
	"sun": "sunday",
}

var shorthandRe = regexp.MustCompile(`(?i)\b(tod|tom|yes|mon|tue|wed|thu|fri|sat|sun)\b`)

// expansion records where one shorthand sat before and after expansion.
type expansion struct {
	origStart, origEnd int
	expStart, expEnd   int
}

func expand(text string) (string, []expansion) {
	var b strings.Builder
	var reps []expansion
	last := 0
	for _, m := range shorthandRe.FindAllStringIndex(text, -1) {
		b.WriteString(text[last:m[0]])
		full := shorthands[strings.ToLower(text[m[0]:m[1]])]
		start := b.Len()
		b.WriteString(full)
		reps = append(reps, expansion{origStart: m[0], origEnd: m[1], expStart: start, expEnd: b.Len()})
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), reps
}

// original maps an offset in the expanded text back to the input. An offset
// inside an expanded word snaps to the shorthand's start, or its end when
// isEnd is set.
func original(pos int, reps []expansion, isEnd bool) int {
	shift := 0
	for _, r := range reps {
		switch {
		case pos >= r.expEnd:
			shift = r.origEnd - r.expEnd
		case pos > r.expStart:
			if isEnd {
				return r.origEnd
			}
			return r.origStart
		default:
			return pos + shift
		}
	}
	return pos + shift
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Extract finds the first date phrase in text, removes it and returns the
// remaining words together with the date as YYYY-MM-DD. ok is false when
// text holds no date; cleaned is then text with its whitespace collapsed.
func Extract(text string, now time.Time) (cleaned, due string, ok bool) {
	expanded, reps := expand(text)
	r, err := parser.Parse(expanded, now)
	if err != nil || r == nil {
		return collapse(text), "", false
	}

	start, end := r.Index, r.Index+len(r.Text)
	for start < end {
		c, size := utf8.DecodeRuneInString(expanded[start:])
		if isWordRune(c) {
			break
		}
		start += size
	}
	for end > start {
		c, size := utf8.DecodeLastRuneInString(expanded[:end])
		if isWordRune(c) {
			break
		}
		end -= size
	}
	start, end = original(start, reps, false), original(end, reps, true)

	return collapse(text[:start] + " " + text[end:]), r.Time.Format(time.DateOnly), true
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Parse resolves phrase relative to now. A phrase that is already a date in
// YYYY-MM-DD form is returned unchanged. Text around the date phrase is an
// error rather than being dropped.
func Parse(phrase string, now time.Time) (string, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return "", fmt.Errorf("%w: empty due date", apperr.ErrInvalidInput)
	}
	if _, err := time.Parse(time.DateOnly, phrase); err == nil {
		return phrase, nil
	}

	rest, due, ok := Extract(phrase, now)
	if !ok {
		return "", fmt.Errorf("%w: due date %q not understood", apperr.ErrInvalidInput, phrase)
	}
	if rest != "" {
		return "", fmt.Errorf("%w: due date %q has extra text %q", apperr.ErrInvalidInput, phrase, rest)
	}
	return due, nil
}
