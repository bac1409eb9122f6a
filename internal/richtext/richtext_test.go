package richtext

import (
	"strings"
	"testing"
)

func TestNormalizeNewlineEscapes(t *testing.T) {
	got := Normalize(`Line1\nLine2`)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "Line1" || lines[1] != "Line2" {
		t.Fatalf("expected two lines, got %q", got)
	}

	got = Normalize(`a\r\nb\rc`)
	if got != "a\nb\nc" {
		t.Fatalf("expected collapsed newlines, got %q", got)
	}
}

func TestNormalizeEscapedMarkup(t *testing.T) {
	got := Normalize(`<p class=\"intro\">text<\/p>`)
	if got != `<p class="intro">text</p>` {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if !IsHTML(got) {
		t.Fatalf("expected %q to be detected as HTML", got)
	}

	got = Normalize(`\<b\>bold\</b\>`)
	if got != "<b>bold</b>" {
		t.Fatalf("expected bracket escapes removed, got %q", got)
	}
}

func TestNormalizeQuotes(t *testing.T) {
	got := Normalize(`he said \"privet\" and \'poka\'`)
	if got != `he said "privet" and 'poka'` {
		t.Fatalf("unexpected quote handling: %q", got)
	}
}

func TestNormalizeCleanContentUnchanged(t *testing.T) {
	for _, in := range []string{
		"",
		"plain text",
		"<p>уже чистый <a href=\"/kvn\">HTML</a></p>",
		"multi\nline\ntext",
	} {
		if got := Normalize(in); got != in {
			t.Fatalf("clean content changed: %q -> %q", in, got)
		}
	}
}

func TestIsHTML(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"<p>text</p>", true},
		{"line with <br> break", true},
		{"no markup at all", false},
		{"a < b", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsHTML(tc.in); got != tc.want {
			t.Fatalf("IsHTML(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
