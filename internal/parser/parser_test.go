package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\nparent: \"[[exercise]]\"\nstatus: active\ncategory: 'training'\n---\n# Agility\nBody text.\n")
	r := Parse(input)
	if r.Fields["parent"] != "[[exercise]]" {
		t.Errorf("parent = %q, want %q", r.Fields["parent"], "[[exercise]]")
	}
	if r.Fields["status"] != "active" {
		t.Errorf("status = %q, want active", r.Fields["status"])
	}
	if r.Fields["category"] != "training" {
		t.Errorf("category = %q, want training", r.Fields["category"])
	}
	if r.Body != "# Agility\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r := Parse(input)
	if len(r.Fields) != 0 {
		t.Errorf("expected no fields, got %v", r.Fields)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestFrontmatter_MissingClosingDelimiter(t *testing.T) {
	fm := Parse([]byte("---\nstatus: active\nno end here\n")).Fields
	if fm == nil {
		t.Fatal("expected non-nil map")
	}
	if len(fm) != 0 {
		t.Errorf("expected empty map, got %v", fm)
	}
}

func TestFrontmatter_IndentedClosingDelimiter(t *testing.T) {
	fm := Parse([]byte("---\nstatus: active\n  ---\n")).Fields
	if len(fm) != 0 {
		t.Errorf("indented delimiter should not close the block, got %v", fm)
	}

	fm = Parse([]byte("---\nstatus: active\n---  \nbody")).Fields
	if fm["status"] != "active" {
		t.Errorf("trailing spaces after the closing delimiter: status = %q", fm["status"])
	}
}

func TestFrontmatter_NotAtStart(t *testing.T) {
	fm := Parse([]byte("\n---\nstatus: active\n---\n")).Fields
	if len(fm) != 0 {
		t.Errorf("block not at start should be ignored, got %v", fm)
	}
}

func TestFrontmatter_SplitsOnFirstColon(t *testing.T) {
	fm := Parse([]byte("---\nsource: https://example.com/a:b\n---\n")).Fields
	if fm["source"] != "https://example.com/a:b" {
		t.Errorf("source = %q", fm["source"])
	}
}

func TestFrontmatter_SkipsLinesWithoutColon(t *testing.T) {
	fm := Parse([]byte("---\ntags:\n  - one\n: orphan value\nstatus: done\n---\n")).Fields
	if fm["tags"] != "" {
		t.Errorf("tags = %q, want empty", fm["tags"])
	}
	if _, ok := fm["- one"]; ok {
		t.Error("list item without colon should be skipped")
	}
	if _, ok := fm[""]; ok {
		t.Error("empty key should be skipped")
	}
	if fm["status"] != "done" {
		t.Errorf("status = %q", fm["status"])
	}
}

func TestFrontmatter_CRLF(t *testing.T) {
	fm := Parse([]byte("---\r\nstatus: active\r\n---\r\nbody")).Fields
	if fm["status"] != "active" {
		t.Errorf("status = %q, want active", fm["status"])
	}
}

func TestFrontmatter_MismatchedQuotesKept(t *testing.T) {
	fm := Parse([]byte("---\ntitle: \"half'\n---\n")).Fields
	if fm["title"] != "\"half'" {
		t.Errorf("title = %q", fm["title"])
	}
}

func TestExtractParent(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"[[agility]]", "agility", true},
		{"\"[[box jumps]]\"", "box jumps", true},
		{"[[cardio|Cardio work]]", "cardio", true},
		{"see [[a]] and [[b]]", "a", true},
		{"agility", "", false},
		{"[[]]", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractParent(c.in)
		if got != c.want || ok != c.wantOK {
			t.Errorf("ExtractParent(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
