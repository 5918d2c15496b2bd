// Package parser extracts flat key-value frontmatter and parent references from Markdown content.
package parser

import (
	"regexp"
	"strings"
)

const delim = "---"

var parentRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Fields map[string]string
	Body   string
}

// Parse splits raw Markdown bytes into frontmatter fields and body.
// A missing or unterminated block yields no fields and the whole input as body.
func Parse(data []byte) *Result {
	fields, body := splitFrontmatter(string(data))
	return &Result{Fields: fields, Body: body}
}

// splitFrontmatter separates the leading --- block from the body. The opening
// delimiter must be the very first line.
func splitFrontmatter(text string) (map[string]string, string) {
	fields := make(map[string]string)

	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimRight(first, " \t\r") != delim {
		return fields, text
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t\r") == delim {
			for _, l := range block {
				parseLine(fields, l)
			}
			return fields, tail
		}
		if !more {
			// No closing delimiter.
			return make(map[string]string), text
		}
		block = append(block, line)
		rest = tail
	}
}

func parseLine(fields map[string]string, line string) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	fields[key] = unquote(strings.TrimSpace(value))
}

// unquote strips one pair of matching surrounding quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// ExtractParent returns the note name referenced as [[name]] in value.
// Aliases ([[name|alias]]) resolve to name.
func ExtractParent(value string) (string, bool) {
	m := parentRe.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	target := m[1]
	if i := strings.Index(target, "|"); i >= 0 {
		target = target[:i]
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	return target, true
}
