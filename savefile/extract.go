package savefile

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// ExtractSection locates the first line-anchored occurrence of name= in the
// document and parses only that value, without touching the rest of the
// file. The result is identical to the value stored under name by a full
// Parse of the document. The boolean is false when the anchor is absent.
//
// Block values are delimited by brace-depth counting; quoted strings cannot
// contain braces in this format, so the scan is a plain byte walk. A
// non-block value is the remainder of the line, classified as a scalar.
func ExtractSection(text, name string) (Value, bool) {
	pattern := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(name) + `=`)

	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return Value{}, false
	}

	p := &parser{text: text, pos: loc[1]}
	p.skipTrivia()

	c, ok := p.peek()
	if !ok {
		return Value{}, false
	}

	var section string

	if c == '{' {
		section = text[p.pos:closingBrace(text, p.pos)]
	} else {
		end := strings.IndexByte(text[p.pos:], '\n')
		if end < 0 {
			end = len(text) - p.pos
		}
		section = text[p.pos : p.pos+end]
	}

	sp := &parser{text: section}

	return sp.parseValue(), true
}

// Anchor describes the line-start shape of a record key, used to locate
// repeated records without a full parse. An optional required interior
// field disambiguates records whose keys look alike: province blocks are
// numeric-keyed like several unrelated sections, but only provinces carry a
// name field.
type Anchor struct {
	keyExpr      string
	requireField string
}

// TagAnchor matches keys that are fixed-width uppercase codes, such as the
// three-letter country tags.
func TagAnchor(width int) Anchor {
	return Anchor{keyExpr: fmt.Sprintf(`[A-Z]{%d}`, width)}
}

// NumericAnchor matches keys that are bare integers, such as province IDs.
func NumericAnchor() Anchor {
	return Anchor{keyExpr: `\d+`}
}

// RequireField returns a copy of the anchor that additionally demands the
// named key inside the matched block. Blocks without it are skipped.
func (a Anchor) RequireField(name string) Anchor {
	a.requireField = name

	return a
}

// Records iterates over every line-anchored record matching the anchor, in
// document order, yielding (key, value) pairs. Each value is parsed from
// its own byte range only and equals what a full Parse would store under
// that key. The sequence is lazy and restartable; every restart rescans
// from the beginning of the document.
func Records(text string, anchor Anchor) iter.Seq2[string, Value] {
	pattern := regexp.MustCompile(`(?m)^(` + anchor.keyExpr + `)=`)

	return func(yield func(string, Value) bool) {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			key := text[loc[2]:loc[3]]

			p := &parser{text: text, pos: loc[1]}
			p.skipTrivia()

			c, ok := p.peek()
			if !ok || c != '{' {
				continue
			}

			section := text[p.pos:closingBrace(text, p.pos)]

			sp := &parser{text: section}
			v := sp.parseValue()

			if anchor.requireField != "" {
				if _, ok := v.Get(anchor.requireField); !ok {
					continue
				}
			}

			if !yield(key, v) {
				return
			}
		}
	}
}

// closingBrace returns the position just past the brace matching the one at
// open, found by depth counting. A missing closing brace runs to
// end-of-input.
func closingBrace(text string, open int) int {
	depth := 1
	pos := open + 1

	for pos < len(text) && depth > 0 {
		switch text[pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		pos++
	}

	return pos
}
