package savefile

import (
	"strconv"
	"strings"
)

// Parse parses a complete document, treating the whole input as the
// contents of an implicit root block. It always returns a Mapping or a
// Sequence and never fails: structural anomalies (missing braces, truncated
// strings, a key without '=') end the affected block early and everything
// built up to that point is kept.
//
// Parse has no global state and is safe to call concurrently on
// independent inputs.
func Parse(text string) Value {
	p := &parser{text: text}

	return p.blockContents()
}

// parser walks the input with a plain integer cursor. Lookahead is done by
// snapshotting and restoring the cursor, which is a cheap integer copy.
type parser struct {
	text string
	pos  int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.text) {
		return 0, false
	}

	return p.text[p.pos], true
}

// skipTrivia advances past whitespace and # comments in any interleaving.
func (p *parser) skipTrivia() {
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		case '#':
			for p.pos < len(p.text) && p.text[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// readToken consumes a maximal run of non-delimiter characters. It returns
// "" when the cursor sits on a delimiter, meaning "no token here".
func (p *parser) readToken() string {
	start := p.pos

	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case ' ', '\t', '\n', '\r', '=', '{', '}', '#':
			return p.text[start:p.pos]
		}
		p.pos++
	}

	return p.text[start:p.pos]
}

// readQuoted consumes an opening quote and everything up to the closing
// quote. The format has no escape sequences. A string truncated by
// end-of-input yields whatever was collected.
func (p *parser) readQuoted() string {
	p.pos++ // opening quote
	start := p.pos

	for p.pos < len(p.text) {
		if p.text[p.pos] == '"' {
			s := p.text[start:p.pos]
			p.pos++ // closing quote

			return s
		}
		p.pos++
	}

	return p.text[start:p.pos]
}

// parseValue parses a single value: quoted string, nested block, or a bare
// token classified into a scalar.
func (p *parser) parseValue() Value {
	p.skipTrivia()

	c, ok := p.peek()
	switch {
	case !ok:
		return TextValue("")
	case c == '"':
		return TextValue(p.readQuoted())
	case c == '{':
		return p.parseBlock()
	default:
		return classifyScalar(p.readToken())
	}
}

// parseBlock parses a brace-delimited block. The closing brace is consumed
// if present; end-of-input is tolerated.
func (p *parser) parseBlock() Value {
	p.pos++ // '{'
	p.skipTrivia()

	v := p.blockContents()

	p.skipTrivia()

	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
	}

	return v
}

// blockContents decides whether the contents at the cursor form a mapping
// or a sequence, then builds them. The grammar has no structural marker for
// the distinction; the only discriminator is whether the first element is
// followed by '='. One element of lookahead suffices because a block is
// homogeneously one or the other, never mixed. The cursor is restored after
// the decision so the builders re-parse from scratch.
//
// An empty block is always an empty Mapping, never a Sequence. Downstream
// consumers rely on this, so it must not be "fixed".
func (p *parser) blockContents() Value {
	mark := p.pos

	p.skipTrivia()

	c, ok := p.peek()
	if !ok || c == '}' {
		return newMapping().Value()
	}

	sequence := false

	switch c {
	case '"':
		p.readQuoted()
		p.skipTrivia()

		if next, ok := p.peek(); !ok || next != '=' {
			sequence = true
		}
	case '{':
		// An anonymous block can never be a mapping key.
		sequence = true
	default:
		p.readToken()
		p.skipTrivia()

		if next, ok := p.peek(); !ok || next != '=' {
			sequence = true
		}
	}

	p.pos = mark

	if sequence {
		return p.parseSequence()
	}

	return p.parseMapping()
}

// parseMapping consumes key=value pairs until '}' or end-of-input. An empty
// key or a key without '=' terminates the block early; whatever was built
// so far is kept.
func (p *parser) parseMapping() Value {
	m := newMapping()

	for {
		p.skipTrivia()

		c, ok := p.peek()
		if !ok || c == '}' {
			break
		}

		var key string
		if c == '"' {
			key = p.readQuoted()
		} else {
			key = p.readToken()
		}

		if key == "" {
			break
		}

		p.skipTrivia()

		if c, ok := p.peek(); !ok || c != '=' {
			break
		}

		p.pos++ // '='
		m.merge(key, p.parseValue())
	}

	return m.Value()
}

// parseSequence consumes bare values until '}' or end-of-input. A stray
// delimiter ('=' outside a key=value pair) produces no token and no cursor
// progress; it terminates the sequence early, keeping what was built.
func (p *parser) parseSequence() Value {
	vals := []Value{}

	for {
		p.skipTrivia()

		c, ok := p.peek()
		if !ok || c == '}' {
			break
		}

		start := p.pos

		v := p.parseValue()
		if p.pos == start {
			break
		}

		vals = append(vals, v)
	}

	return SequenceValue(vals...)
}

// classifyScalar converts a bare token in fixed priority: float when the
// token contains a decimal point, then integer, then yes/no boolean, then
// text as the always-successful fallback.
func classifyScalar(token string) Value {
	if strings.Contains(token, ".") {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return FloatValue(f)
		}
	} else if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return IntValue(i)
	}

	if strings.EqualFold(token, "yes") {
		return BoolValue(true)
	}

	if strings.EqualFold(token, "no") {
		return BoolValue(false)
	}

	return TextValue(token)
}
