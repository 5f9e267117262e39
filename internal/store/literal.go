package store

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"stylometer/internal/merror"
	"stylometer/internal/textmodel"
)

// FormatStrings renders c as a mapping literal such as {'it': 1, 'is': 2}.
// Keys are written in ascending order.
func FormatStrings(c textmodel.Counts[string]) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range c.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(k))
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(c[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatInts renders c as a mapping literal such as {2: 3, 11: 1}.
func FormatInts(c textmodel.Counts[int]) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range c.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(k))
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(c[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// quote uses single quotes unless the value holds a single quote and no double
// quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func ParseStrings(text string) (textmodel.Counts[string], error) {
	out := textmodel.Counts[string]{}
	err := parseMapping(text, func(p *parser) error {
		k, err := p.str()
		if err != nil {
			return err
		}
		n, err := p.entryValue()
		if err != nil {
			return err
		}
		if _, dup := out[k]; dup {
			return p.fail(fmt.Sprintf("duplicate key %q", k))
		}
		out[k] = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func ParseInts(text string) (textmodel.Counts[int], error) {
	out := textmodel.Counts[int]{}
	err := parseMapping(text, func(p *parser) error {
		k, err := p.integer()
		if err != nil {
			return err
		}
		n, err := p.entryValue()
		if err != nil {
			return err
		}
		if _, dup := out[k]; dup {
			return p.fail(fmt.Sprintf("duplicate key %d", k))
		}
		out[k] = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) fail(msg string) error {
	return &merror.ParseError{Offset: p.pos, Msg: msg}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.fail(fmt.Sprintf("expected %q", c))
	}
	p.pos++
	return nil
}

// parseMapping walks "{ entry (, entry)* [,] }" and hands each entry to fn.
func parseMapping(text string, fn func(p *parser) error) error {
	p := &parser{src: text}
	if err := p.expect('{'); err != nil {
		return err
	}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return p.end()
	}
	for {
		p.skipSpace()
		if err := fn(p); err != nil {
			return err
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			if p.peek() == '}' {
				p.pos++
				return p.end()
			}
		case '}':
			p.pos++
			return p.end()
		default:
			return p.fail("expected ',' or '}'")
		}
	}
}

func (p *parser) end() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.fail("unexpected content after mapping")
	}
	return nil
}

// entryValue reads ": count" and checks the count is positive.
func (p *parser) entryValue() (int, error) {
	if err := p.expect(':'); err != nil {
		return 0, err
	}
	p.skipSpace()
	start := p.pos
	n, err := p.integer()
	if err != nil {
		return 0, err
	}
	if n < 1 {
		p.pos = start
		return 0, p.fail(fmt.Sprintf("count %d is not positive", n))
	}
	return n, nil
}

func (p *parser) integer() (int, error) {
	start := p.pos
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		p.pos = start
		return 0, p.fail("expected integer")
	}
	return n, nil
}

func (p *parser) str() (string, error) {
	q := p.peek()
	if q != '\'' && q != '"' {
		return "", p.fail("expected quoted string")
	}
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.fail("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == q:
			p.pos++
			return b.String(), nil
		case c == '\n':
			return "", p.fail("newline in string")
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) escape(b *strings.Builder) error {
	p.pos++
	if p.pos >= len(p.src) {
		return p.fail("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'x':
		return p.hexRune(b, 2)
	case 'u':
		return p.hexRune(b, 4)
	case 'U':
		return p.hexRune(b, 8)
	default:
		p.pos -= 2
		return p.fail(fmt.Sprintf("unknown escape \\%c", c))
	}
	return nil
}

func (p *parser) hexRune(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.fail("short hex escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return p.fail("bad hex escape")
	}
	b.WriteRune(rune(v))
	p.pos += digits
	return nil
}
