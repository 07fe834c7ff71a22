// Package jsonparse implements the recursive-descent parser that turns
// a character sequence into a jsonvalue.Value tree: literal, number,
// string, list and object grammar, with positional error reporting.
package jsonparse

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/lattice-substrate/gojson/jsonerr"
	"github.com/lattice-substrate/gojson/jsonnum"
	"github.com/lattice-substrate/gojson/jsonscan"
	"github.com/lattice-substrate/gojson/jsonvalue"
)

type parser struct {
	s *jsonscan.Scanner
}

// Parse consumes leading whitespace, parses one value from r, consumes
// trailing whitespace, and fails if any non-whitespace remains.
func Parse(r io.RuneReader) (jsonvalue.Value, error) {
	p := &parser{s: jsonscan.New(r)}
	p.skipWhitespace()
	v, err := p.parseValue()
	if err != nil {
		return jsonvalue.Value{}, err
	}
	p.skipWhitespace()
	if p.s.Peek() != jsonscan.EOF {
		return jsonvalue.Value{}, p.errorf("trailing characters")
	}
	return v, nil
}

// ParseString parses s as a complete JSON document.
func ParseString(s string) (jsonvalue.Value, error) {
	return Parse(strings.NewReader(s))
}

// ParseBytes parses b as a complete JSON document. b must be valid
// UTF-8; otherwise ParseBytes fails with ParseError("contents not
// utf-8", 0, 0) before any parsing is attempted.
func ParseBytes(b []byte) (jsonvalue.Value, error) {
	if !utf8.Valid(b) {
		return jsonvalue.Value{}, jsonerr.NewParseError("contents not utf-8", 0, 0)
	}
	return ParseString(string(b))
}

func (p *parser) errorf(msg string) error {
	return jsonerr.NewParseError(msg, p.s.Line(), p.s.Col())
}

func (p *parser) skipWhitespace() {
	for isWhitespace(p.s.Peek()) {
		p.s.Advance()
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (p *parser) parseValue() (jsonvalue.Value, error) {
	switch r := p.s.Peek(); {
	case r == jsonscan.EOF:
		return jsonvalue.Value{}, p.errorf("EOF while parsing value")
	case r == 'n':
		return p.parseLiteral("null", jsonvalue.Null())
	case r == 't':
		return p.parseLiteral("true", jsonvalue.Bool(true))
	case r == 'f':
		return p.parseLiteral("false", jsonvalue.Bool(false))
	case r == '"':
		return p.parseString()
	case r == '[':
		return p.parseList()
	case r == '{':
		return p.parseObject()
	case r == '-' || isDigit(r):
		return p.parseNumber()
	default:
		return jsonvalue.Value{}, p.errorf("invalid syntax")
	}
}

// parseLiteral matches lit greedily against the scanner; any deviation
// (including EOF) is an "invalid syntax" error.
func (p *parser) parseLiteral(lit string, val jsonvalue.Value) (jsonvalue.Value, error) {
	for _, want := range lit {
		if p.s.Peek() != want {
			return jsonvalue.Value{}, p.errorf("invalid syntax")
		}
		p.s.Advance()
	}
	return val, nil
}

// parseNumber scans a number token per the grammar (optional '-',
// integer part forbidding a superfluous leading zero, optional
// fraction, optional exponent) and hands the raw token to
// jsonnum.ParseNumberString for assembly, so the parser and the typed
// decoder's string-fallback numeric path share one assembly rule.
func (p *parser) parseNumber() (jsonvalue.Value, error) {
	var sb strings.Builder

	if p.s.Peek() == '-' {
		sb.WriteRune('-')
		p.s.Advance()
	}

	switch {
	case p.s.Peek() == '0':
		sb.WriteRune('0')
		p.s.Advance()
		if isDigit(p.s.Peek()) {
			return jsonvalue.Value{}, p.errorf("invalid number")
		}
	case p.s.Peek() >= '1' && p.s.Peek() <= '9':
		for isDigit(p.s.Peek()) {
			sb.WriteRune(p.s.Peek())
			p.s.Advance()
		}
	default:
		return jsonvalue.Value{}, p.errorf("invalid number")
	}

	if p.s.Peek() == '.' {
		sb.WriteRune('.')
		p.s.Advance()
		if !isDigit(p.s.Peek()) {
			return jsonvalue.Value{}, p.errorf("invalid number")
		}
		for isDigit(p.s.Peek()) {
			sb.WriteRune(p.s.Peek())
			p.s.Advance()
		}
	}

	if p.s.Peek() == 'e' || p.s.Peek() == 'E' {
		sb.WriteRune(p.s.Peek())
		p.s.Advance()
		if p.s.Peek() == '+' || p.s.Peek() == '-' {
			sb.WriteRune(p.s.Peek())
			p.s.Advance()
		}
		if !isDigit(p.s.Peek()) {
			return jsonvalue.Value{}, p.errorf("invalid number")
		}
		for isDigit(p.s.Peek()) {
			sb.WriteRune(p.s.Peek())
			p.s.Advance()
		}
	}

	f, err := jsonnum.ParseNumberString(sb.String())
	if err != nil {
		return jsonvalue.Value{}, p.errorf("invalid number")
	}
	return jsonvalue.Num(f), nil
}

// parseString parses a '"'-delimited string, decoding the recognized
// escapes. Body characters are appended verbatim.
func (p *parser) parseString() (jsonvalue.Value, error) {
	p.s.Advance() // opening quote
	var sb strings.Builder
	for {
		r := p.s.Peek()
		switch r {
		case jsonscan.EOF:
			return jsonvalue.Value{}, p.errorf("EOF while parsing string")
		case '"':
			p.s.Advance()
			return jsonvalue.Str(sb.String()), nil
		case '\\':
			p.s.Advance()
			decoded, err := p.parseEscape()
			if err != nil {
				return jsonvalue.Value{}, err
			}
			sb.WriteRune(decoded)
		default:
			sb.WriteRune(r)
			p.s.Advance()
		}
	}
}

func (p *parser) parseEscape() (rune, error) {
	switch esc := p.s.Peek(); esc {
	case '"', '\\', '/':
		p.s.Advance()
		return esc, nil
	case 'b':
		p.s.Advance()
		return '\b', nil
	case 'f':
		p.s.Advance()
		return '\f', nil
	case 'n':
		p.s.Advance()
		return '\n', nil
	case 'r':
		p.s.Advance()
		return '\r', nil
	case 't':
		p.s.Advance()
		return '\t', nil
	case 'u':
		p.s.Advance()
		return p.parseHex4()
	case jsonscan.EOF:
		return 0, p.errorf("EOF while parsing string")
	default:
		return 0, p.errorf("invalid escape")
	}
}

// parseHex4 reads exactly four case-insensitive hex digits and
// constructs the code point. Surrogate pairing is not performed (see
// spec's open question): a lone or unpaired \uXXXX unit decodes to
// its raw code point.
func (p *parser) parseHex4() (rune, error) {
	var val rune
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(p.s.Peek())
		if !ok {
			return 0, p.errorf("invalid \\u escape")
		}
		val = val*16 + rune(d)
		p.s.Advance()
	}
	return val, nil
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// parseList parses '[' optional-whitespace (']' | value (',' value)* ']').
func (p *parser) parseList() (jsonvalue.Value, error) {
	p.s.Advance() // '['
	p.skipWhitespace()
	if p.s.Peek() == ']' {
		p.s.Advance()
		return jsonvalue.List(nil), nil
	}

	var elems []jsonvalue.Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		elems = append(elems, v)
		p.skipWhitespace()

		switch p.s.Peek() {
		case ',':
			p.s.Advance()
			p.skipWhitespace()
			continue
		case ']':
			p.s.Advance()
			return jsonvalue.List(elems), nil
		case jsonscan.EOF:
			return jsonvalue.Value{}, p.errorf("EOF while parsing list")
		default:
			return jsonvalue.Value{}, p.errorf("expected ',' or ']'")
		}
	}
}

// parseObject parses '{' optional-whitespace ('}' | member (',' member)* '}'),
// where member is: string-key ':' value. Duplicate keys replace the
// earlier value (last write wins).
func (p *parser) parseObject() (jsonvalue.Value, error) {
	p.s.Advance() // '{'
	p.skipWhitespace()

	obj := jsonvalue.NewObject()
	if p.s.Peek() == '}' {
		p.s.Advance()
		return jsonvalue.Obj(obj), nil
	}

	for {
		p.skipWhitespace()
		if p.s.Peek() != '"' {
			if p.s.Peek() == jsonscan.EOF {
				return jsonvalue.Value{}, p.errorf("EOF while parsing object")
			}
			return jsonvalue.Value{}, p.errorf("key must be a string")
		}
		keyVal, err := p.parseString()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		key, _ := keyVal.AsString()

		p.skipWhitespace()
		if p.s.Peek() != ':' {
			if p.s.Peek() == jsonscan.EOF {
				return jsonvalue.Value{}, p.errorf("EOF while parsing object")
			}
			return jsonvalue.Value{}, p.errorf("expected ':'")
		}
		p.s.Advance()
		p.skipWhitespace()

		val, err := p.parseValue()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		obj.Set(key, val)
		p.skipWhitespace()

		switch p.s.Peek() {
		case ',':
			p.s.Advance()
			continue
		case '}':
			p.s.Advance()
			return jsonvalue.Obj(obj), nil
		case jsonscan.EOF:
			return jsonvalue.Value{}, p.errorf("EOF while parsing object")
		default:
			return jsonvalue.Value{}, p.errorf("expected ',' or '}'")
		}
	}
}
