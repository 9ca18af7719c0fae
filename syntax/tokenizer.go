package syntax

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

type Tokenizer struct {
	source  *bufio.Reader
	file    *Source
	current *Token

	currPos Pos
	prevPos Pos
}

func NewTokenizer(file *Source) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(strings.NewReader(file.Content)),
		file:   file,
		currPos: Pos{
			Source: file,
			Line:   1,
			Column: 1,
		},
	}
}

func (t *Tokenizer) readRune() (rune, error) {
	r, _, err := t.source.ReadRune()
	if err != nil {
		return 0, err
	}

	t.prevPos = t.currPos
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return r, nil
}

func (t *Tokenizer) unreadRune() {
	t.source.UnreadRune()
	t.currPos = t.prevPos
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.current == nil {
		var err error
		t.current, err = t.parseNext()
		if err != nil {
			return nil, err
		}
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	t.current = nil
}

// Tokenize reads the whole source, stopping at the first invalid token.
func Tokenize(file *Source) ([]*Token, error) {
	tokenizer := NewTokenizer(file)
	var tokens []*Token
	for {
		token, err := tokenizer.Current()
		if err != nil {
			return nil, err
		}
		tokenizer.Consume()
		if token.Kind == TokenInvalid {
			return nil, WithPos(
				unexpected(token),
				token.Pos,
			)
		}
		tokens = append(tokens, token)
		if token.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (t *Tokenizer) parseNext() (*Token, error) {
	t.skipWhitespace()
	startPos := t.currPos

	r, err := t.readRune()
	if err == io.EOF {
		return &Token{Kind: TokenEOF, Pos: startPos}, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case r == '#':
		t.skipComment()
		return t.parseNext()
	case r == '/':
		next, err := t.readRune()
		if err == nil && next == '/' {
			t.skipComment()
			return t.parseNext()
		}
		if err == nil {
			t.unreadRune()
		}
		return &Token{Kind: TokenInvalid, Text: "/", Pos: startPos}, nil
	case r == '\'' || r == '"' || r == '`':
		return t.parseString(r, startPos)
	case unicode.IsDigit(r):
		t.unreadRune()
		return t.parseNumber()
	case r == '_' || unicode.IsLetter(r):
		t.unreadRune()
		return t.parseIdentifier()
	}

	return t.parseSymbol(r, startPos)
}

func (t *Tokenizer) skipWhitespace() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(r) {
			t.unreadRune()
			return
		}
	}
}

func (t *Tokenizer) skipComment() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			return
		}
	}
}

func (t *Tokenizer) parseSymbol(r rune, startPos Pos) (*Token, error) {
	next, err := t.readRune()
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err == nil {
		pair := string([]rune{r, next})
		for _, sym := range symbols {
			if sym == pair {
				return &Token{Kind: TokenSymbol, Text: pair, Pos: startPos}, nil
			}
		}
		t.unreadRune()
	}
	single := string(r)
	for _, sym := range symbols {
		if sym == single {
			return &Token{Kind: TokenSymbol, Text: single, Pos: startPos}, nil
		}
	}
	return &Token{Kind: TokenInvalid, Text: single, Pos: startPos}, nil
}

func (t *Tokenizer) parseIdentifier() (*Token, error) {
	startPos := t.currPos
	var buf bytes.Buffer
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			t.unreadRune()
			break
		}
		buf.WriteRune(r)
	}
	kind := TokenIdentifier
	if keywords[buf.String()] {
		kind = TokenKeyword
	}
	return &Token{
		Kind: kind,
		Text: buf.String(),
		Pos:  startPos,
	}, nil
}

func (t *Tokenizer) parseNumber() (*Token, error) {
	startPos := t.currPos
	var buf bytes.Buffer
	hasDot := false
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if unicode.IsDigit(r) {
			buf.WriteRune(r)
		} else if r == '.' && !hasDot {
			hasDot = true
			buf.WriteRune(r)
		} else {
			t.unreadRune()
			break
		}
	}
	return &Token{
		Kind: TokenNumber,
		Text: buf.String(),
		Pos:  startPos,
	}, nil
}

func (t *Tokenizer) parseString(quote rune, startPos Pos) (*Token, error) {
	var buf bytes.Buffer
	for {
		r, err := t.readRune()
		if err == io.EOF {
			// unmatched quote
			return &Token{Kind: TokenInvalid, Text: buf.String(), Pos: startPos}, nil
		}
		if err != nil {
			return nil, err
		}
		if r == quote {
			break
		}

		if quote != '`' && r == '\\' {
			next, err := t.readRune()
			if err == io.EOF {
				buf.WriteRune(r)
				break
			}
			if err != nil {
				return nil, err
			}
			switch next {
			case 'n':
				buf.WriteRune('\n')
			case 'r':
				buf.WriteRune('\r')
			case 't':
				buf.WriteRune('\t')
			case '\\':
				buf.WriteRune('\\')
			case '"':
				buf.WriteRune('"')
			case '\'':
				buf.WriteRune('\'')
			default:
				buf.WriteRune('\\')
				buf.WriteRune(next)
			}
		} else {
			buf.WriteRune(r)
		}
	}
	return &Token{
		Kind: TokenString,
		Text: buf.String(),
		Pos:  startPos,
	}, nil
}
