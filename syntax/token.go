package syntax

import "fmt"

type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenEOF
	TokenIdentifier
	TokenKeyword
	TokenString
	TokenNumber
	TokenSymbol
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenSymbol:
		return "symbol"
	}
	return "invalid"
}

func (t *Token) String() string {
	if t.Kind == TokenEOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

func (t *Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

var keywords = map[string]bool{
	"break":    true,
	"class":    true,
	"continue": true,
	"else":     true,
	"false":    true,
	"if":       true,
	"log":      true,
	"method":   true,
	"new":      true,
	"null":     true,
	"return":   true,
	"this":     true,
	"true":     true,
	"var":      true,
	"while":    true,
}

// two-rune symbols are matched before single runes
var symbols = []string{
	"==", "!=", "<=", ">=", "&&", "||",
	"=", "<", ">", "!", ".", ",", ";", ":", "(", ")", "{", "}",
}
