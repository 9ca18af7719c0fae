package syntax

import (
	"fmt"
	"strings"
)

type Source struct {
	Name    string
	Content string
	Lines   []string
}

func NewSource(name string, content string) *Source {
	return &Source{
		Name:    name,
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}
}

type Pos struct {
	Source *Source
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.Source == nil {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source.Name, p.Line, p.Column)
}
