package syntax

import (
	"fmt"
)

type parser struct {
	tokens []*Token
	idx    int
	ast    *AST
}

// Parse turns source text into an AST rooted at a Program node.
func Parse(name string, content string) (*AST, error) {
	source := NewSource(name, content)
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{
		tokens: tokens,
		ast:    NewAST(),
	}
	root, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	p.ast.SetRoot(root)
	return p.ast, nil
}

func unexpected(token *Token) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedToken, token)
}

func (p *parser) current() *Token {
	if p.idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.idx]
}

func (p *parser) peek(n int) *Token {
	if p.idx+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.idx+n]
}

func (p *parser) consume() *Token {
	token := p.current()
	if p.idx < len(p.tokens) {
		p.idx++
	}
	return token
}

func (p *parser) isSymbol(text string) bool {
	return p.current().Is(TokenSymbol, text)
}

func (p *parser) isKeyword(text string) bool {
	return p.current().Is(TokenKeyword, text)
}

func (p *parser) expectSymbol(text string) (*Token, error) {
	token := p.current()
	if !token.Is(TokenSymbol, text) {
		return nil, WithPos(
			fmt.Errorf("%w: %s, expecting %q", ErrUnexpectedToken, token, text),
			token.Pos,
		)
	}
	return p.consume(), nil
}

func (p *parser) expectIdentifier() (*Token, error) {
	token := p.current()
	if token.Kind != TokenIdentifier {
		return nil, WithPos(
			fmt.Errorf("%w: %s, expecting identifier", ErrUnexpectedToken, token),
			token.Pos,
		)
	}
	return p.consume(), nil
}

// expectName accepts keywords too, so methods and fields may be named new,
// class and so on.
func (p *parser) expectName() (*Token, error) {
	if p.current().Kind == TokenKeyword {
		return p.consume(), nil
	}
	return p.expectIdentifier()
}

func (p *parser) skipSemicolon() {
	if p.isSymbol(";") {
		p.consume()
	}
}

func (p *parser) parseProgram() (NodeID, error) {
	pos := p.current().Pos
	var children []NodeID
	for p.current().Kind != TokenEOF {
		var id NodeID
		var err error
		if p.isKeyword("class") {
			id, err = p.parseClass()
		} else {
			id, err = p.parseStmt()
		}
		if err != nil {
			return 0, err
		}
		children = append(children, id)
	}
	return p.ast.Add(Program, "", pos, children...), nil
}

func (p *parser) parseClass() (NodeID, error) {
	pos := p.consume().Pos
	name, err := p.expectIdentifier()
	if err != nil {
		return 0, err
	}
	if _, err := p.expectSymbol("{"); err != nil {
		return 0, err
	}
	var methods []NodeID
	for !p.isSymbol("}") {
		if !p.isKeyword("method") {
			token := p.current()
			return 0, WithPos(
				fmt.Errorf("%w: %s, expecting method declaration", ErrUnexpectedToken, token),
				token.Pos,
			)
		}
		method, err := p.parseMethod()
		if err != nil {
			return 0, err
		}
		methods = append(methods, method)
	}
	p.consume()
	return p.ast.Add(ClassDecl, name.Text, pos, methods...), nil
}

func (p *parser) parseMethod() (NodeID, error) {
	pos := p.consume().Pos
	name, err := p.expectName()
	if err != nil {
		return 0, err
	}
	if _, err := p.expectSymbol("("); err != nil {
		return 0, err
	}
	var children []NodeID
	for !p.isSymbol(")") {
		if len(children) > 0 {
			if _, err := p.expectSymbol(","); err != nil {
				return 0, err
			}
		}
		param, err := p.expectIdentifier()
		if err != nil {
			return 0, err
		}
		children = append(children, p.ast.Add(Identifier, param.Text, param.Pos))
	}
	p.consume()
	body, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	children = append(children, body)
	return p.ast.Add(MethodDecl, name.Text, pos, children...), nil
}

func (p *parser) parseBlock() (NodeID, error) {
	open, err := p.expectSymbol("{")
	if err != nil {
		return 0, err
	}
	var stmts []NodeID
	for !p.isSymbol("}") {
		if p.current().Kind == TokenEOF {
			return 0, WithPos(unexpected(p.current()), p.current().Pos)
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return 0, err
		}
		stmts = append(stmts, stmt)
	}
	p.consume()
	return p.ast.Add(Block, "", open.Pos, stmts...), nil
}

func (p *parser) parseStmt() (NodeID, error) {
	token := p.current()

	switch {

	case token.Is(TokenKeyword, "var"):
		p.consume()
		name, err := p.expectIdentifier()
		if err != nil {
			return 0, err
		}
		var children []NodeID
		if p.isSymbol("=") {
			p.consume()
			value, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			children = append(children, value)
		}
		p.skipSemicolon()
		return p.ast.Add(VarDecl, name.Text, token.Pos, children...), nil

	case token.Is(TokenKeyword, "if"):
		return p.parseIf()

	case token.Is(TokenKeyword, "while"):
		return p.parseWhile()

	case token.Kind == TokenIdentifier && p.peek(1).Is(TokenSymbol, ":"):
		p.consume()
		p.consume()
		if !p.isKeyword("while") {
			return 0, WithPos(
				fmt.Errorf("%w: %s, expecting while", ErrUnexpectedToken, p.current()),
				p.current().Pos,
			)
		}
		loop, err := p.parseWhile()
		if err != nil {
			return 0, err
		}
		return p.ast.Add(Labeled, token.Text, token.Pos, loop), nil

	case token.Is(TokenKeyword, "break"), token.Is(TokenKeyword, "continue"):
		p.consume()
		category := Break
		if token.Text == "continue" {
			category = Continue
		}
		var label string
		if p.current().Kind == TokenIdentifier {
			label = p.consume().Text
		}
		p.skipSemicolon()
		return p.ast.Add(category, label, token.Pos), nil

	case token.Is(TokenKeyword, "return"):
		p.consume()
		var children []NodeID
		if !p.isSymbol(";") && !p.isSymbol("}") && p.current().Kind != TokenEOF {
			value, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			children = append(children, value)
		}
		p.skipSemicolon()
		return p.ast.Add(Return, "", token.Pos, children...), nil

	case token.Is(TokenKeyword, "log"):
		p.consume()
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSemicolon()
		return p.ast.Add(Log, "", token.Pos, value), nil

	case token.Is(TokenSymbol, "{"):
		return p.parseBlock()

	}

	expr, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.isSymbol("=") {
		assign := p.consume()
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSemicolon()
		return p.ast.Add(Assign, "", assign.Pos, expr, value), nil
	}
	p.skipSemicolon()
	return p.ast.Add(ExprStmt, "", token.Pos, expr), nil
}

func (p *parser) parseIf() (NodeID, error) {
	pos := p.consume().Pos
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	children := []NodeID{cond, then}
	if p.isKeyword("else") {
		p.consume()
		var alt NodeID
		if p.isKeyword("if") {
			alt, err = p.parseIf()
		} else {
			alt, err = p.parseBlock()
		}
		if err != nil {
			return 0, err
		}
		children = append(children, alt)
	}
	return p.ast.Add(If, "", pos, children...), nil
}

func (p *parser) parseWhile() (NodeID, error) {
	pos := p.consume().Pos
	cond, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	return p.ast.Add(While, "", pos, cond, body), nil
}

func (p *parser) parseExpr() (NodeID, error) {
	left, err := p.parseAnd()
	if err != nil {
		return 0, err
	}
	for p.isSymbol("||") {
		op := p.consume()
		right, err := p.parseAnd()
		if err != nil {
			return 0, err
		}
		left = p.ast.Add(Binary, op.Text, op.Pos, left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (NodeID, error) {
	left, err := p.parseComparison()
	if err != nil {
		return 0, err
	}
	for p.isSymbol("&&") {
		op := p.consume()
		right, err := p.parseComparison()
		if err != nil {
			return 0, err
		}
		left = p.ast.Add(Binary, op.Text, op.Pos, left, right)
	}
	return left, nil
}

func (p *parser) parseComparison() (NodeID, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	token := p.current()
	if token.Kind == TokenSymbol {
		switch token.Text {
		case "==", "!=", "<", "<=", ">", ">=":
			p.consume()
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			return p.ast.Add(Binary, token.Text, token.Pos, left, right), nil
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (NodeID, error) {
	if p.isSymbol("!") {
		op := p.consume()
		operand, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return p.ast.Add(Unary, op.Text, op.Pos, operand), nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (NodeID, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	for p.isSymbol(".") {
		p.consume()
		name, err := p.expectName()
		if err != nil {
			return 0, err
		}
		expr = p.ast.Add(Field, name.Text, name.Pos, expr)
		if p.isSymbol("(") {
			args, err := p.parseArgs()
			if err != nil {
				return 0, err
			}
			expr = p.ast.Add(Call, name.Text, name.Pos, append([]NodeID{expr}, args...)...)
		}
	}
	// calls on anything other than a field access are rejected by the compiler
	if p.isSymbol("(") {
		pos := p.current().Pos
		args, err := p.parseArgs()
		if err != nil {
			return 0, err
		}
		expr = p.ast.Add(Call, "", pos, append([]NodeID{expr}, args...)...)
	}
	return expr, nil
}

func (p *parser) parseArgs() ([]NodeID, error) {
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []NodeID
	for !p.isSymbol(")") {
		if len(args) > 0 {
			if _, err := p.expectSymbol(","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.consume()
	return args, nil
}

func (p *parser) parsePrimary() (NodeID, error) {
	token := p.current()

	switch token.Kind {

	case TokenString:
		p.consume()
		return p.ast.Add(StringLit, token.Text, token.Pos), nil

	case TokenNumber:
		p.consume()
		return p.ast.Add(NumberLit, token.Text, token.Pos), nil

	case TokenIdentifier:
		p.consume()
		return p.ast.Add(Identifier, token.Text, token.Pos), nil

	case TokenKeyword:
		switch token.Text {
		case "true", "false":
			p.consume()
			return p.ast.Add(BoolLit, token.Text, token.Pos), nil
		case "null":
			p.consume()
			return p.ast.Add(NullLit, "", token.Pos), nil
		case "this":
			p.consume()
			return p.ast.Add(This, "", token.Pos), nil
		case "new":
			p.consume()
			name, err := p.expectIdentifier()
			if err != nil {
				return 0, err
			}
			args, err := p.parseArgs()
			if err != nil {
				return 0, err
			}
			return p.ast.Add(New, name.Text, token.Pos, args...), nil
		}

	case TokenSymbol:
		if token.Text == "(" {
			p.consume()
			expr, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			if _, err := p.expectSymbol(")"); err != nil {
				return 0, err
			}
			return expr, nil
		}

	}

	return 0, WithPos(unexpected(token), token.Pos)
}
