// Recursive descent parser for MCL. The parser pulls tokens from the
// concurrent lexer with one token of lookahead and builds the syntax tree
// consumed by the code generator.

package frontend

import (
	"fmt"
	"strconv"

	"mclc/src/ir"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// parser traverses the token stream emitted by the lexer and builds the
// syntax tree.
type parser struct {
	lex *lexer
	cur item // Token currently being considered.
	nxt item // One token lookahead.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Parse lexes and parses the source string src and returns the program block.
func Parse(src string) (*ir.Block, error) {
	l := newLexer(src, lexGlobal)
	go l.run()

	p := &parser{lex: l}
	// Load cur and nxt.
	p.advance()
	p.advance()
	return p.parseProgram()
}

// advance consumes the current token and pulls the next one from the lexer.
func (p *parser) advance() item {
	i := p.cur
	p.cur = p.nxt
	p.nxt = p.lex.nextItem()
	return i
}

// expect consumes and returns the current token iff it is of type typ.
func (p *parser) expect(typ itemType, what string) (item, error) {
	if p.cur.typ != typ {
		return p.cur, p.errorf("expected %s", what)
	}
	return p.advance(), nil
}

// errorf builds a parse error prefixed with the current token position.
func (p *parser) errorf(format string, args ...interface{}) error {
	if p.cur.typ == itemError {
		return fmt.Errorf("line %d:%d: %s", p.cur.line, p.cur.pos, p.cur.val)
	}
	msg := fmt.Sprintf(format, args...)
	if p.cur.typ == itemEOF {
		return fmt.Errorf("line %d:%d: %s, got end of file", p.cur.line, p.cur.pos, msg)
	}
	return fmt.Errorf("line %d:%d: %s, got %q", p.cur.line, p.cur.pos, msg, p.cur.val)
}

// pos converts an item position into a node position.
func pos(i item) ir.Pos {
	return ir.Pos{Line: i.line, Col: i.pos, EndLine: i.line, EndCol: i.pos + len(i.val) - 1}
}

// parseProgram parses statements until end of file and returns the top level
// program block.
func (p *parser) parseProgram() (*ir.Block, error) {
	blk := &ir.Block{Loc: pos(p.cur)}
	for p.cur.typ != itemEOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, s)
	}
	return blk, nil
}

// parseStatement parses a single statement, including its trailing semicolon
// where the grammar requires one.
func (p *parser) parseStatement() (ir.Stmt, error) {
	switch p.cur.typ {
	case DEF:
		return p.parseFnDecl()
	case TYPE:
		d, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(itemType(';'), "';' after declaration"); err != nil {
			return nil, err
		}
		return d, nil
	case RETURN:
		r := &ir.Return{Loc: pos(p.cur)}
		p.advance()
		if p.cur.typ != itemType(';') {
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			r.Value = v
		}
		if _, err := p.expect(itemType(';'), "';' after return statement"); err != nil {
			return nil, err
		}
		return r, nil
	case IF:
		return p.parseIf()
	case FOR:
		return p.parseFor()
	case itemType('{'):
		return p.parseBlock()
	case itemError:
		return nil, p.errorf("")
	default:
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(itemType(';'), "';' after expression"); err != nil {
			return nil, err
		}
		return &ir.ExprStmt{X: e}, nil
	}
}

// parseBlock parses a braced sequence of statements.
func (p *parser) parseBlock() (*ir.Block, error) {
	open, err := p.expect(itemType('{'), "'{'")
	if err != nil {
		return nil, err
	}
	blk := &ir.Block{Loc: pos(open)}
	for p.cur.typ != itemType('}') {
		if p.cur.typ == itemEOF {
			return nil, p.errorf("expected '}'")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, s)
	}
	p.advance()
	return blk, nil
}

// parseBody parses either a braced block or a single statement wrapped in a
// block, for the bodies of if, else and for.
func (p *parser) parseBody() (*ir.Block, error) {
	if p.cur.typ == itemType('{') {
		return p.parseBlock()
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ir.Block{Stmts: []ir.Stmt{s}, Loc: s.Span()}, nil
}

// parseVarDecl parses a variable declaration with an optional initializer.
// The trailing semicolon is left to the caller, so the production can be
// shared with function parameter lists.
func (p *parser) parseVarDecl() (*ir.VarDecl, error) {
	typ, err := p.expect(TYPE, "type name")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "identifier")
	if err != nil {
		return nil, err
	}
	d := &ir.VarDecl{
		Type: &ir.Identifier{Name: typ.val, Loc: pos(typ)},
		Name: &ir.Identifier{Name: name.val, Loc: pos(name)},
		Loc:  pos(typ),
	}
	if p.cur.typ == itemType('=') {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		d.Init = init
	}
	return d, nil
}

// parseFnDecl parses a function declaration. External functions are declared
// with the ext keyword and carry no body.
func (p *parser) parseFnDecl() (ir.Stmt, error) {
	def, err := p.expect(DEF, "'def'")
	if err != nil {
		return nil, err
	}
	ext := false
	if p.cur.typ == EXT {
		ext = true
		p.advance()
	}
	typ, err := p.expect(TYPE, "return type")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemType('('), "'('"); err != nil {
		return nil, err
	}
	params := make([]*ir.VarDecl, 0, 8) // Assume no more than 8 parameters.
	for p.cur.typ != itemType(')') {
		if len(params) > 0 {
			if _, err := p.expect(itemType(','), "','"); err != nil {
				return nil, err
			}
		}
		prm, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if prm.Init != nil {
			return nil, fmt.Errorf("line %d:%d: parameter %q cannot have a default value",
				prm.Loc.Line, prm.Loc.Col, prm.Name.Name)
		}
		params = append(params, prm)
	}
	p.advance()

	fn := &ir.FnDecl{
		Type:     &ir.Identifier{Name: typ.val, Loc: pos(typ)},
		Name:     &ir.Identifier{Name: name.val, Loc: pos(name)},
		Params:   params,
		External: ext,
		Loc:      pos(def),
	}
	if ext {
		if _, err := p.expect(itemType(';'), "';' after external function declaration"); err != nil {
			return nil, err
		}
		return fn, nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseIf parses an if statement with an optional else branch.
func (p *parser) parseIf() (ir.Stmt, error) {
	kw, err := p.expect(IF, "'if'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemType('('), "'(' after if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemType(')'), "')'"); err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt := &ir.If{Cond: cond, Then: then, Loc: pos(kw)}
	if p.cur.typ == ELSE {
		p.advance()
		els, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

// parseFor parses a ranged for loop: for i:int in from to to [by step] do body.
func (p *parser) parseFor() (ir.Stmt, error) {
	kw, err := p.expect(FOR, "'for'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "iterator name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemType(':'), "':' after iterator name"); err != nil {
		return nil, err
	}
	typ, err := p.expect(TYPE, "iterator type")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN, "'in'"); err != nil {
		return nil, err
	}
	from, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO, "'to'"); err != nil {
		return nil, err
	}
	to, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	loop := &ir.For{
		Iter: &ir.Identifier{Name: name.val, Loc: pos(name)},
		Type: &ir.Identifier{Name: typ.val, Loc: pos(typ)},
		From: from,
		To:   to,
		Loc:  pos(kw),
	}
	if p.cur.typ == BY {
		p.advance()
		step, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		loop.Step = step
	}
	if _, err := p.expect(DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	loop.Body = body
	return loop, nil
}

// parseExpression parses an expression. Assignment binds loosest and
// associates to the right.
func (p *parser) parseExpression() (ir.Expr, error) {
	if p.cur.typ == IDENTIFIER && p.nxt.typ == itemType('=') {
		target := p.advance()
		p.advance() // '='.
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ir.Assignment{
			Target: &ir.Identifier{Name: target.val, Loc: pos(target)},
			Value:  val,
			Loc:    pos(target),
		}, nil
	}
	return p.parseRelational()
}

// parseRelational parses relational operators, which bind looser than
// arithmetic.
func (p *parser) parseRelational() (ir.Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur.typ {
		case EQ:
			op = "=="
		case NE:
			op = "!="
		case LE:
			op = "<="
		case GE:
			op = ">="
		case itemType('<'):
			op = "<"
		case itemType('>'):
			op = ">"
		default:
			return lhs, nil
		}
		tok := p.advance()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &ir.BinaryOp{Op: op, Left: lhs, Right: rhs, Loc: pos(tok)}
	}
}

// parseAdditive parses addition and subtraction.
func (p *parser) parseAdditive() (ir.Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.typ == itemType('+') || p.cur.typ == itemType('-') {
		tok := p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &ir.BinaryOp{Op: tok.val, Left: lhs, Right: rhs, Loc: pos(tok)}
	}
	return lhs, nil
}

// parseMultiplicative parses multiplication, division and remainder.
func (p *parser) parseMultiplicative() (ir.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.typ == itemType('*') || p.cur.typ == itemType('/') || p.cur.typ == itemType('%') {
		tok := p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &ir.BinaryOp{Op: tok.val, Left: lhs, Right: rhs, Loc: pos(tok)}
	}
	return lhs, nil
}

// parseUnary parses unary minus.
func (p *parser) parseUnary() (ir.Expr, error) {
	if p.cur.typ == itemType('-') {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ir.UnaryOp{Op: "-", Operand: operand, Loc: pos(tok)}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses literals, identifiers, function calls and
// parenthesized expressions.
func (p *parser) parsePrimary() (ir.Expr, error) {
	switch p.cur.typ {
	case INTEGER:
		tok := p.advance()
		v, err := strconv.ParseInt(tok.val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d:%d: invalid integer literal %q: %s", tok.line, tok.pos, tok.val, err)
		}
		return &ir.Integer{Value: v, Loc: pos(tok)}, nil
	case FLOAT:
		tok := p.advance()
		v, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d:%d: invalid float literal %q: %s", tok.line, tok.pos, tok.val, err)
		}
		return &ir.Double{Value: v, Loc: pos(tok)}, nil
	case IDENTIFIER:
		tok := p.advance()
		id := &ir.Identifier{Name: tok.val, Loc: pos(tok)}
		if p.cur.typ != itemType('(') {
			return id, nil
		}
		p.advance()
		args := make([]ir.Expr, 0, 8) // Assume no more than 8 arguments.
		for p.cur.typ != itemType(')') {
			if len(args) > 0 {
				if _, err := p.expect(itemType(','), "','"); err != nil {
					return nil, err
				}
			}
			a, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		p.advance()
		return &ir.Call{Name: id, Args: args, Loc: pos(tok)}, nil
	case itemType('('):
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(itemType(')'), "')'"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errorf("expected expression")
	}
}
