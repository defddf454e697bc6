// Package parser implements the formula expression language's Pratt
// (precedence-climbing) parser: tokens in, a single-expression AST out.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/formulaengine/core/ast"
	"github.com/formulaengine/core/lexer"
)

// ParseError is a syntax error raised while building the AST.
type ParseError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

func tokenToRange(tok lexer.Token) *ast.Range {
	start := ast.Position{Offset: tok.Offset, Line: tok.Line, Column: tok.Column}
	end := ast.Position{Offset: tok.Offset + len(tok.Value), Line: tok.Line, Column: tok.Column + len([]rune(tok.Value))}
	return &ast.Range{Start: start, End: end}
}

func spanRange(from, to *ast.Range) *ast.Range {
	if from == nil {
		return to
	}
	if to == nil {
		return from
	}
	return &ast.Range{Start: from.Start, End: to.End}
}

// precedence levels, higher binds tighter. Matches spec §4.2.
type precedence int

const (
	precLowest precedence = iota
	precTernary
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precCall
	precMember
)

var binaryPrecedence = map[lexer.TokenType]precedence{
	lexer.OR:            precOr,
	lexer.AND:           precAnd,
	lexer.EQUAL:         precEquality,
	lexer.NOT_EQUAL:     precEquality,
	lexer.GREATER_THAN:  precComparison,
	lexer.LESS_THAN:     precComparison,
	lexer.GREATER_EQUAL: precComparison,
	lexer.LESS_EQUAL:    precComparison,
	lexer.PLUS:          precAdditive,
	lexer.MINUS:         precAdditive,
	lexer.MULTIPLY:      precMultiplicative,
	lexer.DIVIDE:        precMultiplicative,
	lexer.MODULUS:       precMultiplicative,
	lexer.EXPONENT:      precExponent,
}

// Parser turns a token stream into a single AST expression.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over an already-tokenized stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) lexer.Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, &ParseError{
			Message: fmt.Sprintf("expected %s, got %s", tt, tok.Type),
			Offset:  tok.Offset, Line: tok.Line, Column: tok.Column,
		}
	}
	return p.advance(), nil
}

// ParseExpression parses one expression at the lowest precedence
// (ternary and below).
func (p *Parser) ParseExpression() (ast.Node, error) {
	return p.parseTernary()
}

func (p *Parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseBinary(precOr)
	if err != nil {
		return nil, err
	}
	if p.current().Type != lexer.QUESTION {
		return cond, nil
	}
	p.advance() // consume '?'

	thenExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	// Alternate is parsed at the same (ternary) level so `a?b:c?d:e` chains
	// as `a?b:(c?d:e)`.
	elseExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{
		Condition: cond, Then: thenExpr, Else: elseExpr,
		Range: spanRange(cond.GetRange(), elseExpr.GetRange()),
	}, nil
}

// parseBinary implements precedence-climbing for left-associative binary
// operators, bottoming out at parseExponentOrHigher (right-associative) and then
// parseUnary/parsePostfix.
func (p *Parser) parseBinary(minPrec precedence) (ast.Node, error) {
	left, err := p.parseExponentOrHigher()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec || tok.Type == lexer.EXPONENT {
			break
		}
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{
			Operator: tok.Value, Left: left, Right: right,
			Range: spanRange(left.GetRange(), right.GetRange()),
		}
	}

	return left, nil
}

// parseExponentOrHigher handles `^` (right-associative, binds tighter than
// all other binary operators) above unary/postfix.
func (p *Parser) parseExponentOrHigher() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if p.current().Type == lexer.EXPONENT {
		opTok := p.advance()
		right, err := p.parseExponentOrHigher() // right-assoc: compute right at power-1 recursively
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOperation{
			Operator: opTok.Value, Left: left, Right: right,
			Range: spanRange(left.GetRange(), right.GetRange()),
		}, nil
	}

	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	tok := p.current()
	if tok.Type == lexer.MINUS || tok.Type == lexer.NOT {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{
			Operator: tok.Value, Operand: operand,
			Range: spanRange(tokenToRange(tok), operand.GetRange()),
		}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses member/index access chains, left-associatively,
// after a primary expression (function calls are parsed in parsePrimary).
func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Type {
		case lexer.DOT:
			p.advance()
			propTok := p.current()
			if propTok.Type != lexer.IDENTIFIER && propTok.Type != lexer.VARIABLE {
				return nil, &ParseError{
					Message: fmt.Sprintf("expected property name after '.', got %s", propTok.Type),
					Offset:  propTok.Offset, Line: propTok.Line, Column: propTok.Column,
				}
			}
			p.advance()
			node = &ast.MemberAccess{
				Object: node, Property: propTok.Value,
				Range: spanRange(node.GetRange(), tokenToRange(propTok)),
			}

		case lexer.LBRACKET:
			p.advance()
			idx, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(lexer.RBRACKET)
			if err != nil {
				return nil, err
			}
			node = &ast.IndexAccess{
				Object: node, Index: idx,
				Range: spanRange(node.GetRange(), tokenToRange(closeTok)),
			}

		default:
			return node, nil
		}
	}
}

// parseArgumentList parses a parenthesized, comma-separated expression list.
func (p *Parser) parseArgumentList() ([]ast.Node, *ast.Range, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, nil, err
	}

	var args []ast.Node
	if p.current().Type != lexer.RPAREN {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}

	closeTok, err := p.expect(lexer.RPAREN)
	if err != nil {
		return nil, nil, err
	}
	return args, tokenToRange(closeTok), nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		if tok.Kind == lexer.NumberFloat {
			f, err := strconv.ParseFloat(tok.Value, 64)
			if err != nil {
				return nil, &ParseError{
					Message: fmt.Sprintf("invalid number %q: %v", tok.Value, err),
					Offset:  tok.Offset, Line: tok.Line, Column: tok.Column,
				}
			}
			return &ast.FloatLiteral{Value: f, Range: tokenToRange(tok)}, nil
		}
		return &ast.DecimalLiteral{Text: tok.Value, Range: tokenToRange(tok)}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Value, Range: tokenToRange(tok)}, nil

	case lexer.BOOLEAN:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Value == "true", Range: tokenToRange(tok)}, nil

	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{Range: tokenToRange(tok)}, nil

	case lexer.VARIABLE:
		p.advance()
		return &ast.VariableReference{Prefix: ast.VariablePrefixDollar, Name: tok.Value, Range: tokenToRange(tok)}, nil

	case lexer.CONTEXT_VAR:
		p.advance()
		return &ast.VariableReference{Prefix: ast.VariablePrefixAt, Name: tok.Value, Range: tokenToRange(tok)}, nil

	case lexer.IDENTIFIER:
		if p.peek(1).Type == lexer.LPAREN {
			nameTok := p.advance()
			args, closeRange, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return &ast.FunctionCall{
				Name: strings.ToUpper(nameTok.Value), Arguments: args,
				Range: spanRange(tokenToRange(nameTok), closeRange),
			}, nil
		}
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected bare identifier %q: operands must be $variables, @context values, literals, or function calls", tok.Value),
			Offset:  tok.Offset, Line: tok.Line, Column: tok.Column,
		}

	case lexer.LPAREN:
		p.advance()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.LBRACKET:
		return p.parseArrayLiteral()

	case lexer.LBRACE:
		return p.parseObjectLiteral()

	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token %s", tok.Type),
			Offset:  tok.Offset, Line: tok.Line, Column: tok.Column,
		}
	}
}

func (p *Parser) parseArrayLiteral() (ast.Node, error) {
	openTok := p.advance() // consume '['

	var elements []ast.Node
	if p.current().Type != lexer.RBRACKET {
		for {
			el, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	closeTok, err := p.expect(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Elements: elements, Range: spanRange(tokenToRange(openTok), tokenToRange(closeTok))}, nil
}

func (p *Parser) parseObjectLiteral() (ast.Node, error) {
	openTok := p.advance() // consume '{'

	var props []ast.ObjectProperty
	if p.current().Type != lexer.RBRACE {
		for {
			keyTok := p.current()
			if keyTok.Type != lexer.IDENTIFIER {
				return nil, &ParseError{
					Message: fmt.Sprintf("expected object key, got %s", keyTok.Type),
					Offset:  keyTok.Offset, Line: keyTok.Line, Column: keyTok.Column,
				}
			}
			p.advance()
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			valueExpr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			props = append(props, ast.ObjectProperty{Key: keyTok.Value, Value: valueExpr})
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	closeTok, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectLiteral{Properties: props, Range: spanRange(tokenToRange(openTok), tokenToRange(closeTok))}, nil
}

// Parse tokenizes and parses a single expression using the default
// `$`/`@` prefixes, failing if any tokens remain after a complete
// expression (§4.2: "surplus tokens ... are an error").
func Parse(text string) (ast.Node, error) {
	return ParseWithOptions(text, lexer.DefaultOptions())
}

// ParseWithOptions tokenizes and parses text using caller-supplied
// variable/context prefixes (§6.2's `variable_prefix`/`context_prefix`
// engine options), otherwise behaving exactly like Parse.
func ParseWithOptions(text string, opts lexer.Options) (ast.Node, error) {
	tokens, err := lexer.TokenizeWithOptions(text, opts)
	if err != nil {
		return nil, err
	}
	p := New(tokens)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.current().Type != lexer.EOF {
		tok := p.current()
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected trailing token %s", tok.Type),
			Offset:  tok.Offset, Line: tok.Line, Column: tok.Column,
		}
	}
	return expr, nil
}
