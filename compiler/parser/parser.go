// Package parser turns a script into a sequence of assignment
// statements.  Each statement occupies one line; blank lines and
// lines starting with '#' are skipped.  Errors carry the 1-based line
// number of the offending statement.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/pkg/didyoumean"
)

var (
	verbNames   = []string{"filter", "select", "groupby", "agg", "sort"}
	loaderNames = []string{"read_parquet", "read_csv"}
)

// Parse parses script into assignment statements.
func Parse(script string) ([]*ast.Assign, error) {
	var stmts []*ast.Assign
	for n, line := range strings.Split(script, "\n") {
		tokens, err := lex(line)
		if err != nil {
			return nil, &rdata.ParseError{Line: n + 1, Message: err.Error()}
		}
		if len(tokens) == 0 {
			continue
		}
		p := &parser{line: n + 1, tokens: tokens}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

type parser struct {
	line   int
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Type: TokenEOF}
}

func (p *parser) next() Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) expect(tt TokenType) (Token, error) {
	t := p.next()
	if t.Type != tt {
		return t, p.errorf("expected %s, found %s", tt, t)
	}
	return t, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &rdata.ParseError{Line: p.line, Message: fmt.Sprintf(format, args...)}
}

// parseStatement parses one line of the form
//
//	<name> = pl.<loader>("path")
//	<name> = <source>.<operation>(...)
func (p *parser) parseStatement() (*ast.Assign, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if name.Val == "pl" {
		return nil, p.errorf("cannot assign to reserved name %q", "pl")
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	src, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenDot); err != nil {
		return nil, err
	}
	verb, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	var source string
	var op ast.Op
	if src.Val == "pl" {
		op, err = p.parseLoad(verb.Val)
	} else {
		source = src.Val
		op, err = p.parseVerb(verb.Val)
	}
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != TokenEOF {
		return nil, p.errorf("unexpected %s after statement", t)
	}
	return &ast.Assign{Line: p.line, Name: name.Val, Source: source, Op: op}, nil
}

func (p *parser) parseLoad(fn string) (ast.Op, error) {
	var loader string
	switch fn {
	case "read_parquet":
		loader = "parquet"
	case "read_csv":
		loader = "csv"
	default:
		if s := didyoumean.For(fn, loaderNames); s != "" {
			return nil, p.errorf("unknown loader %q (did you mean %q?)", "pl."+fn, "pl."+s)
		}
		return nil, p.errorf("unknown loader %q", "pl."+fn)
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	path, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &ast.Load{Loader: loader, Path: path.Val}, nil
}

func (p *parser) parseVerb(verb string) (ast.Op, error) {
	switch verb {
	case "filter":
		return p.parseFilter()
	case "select":
		return p.parseSelect()
	case "groupby":
		return p.parseGroupBy()
	case "agg":
		return p.parseAgg(nil)
	case "sort":
		return p.parseSort()
	}
	if s := didyoumean.For(verb, verbNames); s != "" {
		return nil, p.errorf("unknown operation %q (did you mean %q?)", verb, s)
	}
	return nil, p.errorf("unknown operation %q", verb)
}

func (p *parser) parseFilter() (ast.Op, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	col, err := p.parseColRef()
	if err != nil {
		return nil, err
	}
	opTok := p.next()
	switch opTok.Type {
	case TokenEq, TokenNeq, TokenLt, TokenGt, TokenLte, TokenGte:
	default:
		return nil, p.errorf("expected comparison operator, found %s", opTok)
	}
	val, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &ast.Filter{Cond: ast.Comparison{Column: col, Op: opTok.Val, Value: val}}, nil
}

func (p *parser) parseSelect() (ast.Op, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cols, err := p.parseStringList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &ast.Select{Columns: cols}, nil
}

func (p *parser) parseGroupBy() (ast.Op, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	keys, err := p.parseStringList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	if p.peek().Type != TokenDot {
		// Missing .agg(...) is caught during validation so the
		// error can say which line defined the bare groupby.
		return &ast.GroupBy{Keys: keys}, nil
	}
	p.next()
	fn, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if fn.Val != "agg" {
		return nil, p.errorf("expected agg(...) after groupby, found %q", fn.Val)
	}
	return p.parseAgg(keys)
}

// parseAgg parses agg(pl.col("x").fn(), ...).  With nil keys the
// result aggregates the whole frame into a single row.
func (p *parser) parseAgg(keys []string) (ast.Op, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	if p.peek().Type == TokenRParen {
		return nil, p.errorf("agg requires at least one aggregation expression")
	}
	var aggs []ast.AggExpr
	for {
		col, err := p.parseColRef()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenDot); err != nil {
			return nil, err
		}
		fn, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		aggs = append(aggs, ast.AggExpr{Column: col, Func: fn.Val})
		if p.peek().Type != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &ast.GroupBy{Keys: keys, Aggs: aggs}, nil
}

func (p *parser) parseSort() (ast.Op, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cols, err := p.parseStringList()
	if err != nil {
		return nil, err
	}
	keys := make([]ast.SortKey, len(cols))
	for i, c := range cols {
		keys[i] = ast.SortKey{Column: c}
	}
	if p.peek().Type == TokenComma {
		p.next()
		kw, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if kw.Val != "descending" {
			return nil, p.errorf("unknown sort option %q", kw.Val)
		}
		if _, err := p.expect(TokenAssign); err != nil {
			return nil, err
		}
		desc, bracketed, err := p.parseBoolList()
		if err != nil {
			return nil, err
		}
		switch {
		case !bracketed:
			// Only the bare form descending=True broadcasts; a
			// bracketed list must match the keys one for one.
			for i := range keys {
				keys[i].Descending = desc[0]
			}
		case len(desc) == len(keys):
			for i := range keys {
				keys[i].Descending = desc[i]
			}
		default:
			return nil, p.errorf("descending has %d values for %d sort keys", len(desc), len(keys))
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &ast.Sort{Keys: keys}, nil
}

// parseColRef parses pl.col("name") and returns the column name.
func (p *parser) parseColRef() (string, error) {
	t, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	if t.Val != "pl" {
		return "", p.errorf("expected pl.col(...), found %q", t.Val)
	}
	if _, err := p.expect(TokenDot); err != nil {
		return "", err
	}
	fn, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	if fn.Val != "col" {
		return "", p.errorf("expected pl.col(...), found %q", "pl."+fn.Val)
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return "", err
	}
	name, err := p.expect(TokenString)
	if err != nil {
		return "", err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return "", err
	}
	return name.Val, nil
}

func (p *parser) parseLiteral() (rdata.Value, error) {
	t := p.next()
	switch t.Type {
	case TokenInt:
		v, err := strconv.ParseInt(t.Val, 10, 64)
		if err != nil {
			return rdata.Value{}, p.errorf("invalid integer literal %q", t.Val)
		}
		return rdata.NewInt64(v), nil
	case TokenFloat:
		v, err := strconv.ParseFloat(t.Val, 64)
		if err != nil {
			return rdata.Value{}, p.errorf("invalid numeric literal %q", t.Val)
		}
		return rdata.NewFloat64(v), nil
	case TokenString:
		return rdata.NewString(t.Val), nil
	case TokenTrue:
		return rdata.NewBool(true), nil
	case TokenFalse:
		return rdata.NewBool(false), nil
	}
	return rdata.Value{}, p.errorf("expected literal, found %s", t)
}

// parseStringList accepts either a single string or a bracketed,
// comma-separated list of strings.
func (p *parser) parseStringList() ([]string, error) {
	if p.peek().Type == TokenString {
		return []string{p.next().Val}, nil
	}
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	var list []string
	for {
		s, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		list = append(list, s.Val)
		if p.peek().Type != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return list, nil
}

// parseBoolList accepts either a single boolean or a bracketed,
// comma-separated list of booleans, and reports which form it saw.
func (p *parser) parseBoolList() ([]bool, bool, error) {
	switch p.peek().Type {
	case TokenTrue:
		p.next()
		return []bool{true}, false, nil
	case TokenFalse:
		p.next()
		return []bool{false}, false, nil
	}
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, false, err
	}
	var list []bool
	for {
		switch t := p.next(); t.Type {
		case TokenTrue:
			list = append(list, true)
		case TokenFalse:
			list = append(list, false)
		default:
			return nil, false, p.errorf("expected True or False, found %s", t)
		}
		if p.peek().Type != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, false, err
	}
	return list, true, nil
}
