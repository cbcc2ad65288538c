package parser

import (
	"fmt"
	"unicode"
)

// TokenType identifies a lexical token within one script line.
type TokenType int

const (
	// structural
	TokenAssign TokenType = iota
	TokenDot
	TokenComma
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket

	// comparison operators
	TokenEq
	TokenNeq
	TokenLt
	TokenGt
	TokenLte
	TokenGte

	// literals
	TokenInt
	TokenFloat
	TokenString
	TokenTrue
	TokenFalse

	TokenIdent
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenAssign: "'='", TokenDot: "'.'", TokenComma: "','",
	TokenLParen: "'('", TokenRParen: "')'", TokenLBracket: "'['", TokenRBracket: "']'",
	TokenEq: "'=='", TokenNeq: "'!='", TokenLt: "'<'", TokenGt: "'>'", TokenLte: "'<='", TokenGte: "'>='",
	TokenInt: "integer", TokenFloat: "number", TokenString: "string",
	TokenTrue: "True", TokenFalse: "False",
	TokenIdent: "identifier", TokenEOF: "end of line",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// Token is a single lexical token.  Pos is the rune offset within the
// line, used in error messages.
type Token struct {
	Type TokenType
	Val  string
	Pos  int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of line"
	}
	return fmt.Sprintf("%q", t.Val)
}

var keywords = map[string]TokenType{
	"True":  TokenTrue,
	"true":  TokenTrue,
	"False": TokenFalse,
	"false": TokenFalse,
}

// lex tokenizes one script line.  A '#' outside a string ends the line.
func lex(line string) ([]Token, error) {
	var tokens []Token
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		if unicode.IsSpace(ch) {
			i++
			continue
		}
		if ch == '#' {
			break
		}
		pos := i
		switch ch {
		case '.':
			tokens = append(tokens, Token{TokenDot, ".", pos})
			i++
			continue
		case ',':
			tokens = append(tokens, Token{TokenComma, ",", pos})
			i++
			continue
		case '(':
			tokens = append(tokens, Token{TokenLParen, "(", pos})
			i++
			continue
		case ')':
			tokens = append(tokens, Token{TokenRParen, ")", pos})
			i++
			continue
		case '[':
			tokens = append(tokens, Token{TokenLBracket, "[", pos})
			i++
			continue
		case ']':
			tokens = append(tokens, Token{TokenRBracket, "]", pos})
			i++
			continue
		case '=':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, Token{TokenEq, "==", pos})
				i += 2
			} else {
				tokens = append(tokens, Token{TokenAssign, "=", pos})
				i++
			}
			continue
		case '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, Token{TokenNeq, "!=", pos})
				i += 2
				continue
			}
			return nil, fmt.Errorf("unexpected character '!' at column %d (did you mean '!='?)", pos+1)
		case '<':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, Token{TokenLte, "<=", pos})
				i += 2
			} else {
				tokens = append(tokens, Token{TokenLt, "<", pos})
				i++
			}
			continue
		case '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, Token{TokenGte, ">=", pos})
				i += 2
			} else {
				tokens = append(tokens, Token{TokenGt, ">", pos})
				i++
			}
			continue
		case '-':
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				tok, next := lexNumber(runes, i)
				tokens = append(tokens, tok)
				i = next
				continue
			}
			return nil, fmt.Errorf("unexpected character '-' at column %d", pos+1)
		case '"':
			tok, next, err := lexString(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
			continue
		}
		if unicode.IsDigit(ch) {
			tok, next := lexNumber(runes, i)
			tokens = append(tokens, tok)
			i = next
			continue
		}
		if ch == '_' || unicode.IsLetter(ch) {
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			word := string(runes[start:i])
			if tt, ok := keywords[word]; ok {
				tokens = append(tokens, Token{tt, word, start})
			} else {
				tokens = append(tokens, Token{TokenIdent, word, start})
			}
			continue
		}
		return nil, fmt.Errorf("unexpected character %q at column %d", string(ch), pos+1)
	}
	return tokens, nil
}

func lexNumber(runes []rune, start int) (Token, int) {
	i := start
	if runes[i] == '-' {
		i++
	}
	sawDot := false
	for i < len(runes) {
		if unicode.IsDigit(runes[i]) {
			i++
			continue
		}
		if runes[i] == '.' && !sawDot && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			sawDot = true
			i++
			continue
		}
		break
	}
	val := string(runes[start:i])
	if sawDot {
		return Token{TokenFloat, val, start}, i
	}
	return Token{TokenInt, val, start}, i
}

func lexString(runes []rune, start int) (Token, int, error) {
	var b []rune
	i := start + 1
	for i < len(runes) {
		switch runes[i] {
		case '\\':
			if i+1 >= len(runes) {
				return Token{}, 0, fmt.Errorf("unterminated string starting at column %d", start+1)
			}
			b = append(b, runes[i+1])
			i += 2
		case '"':
			return Token{TokenString, string(b), start}, i + 1, nil
		default:
			b = append(b, runes[i])
			i++
		}
	}
	return Token{}, 0, fmt.Errorf("unterminated string starting at column %d", start+1)
}
