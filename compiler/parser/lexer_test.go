package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tokens, err := lex(`out = df.sort(["a", "b"], descending=True) # trailing comment`)
	require.NoError(t, err)
	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{
		TokenIdent, TokenAssign, TokenIdent, TokenDot, TokenIdent,
		TokenLParen, TokenLBracket, TokenString, TokenComma, TokenString,
		TokenRBracket, TokenComma, TokenIdent, TokenAssign, TokenTrue,
		TokenRParen,
	}, types)
	assert.Equal(t, "descending", tokens[12].Val)
}

func TestLexNumbers(t *testing.T) {
	tokens, err := lex("1 -2 3.5 -4.25 30.sort")
	require.NoError(t, err)
	require.Len(t, tokens, 7)
	assert.Equal(t, Token{TokenInt, "1", 0}, tokens[0])
	assert.Equal(t, Token{TokenInt, "-2", 2}, tokens[1])
	assert.Equal(t, Token{TokenFloat, "3.5", 5}, tokens[2])
	assert.Equal(t, Token{TokenFloat, "-4.25", 9}, tokens[3])
	assert.Equal(t, Token{TokenInt, "30", 15}, tokens[4])
	assert.Equal(t, Token{TokenDot, ".", 17}, tokens[5])
	assert.Equal(t, Token{TokenIdent, "sort", 18}, tokens[6])
}

func TestLexStrings(t *testing.T) {
	tokens, err := lex(`x = "say \"hi\""`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, `say "hi"`, tokens[2].Val)

	_, err = lex(`x = "unterminated`)
	assert.EqualError(t, err, "unterminated string starting at column 5")

	_, err = lex("x ! y")
	assert.EqualError(t, err, "unexpected character '!' at column 3 (did you mean '!='?)")
}

func TestLexComment(t *testing.T) {
	tokens, err := lex("   # nothing here")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
