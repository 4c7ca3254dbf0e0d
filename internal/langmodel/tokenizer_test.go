package langmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() *Model {
	return New(NewAlphabet([]rune("abcdefghijklmnopqrstuvwxyz")))
}

func TestTokenizeSentences(t *testing.T) {
	m := newTestModel()
	got := m.Tokenize("the cat sat. the dog ran! really?")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"the", "cat", "sat"}, sentenceText(got[0]))
	assert.Equal(t, []string{"the", "dog", "ran"}, sentenceText(got[1]))
	assert.Equal(t, []string{"really"}, sentenceText(got[2]))
}

func TestTokenizeOffsets(t *testing.T) {
	m := newTestModel()
	text := "  the,cat  sat"
	got := m.Tokenize(text)
	require.Len(t, got, 1)
	sent := got[0]
	require.Len(t, sent, 3)
	for _, tok := range sent {
		assert.Equal(t, tok.Text, text[tok.Pos:tok.Pos+len(tok.Text)])
	}
	assert.Equal(t, 2, sent[0].Pos)
	assert.Equal(t, 6, sent[1].Pos)
	assert.Equal(t, 11, sent[2].Pos)
}

func TestTokenizeTrailingWordWithoutTerminator(t *testing.T) {
	m := newTestModel()
	got := m.Tokenize("the cat")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"the", "cat"}, sentenceText(got[0]))
}

func TestTokenizeEmptyAndLetterless(t *testing.T) {
	m := newTestModel()
	assert.Empty(t, m.Tokenize(""))
	assert.Empty(t, m.Tokenize("  ... !!! 123 "))
}

func TestTokenizeNonAlphabetRunesSplit(t *testing.T) {
	m := newTestModel()
	got := m.Tokenize("don't stop")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"don", "t", "stop"}, sentenceText(got[0]))
}

func TestTokenizeEmptySentencesSkipped(t *testing.T) {
	m := newTestModel()
	got := m.Tokenize("the cat... the dog.")
	require.Len(t, got, 2)
}

func sentenceText(s Sentence) []string {
	out := make([]string, len(s))
	for i, tok := range s {
		out[i] = tok.Text
	}
	return out
}
