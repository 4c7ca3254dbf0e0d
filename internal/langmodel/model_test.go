package langmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedModel(t *testing.T, corpus string) *Model {
	t.Helper()
	m := newTestModel()
	m.TrainRaw(m.Tokenize(strings.ToLower(corpus)))
	return m
}

func TestTrainRawVocabulary(t *testing.T) {
	m := trainedModel(t, "the cat sat. the dog ran.")
	assert.Equal(t, 5, m.VocabSize())
	for _, w := range []string{"the", "cat", "sat", "dog", "ran"} {
		v, ok := m.GetWord(w)
		assert.True(t, ok, w)
		assert.Equal(t, w, v)
	}
	_, ok := m.GetWord("fish")
	assert.False(t, ok)
}

func TestWordIDsAreDense(t *testing.T) {
	m := trainedModel(t, "a b c.")
	seen := make(map[uint32]bool)
	for w, id := range m.WordToID() {
		assert.Less(t, int(id), m.VocabSize())
		assert.Equal(t, w, m.GetWordByID(id))
		seen[id] = true
	}
	assert.Len(t, seen, m.VocabSize())
}

func TestGetWordByIDOutOfRange(t *testing.T) {
	m := trainedModel(t, "a b.")
	assert.Equal(t, "", m.GetWordByID(999))
}

func TestScoreAlwaysNegative(t *testing.T) {
	m := trainedModel(t, "the cat sat on the mat. the cat sat on the mat.")
	for _, words := range [][]string{
		{"the"},
		{"the", "cat", "sat"},
		{"zzz", "qqq"},
		{"the", "cat", "sat", "on", "the", "mat"},
	} {
		assert.Negative(t, m.Score(words), "%v", words)
	}
}

func TestScorePrefersTrainedOrder(t *testing.T) {
	m := trainedModel(t, strings.Repeat("the cat sat on the mat. ", 5))
	trained := m.Score([]string{"the", "cat", "sat"})
	shuffled := m.Score([]string{"sat", "the", "cat"})
	assert.Greater(t, trained, shuffled)
}

func TestScorePrefersKnownWords(t *testing.T) {
	m := trainedModel(t, strings.Repeat("the cat sat on the mat. ", 5))
	known := m.Score([]string{"the", "cat"})
	unknown := m.Score([]string{"the", "qzx"})
	assert.Greater(t, known, unknown)
}

func TestScoreDeterministic(t *testing.T) {
	m := trainedModel(t, "the cat sat on the mat.")
	words := []string{"the", "cat", "sat"}
	assert.Equal(t, m.Score(words), m.Score(words))
}

func TestAddWordBoostsScore(t *testing.T) {
	m := trainedModel(t, "the cat sat.")
	before := m.Score([]string{"glorp"})
	m.AddWord("glorp", 1_000_000)
	after := m.Score([]string{"glorp"})
	assert.Greater(t, after, before)
}

func TestAddWordExistingAccumulates(t *testing.T) {
	m := trainedModel(t, "the cat sat.")
	id1 := m.AddWord("cat", 10)
	id2, ok := m.GetWordID("cat")
	require.True(t, ok)
	assert.Equal(t, id2, id1, "re-adding must not mint a new id")
	assert.Equal(t, 3, m.VocabSize())
}

func TestRemoveWord(t *testing.T) {
	m := trainedModel(t, "the cat sat.")
	m.RemoveWord("cat")
	_, ok := m.GetWord("cat")
	assert.False(t, ok)
	assert.Equal(t, 2, m.VocabSize())
	m.RemoveWord("cat") // no-op
	assert.Equal(t, 2, m.VocabSize())
}

func TestPenaltyRoundTrip(t *testing.T) {
	m := newTestModel()
	assert.Zero(t, m.Penalty())
	m.SetPenalty(12.5)
	assert.Equal(t, 12.5, m.Penalty())
}
