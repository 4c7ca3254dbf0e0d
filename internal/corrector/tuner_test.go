package corrector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heldOut(c *Corrector, corpus string) [][]string {
	sentences := c.model.Tokenize(corpus)
	out := make([][]string, len(sentences))
	for i, s := range sentences {
		out[i] = sentenceWords(s)
	}
	return out
}

func TestFindPenaltyWithinBounds(t *testing.T) {
	c := buildCorrector(t, testCorpus)
	held := heldOut(c, testCorpus)
	p := c.FindPenalty(held)
	assert.GreaterOrEqual(t, p, c.opts.PenaltyLow)
	assert.LessOrEqual(t, p, c.opts.PenaltyHigh)
}

func TestFindPenaltyMeetsTarget(t *testing.T) {
	c := buildCorrector(t, testCorpus)
	held := heldOut(c, testCorpus)
	p := c.FindPenalty(held)
	// the held-out text is clean, so at the tuned penalty almost nothing breaks
	pc := c.brokenPercent(held, p)
	assert.LessOrEqual(t, pc, c.opts.TargetBrokenRate)
}

func TestBrokenPercentZeroAtMaxPenalty(t *testing.T) {
	c := buildCorrector(t, testCorpus)
	held := heldOut(c, testCorpus)
	// every held-out token is in vocabulary, so a huge penalty keeps them all
	assert.Zero(t, c.brokenPercent(held, c.opts.PenaltyHigh))
}

func TestBrokenPercentCountsChanges(t *testing.T) {
	c := buildCorrector(t, testCorpus)
	broken := [][]string{{"i", "saw", "teh", "cat"}}
	pc := c.brokenPercent(broken, c.opts.PenaltyHigh)
	// "teh" is out of vocabulary and always corrected
	assert.InDelta(t, 0.25, pc, 1e-9)
}

func TestBrokenPercentPanicsOnEmptyCorpus(t *testing.T) {
	c := buildCorrector(t, testCorpus)
	require.Panics(t, func() { c.brokenPercent(nil, 1) })
}

func TestFindPenaltyCallerSetsModelPenalty(t *testing.T) {
	c := buildCorrector(t, testCorpus)
	held := heldOut(c, testCorpus)
	p := c.FindPenalty(held)
	c.model.SetPenalty(p)
	assert.Equal(t, p, c.model.Penalty())
}
