package corrector

// =====================
// Penalty tuning
// =====================

// FindPenalty binary-searches the penalty at which the corrector changes at
// most TargetBrokenRate of the held-out tokens. Raising the penalty only ever
// lowers the change rate, since the identity candidate is never penalized.
// Returns the upper bound of the final interval. The model's penalty is left
// at the last probed midpoint; the caller sets the returned value on it.
func (c *Corrector) FindPenalty(sentences [][]string) float64 {
	a := c.opts.PenaltyLow
	b := c.opts.PenaltyHigh
	for b-a >= c.opts.PenaltyTolerance {
		mid := a + (b-a)*0.5
		pc := c.brokenPercent(sentences, mid)
		c.log.Infof("penalty: %.3f, broken: %.5f", mid, pc)
		if pc <= c.opts.TargetBrokenRate {
			b = mid
		} else {
			a = mid
		}
	}
	return b
}

// brokenPercent is the share of tokens whose top candidate differs from the
// token itself, evaluated at the given penalty.
func (c *Corrector) brokenPercent(sentences [][]string, penalty float64) float64 {
	if len(sentences) == 0 {
		panic("brokenPercent: empty held-out corpus")
	}
	c.model.SetPenalty(penalty)
	totalWords := 0
	broken := 0
	for _, words := range sentences {
		for j, w := range words {
			totalWords++
			cands := c.candidates(words, j)
			if len(cands) > 0 && cands[0] != w {
				broken++
			}
		}
	}
	return float64(broken) / float64(totalWords)
}
