package corrector

// =====================
// Edit generation
// =====================

// deletes1 returns every string reachable from w by deleting exactly one
// rune. The empty string is never produced.
func deletes1(w string) []string {
	r := []rune(w)
	if len(r) <= 1 {
		return nil
	}
	out := make([]string, 0, len(r))
	for i := range r {
		out = append(out, string(r[:i])+string(r[i+1:]))
	}
	return out
}

// deletes2 returns every string reachable by deleting exactly two runes.
func deletes2(w string) []string {
	r := []rune(w)
	var out []string
	for i := range r {
		out = append(out, deletes1(string(r[:i])+string(r[i+1:]))...)
	}
	return out
}

// editVariants enumerates all single-edit strings of w: deletes, adjacent
// transposes, replaces and inserts over the model alphabet, in position
// order. Variants are raw strings, not vocabulary words.
func (c *Corrector) editVariants(w string) []string {
	r := []rune(w)
	alphabet := c.model.Alphabet().Letters()
	out := make([]string, 0, (2*len(r)+1)*(len(alphabet)+1))
	for i := 0; i <= len(r); i++ {
		// delete
		if i < len(r) {
			out = append(out, string(r[:i])+string(r[i+1:]))
		}
		// transpose
		if i+1 < len(r) {
			s := string(r[:i]) + string(r[i+1]) + string(r[i]) + string(r[i+2:])
			out = append(out, s)
		}
		// replace
		if i < len(r) {
			for _, ch := range alphabet {
				out = append(out, string(r[:i])+string(ch)+string(r[i+1:]))
			}
		}
		// insert
		for _, ch := range alphabet {
			out = append(out, string(r[:i])+string(ch)+string(r[i:]))
		}
	}
	return out
}

// editsTwoLevel is the tier-2 enumerator: every single-edit variant of w is
// probed against the vocabulary and then expanded once more, so candidates up
// to edit distance two are found even when the intermediate string is not a
// word. First-level variants are deduplicated before the second pass; vocab
// probes are deduplicated globally.
func (c *Corrector) editsTwoLevel(w string) []string {
	first := c.editVariants(w)
	var out []string
	firstSeen := make(map[string]bool, len(first))
	probed := make(map[string]bool, len(first))
	probe := func(s string) {
		if probed[s] {
			return
		}
		probed[s] = true
		if v, ok := c.model.GetWord(s); ok {
			out = append(out, v)
		}
	}
	for _, s := range first {
		if firstSeen[s] {
			continue
		}
		firstSeen[s] = true
		probe(s)
		for _, s2 := range c.editVariants(s) {
			probe(s2)
		}
	}
	return out
}

// editsIndexed is the tier-1 fallback: the query's pure-delete strings (and
// the query itself) are probed against the vocabulary and against both
// deletes indexes. A vocabulary word within edit distance two of the query
// necessarily shares a pure-delete string with it, so this recovers the
// non-delete edit classes without enumerating the alphabet.
func (c *Corrector) editsIndexed(w string) []string {
	cands := deletes1(w)
	cands = append(cands, w)
	cands = append(cands, deletes2(w)...)

	var out []string
	for _, s := range cands {
		if v, ok := c.model.GetWord(s); ok {
			out = append(out, v)
		}
		for _, id := range c.deletes1[s] {
			out = append(out, c.model.GetWordByID(id))
		}
		for _, id := range c.deletes2[s] {
			out = append(out, c.model.GetWordByID(id))
		}
	}
	return out
}
