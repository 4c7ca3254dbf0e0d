package corrector

// =====================
// Deletes index
// =====================

// PrepareCache rebuilds the deletes indexes from the current vocabulary. For
// every word, each pure-1-delete and pure-2-delete string maps back to the
// word's id. Must be called again whenever the vocabulary changes.
func (c *Corrector) PrepareCache() {
	c.deletes1 = make(map[string][]uint32)
	c.deletes2 = make(map[string][]uint32)
	for w, id := range c.model.WordToID() {
		c.indexWord(w, id)
	}
}

// indexWord appends id to the deletes entries of a single word. Used by
// PrepareCache and by incremental custom-word insertion.
func (c *Corrector) indexWord(w string, id uint32) {
	for _, s := range deletes1(w) {
		c.deletes1[s] = append(c.deletes1[s], id)
	}
	for _, s := range deletes2(w) {
		c.deletes2[s] = append(c.deletes2[s], id)
	}
}
