package langmodel

import (
	"math"
	"strings"
)

const (
	// interpolation weights for trigram/bigram/unigram estimates
	lambda3 = 0.65
	lambda2 = 0.25
	lambda1 = 0.10

	// add-k mass on the unigram floor
	smoothK = 0.05

	unknownID uint32 = math.MaxUint32
)

type trigramKey struct {
	a, b, c uint32
}

func bigramKey(a, b uint32) uint64 {
	return uint64(a)<<32 | uint64(b)
}

// Model is the statistical language model: a word dictionary with dense ids
// and unigram/bigram/trigram counts, scored with interpolated add-k smoothing.
type Model struct {
	alphabet *Alphabet
	words    []string
	wordIDs  map[string]uint32

	unigrams []uint64
	bigrams  map[uint64]uint64
	trigrams map[trigramKey]uint64
	total    uint64

	penalty float64
}

func New(alphabet *Alphabet) *Model {
	return &Model{
		alphabet: alphabet,
		wordIDs:  make(map[string]uint32),
		bigrams:  make(map[uint64]uint64),
		trigrams: make(map[trigramKey]uint64),
	}
}

func (m *Model) Alphabet() *Alphabet { return m.alphabet }

func (m *Model) Penalty() float64     { return m.penalty }
func (m *Model) SetPenalty(p float64) { m.penalty = p }

// GetWord returns the interned vocabulary string for w.
func (m *Model) GetWord(w string) (string, bool) {
	id, ok := m.wordIDs[w]
	if !ok {
		return "", false
	}
	return m.words[id], true
}

func (m *Model) GetWordID(w string) (uint32, bool) {
	id, ok := m.wordIDs[w]
	return id, ok
}

func (m *Model) GetWordByID(id uint32) string {
	if id >= uint32(len(m.words)) {
		return ""
	}
	return m.words[id]
}

// WordToID exposes the dictionary for cache building. Callers must not
// mutate the returned map.
func (m *Model) WordToID() map[string]uint32 {
	return m.wordIDs
}

func (m *Model) VocabSize() int { return len(m.wordIDs) }

func (m *Model) intern(w string) uint32 {
	if id, ok := m.wordIDs[w]; ok {
		return id
	}
	w = strings.Clone(w)
	id := uint32(len(m.words))
	m.words = append(m.words, w)
	m.wordIDs[w] = id
	m.unigrams = append(m.unigrams, 0)
	return id
}

// AddWord inserts w into the vocabulary with the given unigram count. Used by
// the runtime custom dictionary; training uses TrainRaw.
func (m *Model) AddWord(w string, count uint64) uint32 {
	id := m.intern(w)
	m.unigrams[id] += count
	m.total += count
	return id
}

// RemoveWord drops w from the vocabulary. The id slot remains allocated but
// unreachable through the dictionary.
func (m *Model) RemoveWord(w string) {
	id, ok := m.wordIDs[w]
	if !ok {
		return
	}
	if m.unigrams[id] <= m.total {
		m.total -= m.unigrams[id]
	}
	m.unigrams[id] = 0
	m.words[id] = ""
	delete(m.wordIDs, w)
}

// TrainRaw accumulates counts from tokenized sentences, minting ids for new
// words. Token text is interned as-is; callers lowercase beforehand.
func (m *Model) TrainRaw(sentences []Sentence) {
	for _, s := range sentences {
		ids := make([]uint32, len(s))
		for i, t := range s {
			ids[i] = m.intern(t.Text)
		}
		for i, id := range ids {
			m.unigrams[id]++
			m.total++
			if i >= 1 {
				m.bigrams[bigramKey(ids[i-1], id)]++
			}
			if i >= 2 {
				m.trigrams[trigramKey{ids[i-2], ids[i-1], id}]++
			}
		}
	}
}

func (m *Model) idOf(w string) uint32 {
	if id, ok := m.wordIDs[w]; ok {
		return id
	}
	return unknownID
}

func (m *Model) count1(a uint32) uint64 {
	if a == unknownID || a >= uint32(len(m.unigrams)) {
		return 0
	}
	return m.unigrams[a]
}

func (m *Model) count2(a, b uint32) uint64 {
	if a == unknownID || b == unknownID {
		return 0
	}
	return m.bigrams[bigramKey(a, b)]
}

func (m *Model) count3(a, b, c uint32) uint64 {
	if a == unknownID || b == unknownID || c == unknownID {
		return 0
	}
	return m.trigrams[trigramKey{a, b, c}]
}

// wordProb is the interpolated probability of word c after context (a, b).
// Either context id may be unknownID, zeroing the higher-order terms.
func (m *Model) wordProb(a, b, c uint32) float64 {
	vocab := float64(len(m.words)) + 1
	p1 := (float64(m.count1(c)) + smoothK) / (float64(m.total) + smoothK*vocab)
	var p2 float64
	if cb := m.count1(b); cb > 0 {
		p2 = float64(m.count2(b, c)) / float64(cb)
	}
	var p3 float64
	if cab := m.count2(a, b); cab > 0 {
		p3 = float64(m.count3(a, b, c)) / float64(cab)
	}
	return lambda3*p3 + lambda2*p2 + lambda1*p1
}

// Score returns the log-probability of the word sequence. Always negative;
// higher is more probable. Scale is consistent across calls for a fixed model.
func (m *Model) Score(words []string) float64 {
	ids := make([]uint32, len(words))
	for i, w := range words {
		ids[i] = m.idOf(w)
	}
	score := 0.0
	for i := range ids {
		a, b := unknownID, unknownID
		if i >= 2 {
			a = ids[i-2]
		}
		if i >= 1 {
			b = ids[i-1]
		}
		score += math.Log(m.wordProb(a, b, ids[i]))
	}
	return score
}
