package langmodel

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/vmihailenco/msgpack/v5"
)

type bigramEntry struct {
	Key   uint64 `msgpack:"k"`
	Count uint64 `msgpack:"n"`
}

type trigramEntry struct {
	A     uint32 `msgpack:"a"`
	B     uint32 `msgpack:"b"`
	C     uint32 `msgpack:"c"`
	Count uint64 `msgpack:"n"`
}

type modelFile struct {
	Alphabet string         `msgpack:"alphabet"`
	Words    []string       `msgpack:"words"`
	Unigrams []uint64       `msgpack:"unigrams"`
	Bigrams  []bigramEntry  `msgpack:"bigrams"`
	Trigrams []trigramEntry `msgpack:"trigrams"`
	Total    uint64         `msgpack:"total"`
	Penalty  float64        `msgpack:"penalty"`
}

// Save writes the model to path as msgpack.
func (m *Model) Save(path string) error {
	mf := modelFile{
		Alphabet: string(m.alphabet.Letters()),
		Words:    m.words,
		Unigrams: m.unigrams,
		Total:    m.total,
		Penalty:  m.penalty,
	}
	mf.Bigrams = make([]bigramEntry, 0, len(m.bigrams))
	for k, n := range m.bigrams {
		mf.Bigrams = append(mf.Bigrams, bigramEntry{Key: k, Count: n})
	}
	mf.Trigrams = make([]trigramEntry, 0, len(m.trigrams))
	for k, n := range m.trigrams {
		mf.Trigrams = append(mf.Trigrams, trigramEntry{A: k.a, B: k.b, C: k.c, Count: n})
	}
	data, err := msgpack.Marshal(&mf)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a model saved by Save. The file is mmapped read-only for the
// duration of decoding.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap model: %w", err)
	}
	defer data.Unmap()

	var mf modelFile
	if err := msgpack.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if len(mf.Words) != len(mf.Unigrams) {
		return nil, fmt.Errorf("model %s is malformed: %d words, %d unigram rows", path, len(mf.Words), len(mf.Unigrams))
	}

	m := New(NewAlphabet([]rune(mf.Alphabet)))
	m.words = mf.Words
	m.unigrams = mf.Unigrams
	m.total = mf.Total
	m.penalty = mf.Penalty
	for id, w := range mf.Words {
		if w != "" {
			m.wordIDs[w] = uint32(id)
		}
	}
	for _, e := range mf.Bigrams {
		m.bigrams[e.Key] = e.Count
	}
	for _, e := range mf.Trigrams {
		m.trigrams[trigramKey{e.A, e.B, e.C}] = e.Count
	}
	return m, nil
}
