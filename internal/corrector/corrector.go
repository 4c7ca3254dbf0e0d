package corrector

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"spellcheck/internal/customdict"
	"spellcheck/internal/langmodel"
	"spellcheck/pkg/options"
)

// custom words outrank any trained unigram
const customWordCount = 1_000_000_000

// =====================

// Corrector wraps a language model with two-tier candidate generation, a
// deletes inverted index, and penalty-adjusted window scoring.
type Corrector struct {
	opts     options.CorrectorOptions
	model    *langmodel.Model
	deletes1 map[string][]uint32
	deletes2 map[string][]uint32
	dict     *customdict.CustomDict
	log      *zap.SugaredLogger
}

func New(dict *customdict.CustomDict, opts ...options.Options) *Corrector {
	conf := options.DefaultOptions
	for _, o := range opts {
		o.Apply(&conf)
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Corrector{
		opts: conf,
		dict: dict,
		log:  logger.Sugar(),
	}
}

// Model exposes the underlying language model, nil before load/train.
func (c *Corrector) Model() *langmodel.Model { return c.model }

// LoadLangModel loads a persisted model and rebuilds the deletes cache.
func (c *Corrector) LoadLangModel(path string) error {
	model, err := langmodel.Load(path)
	if err != nil {
		return err
	}
	c.model = model
	c.log.Infow("model loaded", "path", path, "vocab", model.VocabSize())
	c.PrepareCache()
	c.loadCustomWords()
	return nil
}

// SaveLangModel persists the model, including the tuned penalty.
func (c *Corrector) SaveLangModel(path string) error {
	if c.model == nil {
		return fmt.Errorf("no model to save")
	}
	return c.model.Save(path)
}

// TrainLangModel trains a model from a UTF-8 text file, holding out 20% of
// the sentences (at most 5000) to calibrate the penalty, then rebuilds the
// deletes cache and runs the tuner.
func (c *Corrector) TrainLangModel(textPath, alphabetPath string) error {
	alphabet, err := langmodel.LoadAlphabet(alphabetPath)
	if err != nil {
		return err
	}
	c.model = langmodel.New(alphabet)

	c.log.Infof("loading text")
	data, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	text := strings.ToLower(string(data))

	c.log.Infof("tokenizing")
	sentences := c.model.Tokenize(text)
	if len(sentences) == 0 {
		return fmt.Errorf("corpus %s contains no sentences", textPath)
	}

	testPart := min(int(c.opts.HoldoutFraction*float64(len(sentences))), c.opts.HoldoutCap)
	trainPart := len(sentences) - testPart
	held := sentences[trainPart:]
	if len(held) == 0 {
		return fmt.Errorf("corpus %s too small to hold out tuning sentences", textPath)
	}

	c.log.Infof("training model on %d sentences", trainPart)
	c.model.TrainRaw(sentences[:trainPart])
	c.log.Infof("prepare cache")
	c.PrepareCache()
	c.loadCustomWords()

	heldWords := make([][]string, len(held))
	for i, s := range held {
		heldWords[i] = sentenceWords(s)
	}
	penalty := c.FindPenalty(heldWords)
	c.model.SetPenalty(penalty)
	c.log.Infow("penalty tuned", "penalty", penalty)
	return nil
}

func sentenceWords(s langmodel.Sentence) []string {
	words := make([]string, len(s))
	for i, t := range s {
		words[i] = t.Text
	}
	return words
}

// =====================
// Candidate selection
// =====================

type scoredWord struct {
	word  string
	score float64
}

// candidates returns the in-vocabulary replacements for words[position],
// best-first. Tier-2 edit enumeration runs first; only when it yields nothing
// does the deletes-index fallback run. The query itself joins the pool when
// it is in vocabulary and is never penalty-adjusted.
func (c *Corrector) candidates(words []string, position int) []string {
	if c.model == nil || position < 0 || position >= len(words) {
		return nil
	}
	w := words[position]

	cands := c.editsTwoLevel(w)
	firstLevel := true
	if len(cands) == 0 {
		cands = c.editsIndexed(w)
		firstLevel = false
	}
	if v, ok := c.model.GetWord(w); ok {
		cands = append(cands, v)
	}
	if len(cands) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(cands))
	scored := make([]scoredWord, 0, len(cands))
	for _, cand := range cands {
		if seen[cand] {
			continue
		}
		seen[cand] = true
		score := c.model.Score(c.window(words, position, cand))
		if cand != w {
			if firstLevel {
				score -= c.model.Penalty()
			} else {
				// scores are log-domain, so the factor pushes
				// fallback candidates further down
				score *= c.opts.FallbackFactor
			}
		}
		scored = append(scored, scoredWord{word: cand, score: score})
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.word
	}
	return out
}

// window builds the local sentence scored for a candidate: up to WindowSize
// tokens on each side with the candidate at the focus position.
func (c *Corrector) window(words []string, position int, cand string) []string {
	win := make([]string, 0, 2*c.opts.WindowSize+1)
	for i := max(0, position-c.opts.WindowSize); i < position; i++ {
		win = append(win, words[i])
	}
	win = append(win, cand)
	for i := position + 1; i <= position+c.opts.WindowSize && i < len(words); i++ {
		win = append(win, words[i])
	}
	return win
}

// GetCandidates returns replacement words for sentence[position], best-first.
// Out-of-range positions yield nil.
func (c *Corrector) GetCandidates(sentence []string, position int) []string {
	return c.candidates(sentence, position)
}

// =====================
// Fragment correction
// =====================

// FixFragment corrects text token by token. Inter-token bytes are copied
// through unchanged; replaced tokens take the original token's case pattern.
func (c *Corrector) FixFragment(text string) string {
	if c.model == nil {
		return text
	}
	sentences := c.model.Tokenize(text)
	var b strings.Builder
	b.Grow(len(text))
	origPos := 0
	for _, sent := range sentences {
		words := make([]string, len(sent))
		for j, t := range sent {
			words[j] = strings.ToLower(t.Text)
		}
		for j, tok := range sent {
			lowered := words[j]
			if cands := c.candidates(words, j); len(cands) > 0 {
				words[j] = cands[0]
			}
			b.WriteString(text[origPos:tok.Pos])
			origPos = tok.Pos + len(tok.Text)
			if words[j] != lowered {
				b.WriteString(projectCase(words[j], tok.Text))
			} else {
				b.WriteString(tok.Text)
			}
		}
	}
	b.WriteString(text[origPos:])
	return b.String()
}

// FixFragmentNormalized corrects lowercased text and emits space-joined
// tokens; each sentence ends with "." and sentences are separated by one
// space, with no trailing space. Original spacing and casing are not
// preserved.
func (c *Corrector) FixFragmentNormalized(text string) string {
	if c.model == nil {
		return text
	}
	sentences := c.model.Tokenize(strings.ToLower(text))
	parts := make([]string, 0, len(sentences))
	for _, sent := range sentences {
		words := sentenceWords(sent)
		for j := range words {
			if cands := c.candidates(words, j); len(cands) > 0 {
				words[j] = cands[0]
			}
		}
		parts = append(parts, strings.Join(words, " ")+".")
	}
	return strings.Join(parts, " ")
}

// Correct is the one-shot API used by the HTTP server.
func (c *Corrector) Correct(text string) CorrectionResult {
	return CorrectionResult{
		Original:  text,
		Corrected: c.FixFragment(text),
	}
}

// =====================
// Custom dictionary
// =====================

func (c *Corrector) loadCustomWords() {
	if c.dict == nil {
		return
	}
	words, err := c.dict.All()
	if err != nil {
		c.log.Warnw("could not load custom words", "err", err)
		return
	}
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, ok := c.model.GetWord(lw); ok {
			continue
		}
		id := c.model.AddWord(lw, customWordCount)
		c.indexWord(lw, id)
	}
}

// AddCustomWord adds a word to the vocabulary and the backing store, updating
// the deletes index in place.
func (c *Corrector) AddCustomWord(word string) error {
	if c.model == nil {
		return fmt.Errorf("no model loaded")
	}
	lw := strings.ToLower(word)
	if c.dict != nil {
		if err := c.dict.Add(lw); err != nil {
			return err
		}
	}
	if _, ok := c.model.GetWord(lw); ok {
		return nil
	}
	id := c.model.AddWord(lw, customWordCount)
	c.indexWord(lw, id)
	return nil
}

// RemoveCustomWord removes a word from the vocabulary and the backing store.
// The deletes index is rebuilt so it stays consistent with the vocabulary.
func (c *Corrector) RemoveCustomWord(word string) error {
	if c.model == nil {
		return fmt.Errorf("no model loaded")
	}
	lw := strings.ToLower(word)
	if c.dict != nil {
		if err := c.dict.Remove(lw); err != nil {
			return err
		}
	}
	c.model.RemoveWord(lw)
	c.PrepareCache()
	return nil
}
