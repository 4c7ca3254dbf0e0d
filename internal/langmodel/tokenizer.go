package langmodel

// Token is a word occurrence inside a larger text. Text aliases the input
// string's backing array; Pos is the byte offset of the token in that input.
type Token struct {
	Text string
	Pos  int
}

// Sentence is an ordered run of tokens between sentence terminators.
type Sentence []Token

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Tokenize splits text into sentences of tokens. A token is a maximal run of
// alphabet runes; everything else is inter-token filler. Sentence boundaries
// are '.', '!', '?'. Empty or letterless input yields no sentences.
func (m *Model) Tokenize(text string) []Sentence {
	var sentences []Sentence
	var curr Sentence
	start := -1
	flushWord := func(end int) {
		if start >= 0 {
			curr = append(curr, Token{Text: text[start:end], Pos: start})
			start = -1
		}
	}
	flushSentence := func() {
		if len(curr) > 0 {
			sentences = append(sentences, curr)
			curr = nil
		}
	}
	for i, r := range text {
		if m.alphabet.Contains(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flushWord(i)
		if isSentenceEnd(r) {
			flushSentence()
		}
	}
	flushWord(len(text))
	flushSentence()
	return sentences
}
