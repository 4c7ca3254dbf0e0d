package langmodel

import (
	"fmt"
	"os"
	"unicode"
)

// Alphabet holds the working character set of the model. Order is the file
// order; membership drives tokenization.
type Alphabet struct {
	letters []rune
	set     map[rune]bool
}

func NewAlphabet(letters []rune) *Alphabet {
	a := &Alphabet{set: make(map[rune]bool, len(letters))}
	for _, r := range letters {
		r = unicode.ToLower(r)
		if !a.set[r] {
			a.set[r] = true
			a.letters = append(a.letters, r)
		}
	}
	return a
}

// LoadAlphabet reads an alphabet file: every non-space rune is a letter.
func LoadAlphabet(path string) (*Alphabet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alphabet: %w", err)
	}
	var letters []rune
	for _, r := range string(data) {
		if unicode.IsSpace(r) {
			continue
		}
		letters = append(letters, r)
	}
	if len(letters) == 0 {
		return nil, fmt.Errorf("alphabet %s is empty", path)
	}
	return NewAlphabet(letters), nil
}

func (a *Alphabet) Letters() []rune { return a.letters }

func (a *Alphabet) Contains(r rune) bool { return a.set[unicode.ToLower(r)] }
