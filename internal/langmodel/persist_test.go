package langmodel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := trainedModel(t, strings.Repeat("the cat sat on the mat. the dog ran. ", 3))
	m.SetPenalty(17.25)

	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, m.VocabSize(), loaded.VocabSize())
	assert.Equal(t, m.Penalty(), loaded.Penalty())
	assert.Equal(t, m.Alphabet().Letters(), loaded.Alphabet().Letters())

	for _, words := range [][]string{
		{"the", "cat", "sat"},
		{"the", "dog", "ran"},
		{"zzz"},
	} {
		assert.Equal(t, m.Score(words), loaded.Score(words), "%v", words)
	}
}

func TestLoadSkipsRemovedWords(t *testing.T) {
	m := trainedModel(t, "the cat sat.")
	m.RemoveWord("cat")

	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	_, ok := loaded.GetWord("cat")
	assert.False(t, ok, "removed words must not resurface after a reload")
	assert.Equal(t, 2, loaded.VocabSize())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a model"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadCustomWords(t *testing.T) {
	m := trainedModel(t, "the cat sat.")
	m.AddWord("glorp", 1_000_000_000)

	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	_, ok := loaded.GetWord("glorp")
	assert.True(t, ok)
}
