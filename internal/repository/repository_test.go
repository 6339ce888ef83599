package repository

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(s string) (string, error) { return "<" + s + ">", nil }

func TestCreate(t *testing.T) {
	r := New[string, string]("items", upper, rand.New(rand.NewSource(1)))
	r.Define("apple", "red")

	got, err := r.Create("apple")
	require.NoError(t, err)
	assert.Equal(t, "<red>", got)

	got, err = r.Create("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = r.Create("pear")
	require.ErrorIs(t, err, ErrUnknownCreator)
	assert.Contains(t, err.Error(), "No creator named 'pear' in repository 'items'")
}

func TestDefineLastWriteWins(t *testing.T) {
	r := New[string, string]("items", upper, rand.New(rand.NewSource(1)))
	r.Define("apple", "red")
	r.Define("pear", "green")
	r.Define("apple", "grey")

	got, err := r.Create("apple")
	require.NoError(t, err)
	assert.Equal(t, "<grey>", got)
	assert.Equal(t, []string{"apple", "pear"}, r.Names())
}

func TestCreateRandomCoversDefinedNames(t *testing.T) {
	r := New[string, string]("beings", upper, rand.New(rand.NewSource(42)))
	want := map[string]bool{"<a>": true, "<b>": true, "<c>": true}
	r.Define("a", "a")
	r.Define("b", "b")
	r.Define("c", "c")

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		got, err := r.CreateRandom()
		require.NoError(t, err)
		require.True(t, want[got], "unexpected instance %q", got)
		seen[got] = true
	}
	assert.Equal(t, want, seen)
}

func TestEmpty(t *testing.T) {
	r := New[string, string]("beings", upper, rand.New(rand.NewSource(1)))
	assert.True(t, r.IsEmpty())
	got, err := r.CreateRandom()
	require.NoError(t, err)
	assert.Empty(t, got)

	r.Define("a", "a")
	assert.False(t, r.IsEmpty())
}
