package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lex := Default()

	assert.Equal(t, []string{
		"Alimentação", "Transporte", "Moradia", "Saúde", "Educação", "Lazer",
		"Compras", "Serviços", "Salário", "Freelance", "Investimentos", "Vendas",
	}, lex.Categories())

	for _, entry := range lex.Entries() {
		assert.NotEmptyf(t, entry.Keywords, "category %s has no keywords", entry.Category)
		for _, kw := range entry.Keywords {
			assert.Equal(t, kw.Phrase, kw.Normalized, "default phrases are stored already normalized")
		}
	}

	assert.Same(t, lex, Default(), "default lexicon is parsed once and shared")
}

func TestLookup(t *testing.T) {
	lex := Default()

	entry, ok := lex.Lookup("alimentacao")
	require.True(t, ok)
	assert.Equal(t, "Alimentação", entry.Category)
	assert.Contains(t, phrases(entry), "supermercado")

	transport, ok := lex.Lookup("transporte")
	require.True(t, ok)
	assert.Contains(t, phrases(transport), "uber")

	_, ok = lex.Lookup("Alimentação")
	assert.False(t, ok, "lookup takes the normalized name")
}

func TestNew(t *testing.T) {
	t.Run("keeps definition order and normalizes", func(t *testing.T) {
		lex, err := New([]Definition{
			{Name: "Zeta", Keywords: []string{"Café Expresso"}},
			{Name: "Alpha", Keywords: []string{"pão"}},
		})
		require.NoError(t, err)

		entries := lex.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "Zeta", entries[0].Category)
		assert.Equal(t, "cafe expresso", entries[0].Keywords[0].Normalized)
		assert.Equal(t, "Café Expresso", entries[0].Keywords[0].Phrase)
		assert.Equal(t, "pao", entries[1].Keywords[0].Normalized)
	})

	t.Run("rejects duplicate normalized names", func(t *testing.T) {
		_, err := New([]Definition{
			{Name: "Saúde", Keywords: []string{"farmacia"}},
			{Name: "saude", Keywords: []string{"medico"}},
		})
		assert.ErrorIs(t, err, ErrInvalidLexicon)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := New([]Definition{{Name: " ?! ", Keywords: []string{"x"}}})
		assert.ErrorIs(t, err, ErrInvalidLexicon)
	})

	t.Run("rejects keyword without letters", func(t *testing.T) {
		_, err := New([]Definition{{Name: "Lazer", Keywords: []string{"***"}}})
		assert.ErrorIs(t, err, ErrInvalidLexicon)
	})

	t.Run("entries copy does not leak", func(t *testing.T) {
		lex, err := New([]Definition{{Name: "Lazer", Keywords: []string{"cinema"}}})
		require.NoError(t, err)

		entries := lex.Entries()
		entries[0].Category = "changed"
		assert.Equal(t, "Lazer", lex.Entries()[0].Category)
	})
}

func TestParse(t *testing.T) {
	lex, err := Parse([]byte(`
categories:
  - name: Pets
    keywords: [petshop, veterinario, racao]
  - name: Transporte
    keywords: [uber]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pets", "Transporte"}, lex.Categories())

	_, err = Parse([]byte("categories: []"))
	assert.ErrorIs(t, err, ErrInvalidLexicon)

	_, err = Parse([]byte("categories: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidLexicon)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Pets\n    keywords: [petshop]\n"), 0o600))

	lex, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, lex.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func phrases(e Entry) []string {
	out := make([]string, len(e.Keywords))
	for i, kw := range e.Keywords {
		out[i] = kw.Phrase
	}
	return out
}
