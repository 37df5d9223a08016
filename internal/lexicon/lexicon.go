// Package lexicon holds the keyword knowledge base used to categorize transactions:
// an ordered mapping from category display name to keyword phrases.
//
// A Lexicon is immutable once built, so a single instance can be shared by any number
// of concurrent readers without locking.
package lexicon

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pennywise/internal/normalize"
)

//go:embed default_lexicon.yaml
var defaultYAML []byte

// ErrInvalidLexicon is returned when a lexicon definition cannot be used for matching.
var ErrInvalidLexicon = errors.New("invalid lexicon")

// Definition is the serialized form of one lexicon category.
type Definition struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type document struct {
	Categories []Definition `yaml:"categories"`
}

// Keyword is a phrase as written in the lexicon plus its normalized form.
type Keyword struct {
	Phrase     string
	Normalized string
}

// Entry is one category of the lexicon with its keywords in definition order.
type Entry struct {
	Category   string
	Normalized string
	Keywords   []Keyword
}

// Lexicon is an ordered, read-only keyword table.
type Lexicon struct {
	index   map[string]int
	entries []Entry
}

// New builds a lexicon from definitions, keeping their order.
func New(defs []Definition) (*Lexicon, error) {
	lex := &Lexicon{
		entries: make([]Entry, 0, len(defs)),
		index:   make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		name := strings.TrimSpace(def.Name)
		normalized := normalize.Text(name)
		if normalized == "" {
			return nil, fmt.Errorf("%w: category at position %d has no usable name", ErrInvalidLexicon, i)
		}
		if _, dup := lex.index[normalized]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidLexicon, name)
		}

		entry := Entry{
			Category:   name,
			Normalized: normalized,
			Keywords:   make([]Keyword, 0, len(def.Keywords)),
		}
		for _, phrase := range def.Keywords {
			kw := normalize.Text(phrase)
			if kw == "" {
				return nil, fmt.Errorf("%w: keyword %q of %q normalizes to nothing", ErrInvalidLexicon, phrase, name)
			}
			entry.Keywords = append(entry.Keywords, Keyword{Phrase: phrase, Normalized: kw})
		}

		lex.index[normalized] = len(lex.entries)
		lex.entries = append(lex.entries, entry)
	}

	return lex, nil
}

// Parse reads a YAML lexicon document of the form
//
//	categories:
//	  - name: Transporte
//	    keywords: [uber, taxi]
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLexicon, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", ErrInvalidLexicon)
	}
	return New(doc.Categories)
}

// LoadFile parses the lexicon stored at path.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon file %s: %w", path, err)
	}
	return lex, nil
}

var loadDefault = sync.OnceValues(func() (*Lexicon, error) {
	return Parse(defaultYAML)
})

// Default returns the lexicon compiled into the binary.
func Default() *Lexicon {
	lex, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is broken: %v", err))
	}
	return lex
}

// Len reports the number of categories.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entries returns the categories in definition order. Callers must not modify the
// returned keywords.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Categories returns the category display names in definition order.
func (l *Lexicon) Categories() []string {
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.Category
	}
	return names
}

// Lookup finds a category by its normalized name.
func (l *Lexicon) Lookup(normalizedName string) (Entry, bool) {
	i, ok := l.index[normalizedName]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}
