package bip39

import (
	"fmt"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// GlossarySize is the number of words in every BIP39 word list.
const GlossarySize = 1 << bitsPerWord

// Glossary is a named, ordered BIP39 word list. Membership is an exact string match.
type Glossary struct {
	name  string
	words []string
	index map[string]int
}

// NewGlossary builds a glossary from an ordered list of 2048 distinct words.
func NewGlossary(name string, words []string) (*Glossary, error) {
	if len(words) != GlossarySize {
		return nil, fmt.Errorf("glossary %s has %d words, want %d", name, len(words), GlossarySize)
	}

	index := make(map[string]int, len(words))
	for i, w := range words {
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("glossary %s contains duplicate word %q", name, w)
		}
		index[w] = i
	}

	list := make([]string, len(words))
	copy(list, words)

	return &Glossary{name: name, words: list, index: index}, nil
}

func mustGlossary(name string, words []string) *Glossary {
	g, err := NewGlossary(name, words)
	if err != nil {
		panic(err)
	}
	return g
}

// Bundled glossaries.
var (
	English            = mustGlossary("english", wordlists.English)
	Japanese           = mustGlossary("japanese", wordlists.Japanese)
	Korean             = mustGlossary("korean", wordlists.Korean)
	Spanish            = mustGlossary("spanish", wordlists.Spanish)
	French             = mustGlossary("french", wordlists.French)
	Italian            = mustGlossary("italian", wordlists.Italian)
	Czech              = mustGlossary("czech", wordlists.Czech)
	ChineseSimplified  = mustGlossary("chinese_simplified", wordlists.ChineseSimplified)
	ChineseTraditional = mustGlossary("chinese_traditional", wordlists.ChineseTraditional)
)

// Glossaries returns the bundled glossaries in their default lookup order.
func Glossaries() []*Glossary {
	return []*Glossary{
		English,
		Japanese,
		Korean,
		Spanish,
		French,
		Italian,
		Czech,
		ChineseSimplified,
		ChineseTraditional,
	}
}

// LookupGlossary returns the bundled glossary with the given name.
func LookupGlossary(name string) (*Glossary, bool) {
	for _, g := range Glossaries() {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

// Name returns the glossary name.
func (g *Glossary) Name() string {
	return g.name
}

// Word returns the word at index i.
func (g *Glossary) Word(i int) string {
	return g.words[i]
}

// Words returns a copy of the ordered word list.
func (g *Glossary) Words() []string {
	return append([]string(nil), g.words...)
}

// Index returns the position of word in the glossary.
func (g *Glossary) Index(word string) (int, bool) {
	i, ok := g.index[word]
	return i, ok
}

// ContainsAll reports whether every word is present in the glossary.
func (g *Glossary) ContainsAll(words []string) bool {
	for _, w := range words {
		if _, ok := g.index[w]; !ok {
			return false
		}
	}
	return true
}

func (g *Glossary) String() string {
	return g.name
}
