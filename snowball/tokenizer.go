// Package snowball implements scam.Tokenizer with the Snowball English stemmer.
package snowball

import (
	"strings"
	"unicode"

	"github.com/fwojciec/scam"
	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ensure Tokenizer implements scam.Tokenizer at compile time.
var _ scam.Tokenizer = (*Tokenizer)(nil)

// Tokenizer splits content into lower-cased, stemmed terms and drops
// English stop words. The zero value is ready to use.
type Tokenizer struct {
	// KeepStopWords disables stop word removal.
	KeepStopWords bool
}

// NewTokenizer creates a Tokenizer that drops stop words.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Normalize lower-cases a term using English case rules.
func (t *Tokenizer) Normalize(term string) string {
	// A Caser holds state, so each call gets its own.
	return cases.Lower(language.English).String(term)
}

// IsStopWord reports whether the normalized term is an English stop word.
func (t *Tokenizer) IsStopWord(term string) bool {
	_, ok := stopWords[t.Normalize(term)]
	return ok
}

// Tokenize splits content on anything that is not a letter or digit,
// normalizes each word, drops stop words and stems the rest.
func (t *Tokenizer) Tokenize(content string) []string {
	words := strings.FieldsFunc(content, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(words))
	for _, word := range words {
		word = t.Normalize(word)
		if !t.KeepStopWords {
			if _, ok := stopWords[word]; ok {
				continue
			}
		}
		stemmed, err := snowball.Stem(word, "english", true)
		if err != nil || stemmed == "" {
			stemmed = word
		}
		terms = append(terms, stemmed)
	}
	return terms
}
