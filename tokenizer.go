package scam

// Tokenizer turns document content into normalized index terms.
type Tokenizer interface {
	// Tokenize splits content into terms, normalizing each one
	// and dropping stop words.
	Tokenize(content string) []string
}
