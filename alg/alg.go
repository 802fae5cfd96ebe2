package alg

import (
	"errors"
	"math"
	"strings"
)

// Credit given to a document token for a query term.
const (
	ExactTermValue   = 1.0
	PartialTermValue = 0.5
)

// Delimiter separating tokens in filenames and terms in queries.
const Delimiter = " "

// ErrEmptyDocument is returned when a document has no tokens to normalize by.
var ErrEmptyDocument = errors.New("document has no tokens")

// Tokenize lowercases s and splits it on the single-space delimiter.
// No other character separates tokens.
func Tokenize(s string) []string {
	return strings.Split(strings.ToLower(s), Delimiter)
}

// TermCredit returns the credit token earns for term.
func TermCredit(term, token string) float64 {
	if term == token {
		return ExactTermValue
	}
	if strings.Contains(token, term) {
		return PartialTermValue
	}
	return 0
}

// TermFrequency sums the credit of every token for term and divides by the
// token count. Tokens must already be lowercase.
func TermFrequency(term string, tokens []string) (float64, error) {
	if len(tokens) == 0 {
		return 0, ErrEmptyDocument
	}

	term = strings.ToLower(term)
	credit := 0.0
	for _, token := range tokens {
		credit += TermCredit(term, token)
	}
	return credit / float64(len(tokens)), nil
}

// InverseDocumentFrequency returns ln(N/n) where n is the number of documents
// with at least one token crediting term. A document counts once no matter
// how many of its tokens match. Returns 0 if no document matches.
func InverseDocumentFrequency(term string, docs map[string][]string) float64 {
	term = strings.ToLower(term)

	n := 0
	for _, tokens := range docs {
		for _, token := range tokens {
			if TermCredit(term, token) > 0 {
				n++
				break
			}
		}
	}

	if n == 0 {
		return 0
	}
	return math.Log(float64(len(docs)) / float64(n))
}

// Deltas computes the score contribution IDF*TF of term for every document,
// keyed like docs. The IDF is computed once per call.
func Deltas(term string, docs map[string][]string) (map[string]float64, error) {
	idf := InverseDocumentFrequency(term, docs)

	deltas := make(map[string]float64, len(docs))
	for key, tokens := range docs {
		tf, err := TermFrequency(term, tokens)
		if err != nil {
			return nil, err
		}
		deltas[key] = idf * tf
	}
	return deltas, nil
}
