// Package similarity scores how alike two tasks are, either by their tag
// sets or by the words of their text. Both scores are in [0,1].
package similarity

import (
	"math"
	"regexp"
	"strings"
)

const minTokenLength = 3

var nonWord = regexp.MustCompile(`[^\w\s]`)

// TagSet splits every tag on commas and returns the set of trimmed,
// lower-cased, non-empty tokens.
func TagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tag := range tags {
		for _, part := range strings.Split(strings.ToLower(tag), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			set[part] = struct{}{}
		}
	}
	return set
}

// TagSimilarity returns the Jaccard index of the two tag sets, or 0 when
// either side has no tags.
func TagSimilarity(a, b []string) float64 {
	setA := TagSet(a)
	setB := TagSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tag := range setA {
		if _, ok := setB[tag]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TagString joins tags the way they are matched in text search.
func TagString(tags []string) string {
	return strings.Join(tags, ",")
}

// Tokenize lower-cases text, turns punctuation into spaces and keeps the
// words longer than two characters, duplicates included.
func Tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// CosineSimilarity compares the term-frequency vectors of two texts.
func CosineSimilarity(a, b string) float64 {
	return CosineTokens(Tokenize(a), Tokenize(b))
}

// CosineTokens compares two token lists as term-frequency vectors over
// their combined vocabulary. It returns 0 if either list is empty.
func CosineTokens(a, b []string) float64 {
	freqA := termFrequencies(a)
	freqB := termFrequencies(b)

	var dot, magA, magB float64
	for term, countA := range freqA {
		magA += countA * countA
		if countB, ok := freqB[term]; ok {
			dot += countA * countB
		}
	}
	for _, countB := range freqB {
		magB += countB * countB
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return math.Min(1, dot/(math.Sqrt(magA)*math.Sqrt(magB)))
}

func termFrequencies(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}
