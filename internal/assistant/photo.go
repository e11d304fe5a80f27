package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// photoProviderBase is the fixed external image provider. The lock
// parameter requests distinct images for the same query. No network call
// happens here: URL construction only.
const photoProviderBase = "https://loremflickr.com/800/600"

const photoSuggestionCount = 4

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// SuggestPhoto derives deterministic image-search URLs from a product name.
// Always returns photoSuggestionCount entries; an empty name yields URLs
// with an empty query segment.
func SuggestPhoto(name string) []string {
	query := normalizePhotoQuery(name)
	urls := make([]string, 0, photoSuggestionCount)
	for lock := 1; lock <= photoSuggestionCount; lock++ {
		urls = append(urls, fmt.Sprintf("%s/%s?lock=%d", photoProviderBase, query, lock))
	}
	return urls
}

// normalizePhotoQuery lowercases the name, strips non-word characters,
// drops tokens of length <= 2 and joins the rest with commas.
func normalizePhotoQuery(name string) string {
	tokens := nonWord.Split(strings.ToLower(name), -1)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) > 2 {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, ",")
}
