package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler derives a label from a field key: "phoneNumber" becomes
// "Phone Number", "first_name" becomes "First Name" and "URLPath" becomes
// "URL Path". Acronyms keep their case.
func DefaultLabeler(key string) string {
	var words []string
	for _, chunk := range strings.FieldsFunc(key, isSeparator) {
		for _, word := range splitWords([]rune(chunk)) {
			words = append(words, capitalize(word))
		}
	}
	return strings.Join(words, " ")
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// splitWords cuts a separator-free chunk at case and digit transitions.
func splitWords(runes []rune) []string {
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		cut := unicode.IsLower(prev) && unicode.IsUpper(cur) ||
			unicode.IsDigit(prev) != unicode.IsDigit(cur)
		// "URLPath": the last capital of a run opens the next word.
		if !cut && unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			cut = true
		}
		if cut {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) > 1 && strings.ToUpper(word) == word {
		return word
	}
	lower := []rune(strings.ToLower(word))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}
