package model

import (
	"regexp"
	"strings"
)

var labelSeparators = regexp.MustCompile(`[_\-\s]+`)

// Label turns a field name into a human-friendly label, splitting on
// underscores, dashes and camelCase boundaries: "cpf_cnpj" becomes
// "Cpf Cnpj", "zipCode" becomes "Zip Code".
func Label(name string) string {
	var words []string
	for _, part := range labelSeparators.Split(name, -1) {
		for _, word := range splitCamel(part) {
			words = append(words, strings.ToUpper(word[:1])+strings.ToLower(word[1:]))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	var (
		words []string
		start int
	)
	for i := 1; i < len(input); i++ {
		prev, cur := input[i-1], input[i]
		if isLower(prev) && isUpper(cur) {
			words = append(words, input[start:i])
			start = i
		}
	}
	if start < len(input) {
		words = append(words, input[start:])
	}
	return words
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
