package models

import "strings"

type Language string

const (
	Turkish Language = "tr"
	English Language = "en"
)

// NormalizeLanguage defaults anything that is not English to Turkish.
func NormalizeLanguage(lang Language) Language {
	if strings.EqualFold(strings.TrimSpace(string(lang)), string(English)) {
		return English
	}
	return Turkish
}
