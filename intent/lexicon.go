package intent

import (
	"strings"
	"unicode"

	"github.com/Desarso/toolguide/models"
)

var greetings = map[string]bool{
	"merhaba":        true,
	"merhabalar":     true,
	"selam":          true,
	"selamlar":       true,
	"günaydın":       true,
	"iyi günler":     true,
	"iyi akşamlar":   true,
	"hello":          true,
	"hi":             true,
	"hey":            true,
	"good morning":   true,
	"good evening":   true,
	"good afternoon": true,
}

var thanks = map[string]bool{
	"teşekkürler":         true,
	"çok teşekkürler":     true,
	"teşekkür ederim":     true,
	"çok teşekkür ederim": true,
	"sağol":               true,
	"sağ ol":              true,
	"sağolun":             true,
	"eyvallah":            true,
	"thanks":              true,
	"thank you":           true,
	"thanks a lot":        true,
	"thank you very much": true,
	"thx":                 true,
}

// normalize lowercases s and reduces every run of non-alphanumeric characters to one space.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// quickIntent recognizes messages that are nothing but a greeting or a thank-you.
func quickIntent(message string) (models.Intent, bool) {
	m := normalize(message)
	switch {
	case greetings[m]:
		return models.IntentGreeting, true
	case thanks[m]:
		return models.IntentThanks, true
	}
	return "", false
}
