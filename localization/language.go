package localization

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language code.
type Language string

const (
	English Language = "en"
	Swahili Language = "sw"
)

// Primary is the language every table is checked against.
const Primary = English

var ErrUnknownLanguage = errors.New("unknown language")

// Supported lists the languages in preference order.
var Supported = []Language{English, Swahili}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Swahili})

// ParseLanguage accepts a code such as "sw" or "SW" and rejects anything
// outside Supported.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Swahili:
		return Swahili, nil
	}
	return "", ErrUnknownLanguage
}

// Negotiate picks a supported language from an Accept-Language header.
// When the header is empty, malformed or matches nothing, fallback wins.
func Negotiate(acceptLanguage string, fallback Language) Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported[index]
}

func (l Language) String() string {
	return string(l)
}

// Tag returns the x/text tag, used for collation.
func (l Language) Tag() language.Tag {
	if l == Swahili {
		return language.Swahili
	}
	return language.English
}
