// Package locale resolves static per-language content bundles and models the
// interface-language switch.
package locale

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported interface language code.
type Language string

const (
	Arabic  Language = "ar"
	Turkish Language = "tr"
	English Language = "en"
)

// Direction is the text direction of a language.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

var supported = []Language{Arabic, Turkish, English}

var matcher = language.NewMatcher([]language.Tag{
	language.Arabic,
	language.Turkish,
	language.English,
})

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// ParseLanguage normalizes s ("AR", "tr-TR", " en ") to a supported language.
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	primary, _, _ := strings.Cut(s, "-")
	primary, _, _ = strings.Cut(primary, "_")
	for _, l := range supported {
		if string(l) == primary {
			return l, true
		}
	}
	return "", false
}

// MatchAcceptLanguage picks the best supported language for an Accept-Language
// header. ok is false when the header names nothing we support.
func MatchAcceptLanguage(header string) (Language, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return supported[idx], true
}

// Dir reports the text direction; Arabic is the only right-to-left language.
func (l Language) Dir() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// Valid reports whether l is supported.
func (l Language) Valid() bool {
	return slices.Contains(supported, l)
}

func (l Language) String() string {
	return string(l)
}

// Topic names one content area of the site.
type Topic string

const (
	TopicCommon    Topic = "common"
	TopicHome      Topic = "home"
	TopicAbout     Topic = "about"
	TopicPrograms  Topic = "programs"
	TopicFAQ       Topic = "faq"
	TopicContact   Topic = "contact"
	TopicVolunteer Topic = "volunteer"
)

var topics = []Topic{TopicCommon, TopicHome, TopicAbout, TopicPrograms, TopicFAQ, TopicContact, TopicVolunteer}

// Topics returns every known topic.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// ParseTopic returns the topic named s.
func ParseTopic(s string) (Topic, bool) {
	for _, t := range topics {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
