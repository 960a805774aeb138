package locale

import (
	"slices"
	"sort"
)

// Gap lists content present in the default language but absent in another.
type Gap struct {
	Topic    Topic    `yaml:"topic"`
	Language Language `yaml:"language"`
	// MissingBundle is true when the language has no document for the topic at all.
	MissingBundle bool     `yaml:"missing_bundle,omitempty"`
	MissingPaths  []string `yaml:"missing_paths,omitempty"`
}

// Check compares every language against the default language and reports the
// leaf paths each one lacks. Topics without a default bundle are compared
// against nothing and reported as missing for the default language.
func Check(bundles Set, defaultLang Language) []Gap {
	var gaps []Gap

	for _, topic := range Topics() {
		reference, ok := bundles.Get(topic, defaultLang)
		if !ok {
			gaps = append(gaps, Gap{Topic: topic, Language: defaultLang, MissingBundle: true})
			continue
		}
		refPaths := reference.Paths()

		for _, lang := range Languages() {
			if lang == defaultLang {
				continue
			}
			b, ok := bundles.Get(topic, lang)
			if !ok {
				gaps = append(gaps, Gap{Topic: topic, Language: lang, MissingBundle: true})
				continue
			}
			have := b.Paths()
			var missing []string
			for _, p := range refPaths {
				if _, found := slices.BinarySearch(have, p); !found {
					missing = append(missing, p)
				}
			}
			if len(missing) > 0 {
				sort.Strings(missing)
				gaps = append(gaps, Gap{Topic: topic, Language: lang, MissingPaths: missing})
			}
		}
	}

	return gaps
}
