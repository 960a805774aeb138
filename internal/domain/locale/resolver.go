package locale

import (
	"github.com/ilim-academy/website/internal/shared/logger"
)

// Set maps topic and language to a loaded bundle.
type Set map[Topic]map[Language]Bundle

// Add stores b for (topic, lang), replacing any previous document.
func (s Set) Add(topic Topic, lang Language, b Bundle) {
	byLang, ok := s[topic]
	if !ok {
		byLang = make(map[Language]Bundle)
		s[topic] = byLang
	}
	byLang[lang] = b
}

// Get returns the bundle for (topic, lang) without any fallback.
func (s Set) Get(topic Topic, lang Language) (Bundle, bool) {
	b, ok := s[topic][lang]
	return b, ok
}

// Resolution is the outcome of resolving a topic for a requested language.
type Resolution struct {
	Bundle    Bundle
	Topic     Topic
	Requested Language
	// Served is the language whose bundle was returned; empty when nothing was found.
	Served Language
	// Found is true when the requested language had its own bundle.
	Found bool
	// Defaulted is true when the default-language bundle was substituted.
	Defaulted bool
}

// Resolver selects pre-loaded bundles by topic and language. It never mutates
// bundles and performs no I/O.
type Resolver struct {
	bundles     Set
	defaultLang Language
	logger      logger.Interface
}

// NewResolver creates a resolver over bundles with defaultLang as fallback.
func NewResolver(bundles Set, defaultLang Language, log logger.Interface) *Resolver {
	if !defaultLang.Valid() {
		defaultLang = Arabic
	}
	if bundles == nil {
		bundles = Set{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		bundles:     bundles,
		defaultLang: defaultLang,
		logger:      log,
	}
}

// DefaultLanguage returns the fallback language.
func (r *Resolver) DefaultLanguage() Language {
	return r.defaultLang
}

// Resolve returns the bundle for (topic, lang), falling back to the default
// language. A missing default yields an empty bundle with Found and Defaulted false.
func (r *Resolver) Resolve(topic Topic, lang Language) Resolution {
	res := Resolution{Topic: topic, Requested: lang}

	if b, ok := r.bundles.Get(topic, lang); ok {
		res.Bundle = b
		res.Served = lang
		res.Found = true
		return res
	}

	if b, ok := r.bundles.Get(topic, r.defaultLang); ok {
		res.Bundle = b
		res.Served = r.defaultLang
		res.Defaulted = true
		r.logger.Debugw("locale bundle defaulted",
			"topic", topic,
			"requested", lang,
			"served", r.defaultLang,
		)
		return res
	}

	r.logger.Warnw("locale bundle missing", "topic", topic, "requested", lang)
	res.Bundle = Bundle{}
	return res
}

// Bundles exposes the underlying set for the missing-translation checker.
func (r *Resolver) Bundles() Set {
	return r.bundles
}
