package view

import (
	"fmt"
	"html/template"
	"strings"
)

type RevealDirection string

const (
	RevealUp    RevealDirection = "up"
	RevealDown  RevealDirection = "down"
	RevealLeft  RevealDirection = "left"
	RevealRight RevealDirection = "right"
	RevealNone  RevealDirection = "none"
)

// Reveal describes a fade-in on scroll. The attributes it renders are read by
// the site's front-end script.
type Reveal struct {
	Direction RevealDirection
	Delay     int
	Duration  int
	Threshold float64
	Once      bool
}

// DefaultReveal matches the fade-in used across the public pages.
func DefaultReveal() Reveal {
	return Reveal{
		Direction: RevealUp,
		Duration:  600,
		Threshold: 0.1,
		Once:      true,
	}
}

func parseDirection(s string) RevealDirection {
	switch d := RevealDirection(strings.ToLower(s)); d {
	case RevealUp, RevealDown, RevealLeft, RevealRight, RevealNone:
		return d
	default:
		return RevealUp
	}
}

// Attrs renders the reveal as data attributes.
func (r Reveal) Attrs() template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal="%s" data-reveal-delay="%d" data-reveal-duration="%d" data-reveal-threshold="%g" data-reveal-once="%t"`,
		r.Direction, max(r.Delay, 0), max(r.Duration, 0), r.Threshold, r.Once,
	))
}

// revealFunc is the "reveal" template function: reveal "left" 200.
func revealFunc(direction string, delay int) template.HTMLAttr {
	r := DefaultReveal()
	r.Direction = parseDirection(direction)
	r.Delay = delay
	return r.Attrs()
}

// revealRepeatFunc replays the transition each time the element enters view.
func revealRepeatFunc(direction string, delay int) template.HTMLAttr {
	r := DefaultReveal()
	r.Direction = parseDirection(direction)
	r.Delay = delay
	r.Once = false
	return r.Attrs()
}
