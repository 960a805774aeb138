// Package richtext renders plain strings that embed inline links written as
// [label](url).
package richtext

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SegmentKind distinguishes plain text from link segments.
type SegmentKind int

const (
	KindText SegmentKind = iota
	KindLink
)

// Segment is one piece of parsed input. For links Text holds the label.
type Segment struct {
	Kind SegmentKind
	Text string
	URL  string
}

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

var hrefPolicy = newHrefPolicy()

func newHrefPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.AllowAttrs("href").OnElements("a")
	return p
}

// Parse splits s into text and link segments in source order. Text that is
// not part of a link is kept verbatim, so input without links yields a single
// text segment equal to s.
func Parse(s string) []Segment {
	if s == "" {
		return nil
	}

	matches := linkPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []Segment{{Kind: KindText, Text: s}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Kind: KindText, Text: s[last:m[0]]})
		}
		segments = append(segments, Segment{
			Kind: KindLink,
			Text: s[m[2]:m[3]],
			URL:  s[m[4]:m[5]],
		})
		last = m[1]
	}
	if last < len(s) {
		segments = append(segments, Segment{Kind: KindText, Text: s[last:]})
	}

	return segments
}

// String reassembles segments into their source form.
func String(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind == KindLink {
			b.WriteString("[" + seg.Text + "](" + seg.URL + ")")
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// HTML renders s with text escaped and links as anchors. A link whose URL
// fails sanitisation is rendered as its escaped label only.
func HTML(s string) template.HTML {
	var b strings.Builder
	for _, seg := range Parse(s) {
		if seg.Kind == KindText {
			b.WriteString(template.HTMLEscapeString(seg.Text))
			continue
		}
		b.WriteString(renderLink(seg))
	}
	return template.HTML(b.String())
}

func renderLink(seg Segment) string {
	label := template.HTMLEscapeString(seg.Text)
	anchor := `<a href="` + template.HTMLEscapeString(strings.TrimSpace(seg.URL)) + `">` + label + `</a>`

	clean := hrefPolicy.Sanitize(anchor)
	if !strings.Contains(clean, "href=") {
		return label
	}
	return clean
}
