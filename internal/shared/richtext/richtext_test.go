package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "plain text",
			input: "No links here (really) [at all]",
			want:  []Segment{{Kind: KindText, Text: "No links here (really) [at all]"}},
		},
		{
			name:  "single link in the middle",
			input: "See [our FAQ](/faq) first.",
			want: []Segment{
				{Kind: KindText, Text: "See "},
				{Kind: KindLink, Text: "our FAQ", URL: "/faq"},
				{Kind: KindText, Text: " first."},
			},
		},
		{
			name:  "adjacent links",
			input: "[a](/a)[b](https://b.example)",
			want: []Segment{
				{Kind: KindLink, Text: "a", URL: "/a"},
				{Kind: KindLink, Text: "b", URL: "https://b.example"},
			},
		},
		{
			name:  "arabic label",
			input: "[تواصل معنا](/contact).",
			want: []Segment{
				{Kind: KindLink, Text: "تواصل معنا", URL: "/contact"},
				{Kind: KindText, Text: "."},
			},
		},
		{
			name:  "unterminated link is text",
			input: "broken [label](/oops",
			want:  []Segment{{Kind: KindText, Text: "broken [label](/oops"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParse_PreservesContent(t *testing.T) {
	inputs := []string{
		"Plain",
		"Start [one](/1) middle [two](mailto:x@y.z) end",
		"[only](/only)",
		"Trailing ] and ( brackets [ok](/ok) )",
	}
	for _, in := range inputs {
		assert.Equal(t, in, String(Parse(in)))
	}
}

func TestHTML(t *testing.T) {
	t.Run("escapes text", func(t *testing.T) {
		assert.Equal(t, "1 &lt; 2 &amp; 3", string(HTML("1 < 2 & 3")))
	})

	t.Run("relative link", func(t *testing.T) {
		out := string(HTML("Read the [FAQ](/faq)."))
		assert.Contains(t, out, `href="/faq"`)
		assert.Contains(t, out, ">FAQ</a>.")
		assert.NotContains(t, out, "_blank")
	})

	t.Run("external link opens in new tab", func(t *testing.T) {
		out := string(HTML("[site](https://example.com)"))
		assert.Contains(t, out, `href="https://example.com"`)
		assert.Contains(t, out, `target="_blank"`)
	})

	t.Run("unsafe scheme keeps label only", func(t *testing.T) {
		out := string(HTML("click [me](javascript:alert(1)"))
		assert.NotContains(t, out, "javascript")
		assert.NotContains(t, out, "<a")
	})

	t.Run("label is escaped", func(t *testing.T) {
		out := string(HTML("[<b>x</b>](/x)"))
		assert.NotContains(t, out, "<b>")
	})
}
