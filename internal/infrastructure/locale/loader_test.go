package locale

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ilim-academy/website/internal/domain/locale"
)

func TestLoader_Embedded(t *testing.T) {
	set, err := NewLoader("", nil).Load()
	require.NoError(t, err)

	for _, topic := range domain.Topics() {
		for _, lang := range domain.Languages() {
			b, ok := set.Get(topic, lang)
			assert.True(t, ok, "missing %s/%s", topic, lang)
			assert.NotEmpty(t, b, "empty %s/%s", topic, lang)
		}
	}

	common, _ := set.Get(domain.TopicCommon, domain.Arabic)
	assert.Equal(t, "أكاديمية علم", common.String("site.name"))
}

func TestLoader_EmbeddedBundlesAreComplete(t *testing.T) {
	set, err := NewLoader("", nil).Load()
	require.NoError(t, err)

	assert.Empty(t, domain.Check(set, domain.Arabic))
}

func TestLoader_OverrideReplacesWholesale(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "home"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "home", "en.yaml"),
		[]byte("hero:\n  title: Welcome\n"),
		0o644,
	))

	set, err := NewLoader(dir, nil).Load()
	require.NoError(t, err)

	home, ok := set.Get(domain.TopicHome, domain.English)
	require.True(t, ok)
	assert.Equal(t, "Welcome", home.String("hero.title"))
	assert.Empty(t, home.String("hero.subtitle"), "override must not merge with the embedded document")

	ar, _ := set.Get(domain.TopicHome, domain.Arabic)
	assert.NotEmpty(t, ar.String("hero.subtitle"))
}

func TestLoader_MissingOverrideDir(t *testing.T) {
	set, err := NewLoader(filepath.Join(t.TempDir(), "absent"), nil).Load()
	require.NoError(t, err)

	_, ok := set.Get(domain.TopicFAQ, domain.Turkish)
	assert.True(t, ok)
}

func TestLoadFS(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{
			name: "json and yaml",
			fsys: fstest.MapFS{
				"faq/en.json":   {Data: []byte(`{"title":"FAQ"}`)},
				"faq/tr.yml":    {Data: []byte("title: SSS\n")},
				"faq/README.md": {Data: []byte("ignored")},
			},
		},
		{
			name:    "unknown topic",
			fsys:    fstest.MapFS{"blog/en.json": {Data: []byte(`{}`)}},
			wantErr: `unknown locale topic "blog"`,
		},
		{
			name:    "unknown language",
			fsys:    fstest.MapFS{"faq/de.json": {Data: []byte(`{}`)}},
			wantErr: "unknown locale language",
		},
		{
			name:    "regional file name",
			fsys:    fstest.MapFS{"faq/en-US.json": {Data: []byte(`{}`)}},
			wantErr: "unknown locale language",
		},
		{
			name:    "root is a list",
			fsys:    fstest.MapFS{"faq/en.json": {Data: []byte(`["a"]`)}},
			wantErr: "bundle root must be an object",
		},
		{
			name:    "malformed json",
			fsys:    fstest.MapFS{"faq/en.json": {Data: []byte(`{`)}},
			wantErr: "decode faq/en.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := domain.Set{}
			err := LoadFS(tt.fsys, set)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			en, _ := set.Get(domain.TopicFAQ, domain.English)
			tr, _ := set.Get(domain.TopicFAQ, domain.Turkish)
			assert.Equal(t, "FAQ", en.String("title"))
			assert.Equal(t, "SSS", tr.String("title"))
		})
	}
}
