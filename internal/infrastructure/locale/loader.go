package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/shared/logger"
)

//go:embed locales
var embeddedLocales embed.FS

var bundleExtensions = []string{".json", ".yaml", ".yml"}

// Loader reads locale bundles laid out as <root>/<topic>/<lang>.<ext>.
// Bundles compiled into the binary are loaded first; an optional override
// directory on disk replaces individual documents wholesale.
type Loader struct {
	overrideDir string
	logger      logger.Interface
}

// NewLoader creates a loader. overrideDir may be empty.
func NewLoader(overrideDir string, log logger.Interface) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		overrideDir: overrideDir,
		logger:      log,
	}
}

// Load returns every bundle from the embedded set plus overrides.
func (l *Loader) Load() (domain.Set, error) {
	embedded, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}

	set := domain.Set{}
	if err := LoadFS(embedded, set); err != nil {
		return nil, fmt.Errorf("load embedded locales: %w", err)
	}

	if l.overrideDir == "" {
		return set, nil
	}

	if _, err := os.Stat(l.overrideDir); os.IsNotExist(err) {
		l.logger.Warnw("locale override directory not found, using embedded bundles", "path", l.overrideDir)
		return set, nil
	}

	if err := LoadFS(os.DirFS(l.overrideDir), set); err != nil {
		return nil, fmt.Errorf("load locale overrides from %s: %w", l.overrideDir, err)
	}
	l.logger.Infow("loaded locale overrides", "path", l.overrideDir)

	return set, nil
}

// LoadFS reads every <topic>/<lang>.<ext> document in fsys into set.
// A later document for the same pair replaces the earlier one.
func LoadFS(fsys fs.FS, set domain.Set) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read locale root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		topic, ok := domain.ParseTopic(entry.Name())
		if !ok {
			return fmt.Errorf("unknown locale topic %q", entry.Name())
		}

		files, err := fs.ReadDir(fsys, entry.Name())
		if err != nil {
			return fmt.Errorf("read topic %s: %w", topic, err)
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			ext := path.Ext(file.Name())
			if !isBundleExt(ext) {
				continue
			}
			lang, ok := domain.ParseLanguage(strings.TrimSuffix(file.Name(), ext))
			if !ok || string(lang) != strings.TrimSuffix(file.Name(), ext) {
				return fmt.Errorf("unknown locale language in %s/%s", topic, file.Name())
			}

			p := path.Join(entry.Name(), file.Name())
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			bundle, err := decodeBundle(data, ext)
			if err != nil {
				return fmt.Errorf("decode %s: %w", p, err)
			}
			set.Add(topic, lang, bundle)
		}
	}

	return nil
}

func isBundleExt(ext string) bool {
	for _, e := range bundleExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func decodeBundle(data []byte, ext string) (domain.Bundle, error) {
	var doc any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("bundle root must be an object, got %T", doc)
	}
	return domain.Bundle(root), nil
}
