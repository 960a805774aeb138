// Package locales holds maintenance commands for the translation bundles.
package locales

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/config"
	localeInfra "github.com/ilim-academy/website/internal/infrastructure/locale"
)

// Report is the YAML document printed by "locales check".
type Report struct {
	DefaultLanguage locale.Language `yaml:"default_language"`
	Complete        bool            `yaml:"complete"`
	Gaps            []locale.Gap    `yaml:"gaps,omitempty"`
}

type checkOptions struct {
	dir         string
	defaultLang string
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Inspect the translation bundles",
	}
	cmd.AddCommand(newCheckCommand())
	return cmd
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report translations missing from non-default languages",
		Long: `Compare every bundle against the default language and print the missing
keys as YAML. Exits non-zero when anything is missing.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") || !cmd.Flags().Changed("default") {
				cfg, err := config.Load("")
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				if !cmd.Flags().Changed("dir") {
					opts.dir = cfg.Locale.Dir
				}
				if !cmd.Flags().Changed("default") {
					opts.defaultLang = cfg.Locale.DefaultLanguage
				}
			}
			return runCheck(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Override directory laid out as <topic>/<lang>.json")
	cmd.Flags().StringVar(&opts.defaultLang, "default", "ar", "Reference language")

	return cmd
}

func runCheck(out io.Writer, opts *checkOptions) error {
	defaultLang, ok := locale.ParseLanguage(opts.defaultLang)
	if !ok {
		return fmt.Errorf("unsupported default language %q", opts.defaultLang)
	}

	bundles, err := localeInfra.NewLoader(opts.dir, nil).Load()
	if err != nil {
		return fmt.Errorf("failed to load locale bundles: %w", err)
	}

	gaps := locale.Check(bundles, defaultLang)
	report := Report{
		DefaultLanguage: defaultLang,
		Complete:        len(gaps) == 0,
		Gaps:            gaps,
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if len(gaps) > 0 {
		return fmt.Errorf("%d locale gap(s) found", len(gaps))
	}
	return nil
}
