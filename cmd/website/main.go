package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ilim-academy/website/internal/interfaces/cli/locales"
	"github.com/ilim-academy/website/internal/interfaces/cli/server"
	appVersion "github.com/ilim-academy/website/internal/shared/version"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	v := appVersion.Display(version)

	rootCmd := &cobra.Command{
		Use:     "website",
		Short:   "Website - multilingual institution site",
		Long:    `Website serves the public Arabic, Turkish and English pages and the administration area backed by the institution API.`,
		Version: v,
	}

	rootCmd.AddCommand(
		server.NewCommand(v),
		locales.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
