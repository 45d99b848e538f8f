package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/config"
	"github.com/drjonesii/tfenv-go/internal/install"
	"github.com/drjonesii/tfenv-go/internal/releases"
	"github.com/drjonesii/tfenv-go/internal/version"
)

// Version will be set at build time via -ldflags
var Version = "v0.0.1-alpha"

func main() {
	app := &cobra.Command{
		Use:           "tfenv",
		Short:         "Terraform version manager",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.AddCommand(
		execCommand(),
		versionCommand(),
		useCommand(),
		installCommand(),
		uninstallCommand(),
		listCommand(),
		listRemoteCommand(),
	)

	if err := app.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// newResolver wires the resolution engine to the live environment and the
// remote catalog.
func newResolver() (*version.Resolver, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	r, err := version.NewResolver(cfg, releases.NewClient(cfg.Remote))
	if err != nil {
		return nil, nil, err
	}
	return r, cfg, nil
}

// ensureInstalled installs the resolved version if its binary is missing,
// respecting the auto-install toggle.
func ensureInstalled(cmd *cobra.Command, cfg *config.Config, resolved string) error {
	installer := install.New(cfg)
	if installer.Installed(resolved) {
		return nil
	}
	if !cfg.AutoInstall {
		return errNotInstalled(cfg, resolved)
	}
	log.Info("version not installed, auto-installing", "version", resolved)
	return installer.Install(cmd.Context(), resolved)
}
