package main

import (
	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/install"
)

func installCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install [version]",
		Short: "Install a version, resolving one if none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, cfg, err := newResolver()
			if err != nil {
				return err
			}

			var resolved string
			if len(args) == 1 {
				resolved, err = resolver.ResolveRequested(cmd.Context(), args[0])
			} else {
				resolved, err = resolver.Resolve(cmd.Context())
			}
			if err != nil {
				return err
			}
			return install.New(cfg).Install(cmd.Context(), resolved)
		},
	}
}
