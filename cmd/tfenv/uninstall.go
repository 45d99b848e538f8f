package main

import (
	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/config"
	"github.com/drjonesii/tfenv-go/internal/install"
)

func uninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return install.New(cfg).Uninstall(args[0])
		},
	}
}
