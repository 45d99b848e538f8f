package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/config"
	"github.com/drjonesii/tfenv-go/internal/platform"
	"github.com/drjonesii/tfenv-go/internal/releases"
)

func listRemoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-remote [product]",
		Short: "List remotely published versions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			product := cfg.Product
			if len(args) == 1 {
				product = platform.Product(strings.ToLower(args[0]))
			}

			client := releases.NewClient(cfg.Remote)
			list, err := client.List(cmd.Context(), product)
			if err != nil {
				return err
			}
			for _, r := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", r.Version.Original(), r.Product)
			}
			return nil
		},
	}
}
