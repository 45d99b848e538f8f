package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/version"
)

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed versions, highest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, _, err := newResolver()
			if err != nil {
				return err
			}
			installed, err := resolver.InstalledVersions()
			if err != nil {
				return err
			}
			if len(installed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no versions installed)")
				return nil
			}
			for _, v := range version.SortDescending(installed) {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
