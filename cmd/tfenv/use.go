package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/config"
)

func useCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <version>",
		Short: "Pin the default version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := cfg.VersionFile()
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(args[0]+"\n"), 0o644); err != nil {
				return fmt.Errorf("write version file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set default version to %s\n", args[0])
			return nil
		},
	}
}
