package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/drjonesii/tfenv-go/internal/config"
)

func errNotInstalled(cfg *config.Config, version string) error {
	return fmt.Errorf("version %s is not installed at %s and auto-install is disabled",
		version, cfg.BinaryPath(version))
}

func execCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [args...]",
		Short: "Run the selected version with the given arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, cfg, err := newResolver()
			if err != nil {
				return err
			}
			resolved, err := resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			if err := ensureInstalled(cmd, cfg, resolved); err != nil {
				return err
			}

			child := exec.CommandContext(cmd.Context(), cfg.BinaryPath(resolved), args...)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			if err := child.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					os.Exit(exitErr.ExitCode())
				}
				return fmt.Errorf("run %s: %w", cfg.Product, err)
			}
			return nil
		},
	}
	// Everything after the first positional arg belongs to the child.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
