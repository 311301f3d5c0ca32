package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conda-project/internal/engine/runner"
)

func (c *CLI) newActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate [environment]",
		Short: "Start a shell inside an environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			external, _ := cmd.Flags().GetString("external-environment")
			shell, _ := cmd.Flags().GetString("shell")

			return c.app.Activate(cmd.Context(), runner.ActivateRequest{
				Environment: firstArg(args),
				External:    external,
				Shell:       shell,
				Stdin:       cmd.InOrStdin(),
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
			})
		},
	}
	cmd.Flags().String("external-environment", "", "Activate a conda environment not managed by the project")
	cmd.Flags().String("shell", "", "Shell to start (defaults to $SHELL)")
	return cmd
}
