package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/engine/runner"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [command] [args...]",
		Short: "Run a command in its environment",
		Long: "Run a declared command, or an ad hoc command line, inside its environment.\n" +
			"The environment is locked and installed first if needed. Without a command\n" +
			"the first declared command runs. The exit status of the command is returned.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			environment, _ := cmd.Flags().GetString("environment")
			external, _ := cmd.Flags().GetString("external-environment")

			req := runner.Request{
				Environment: environment,
				External:    external,
				Stdin:       cmd.InOrStdin(),
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
			}
			if len(args) > 0 {
				req.Command = args[0]
				req.Args = args[1:]
			}

			err := c.app.Run(cmd.Context(), req)
			if err == nil {
				return nil
			}
			var exit *domain.ExitStatusError
			if errors.As(err, &exit) {
				return exit
			}
			return &PrepareError{Err: err}
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringP("environment", "e", "", "Run in this environment instead of the command's")
	cmd.Flags().String("external-environment", "",
		"Run in a conda environment not managed by the project, by name or prefix")
	cmd.MarkFlagsMutuallyExclusive("environment", "external-environment")
	return cmd
}
