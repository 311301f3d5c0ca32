package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conda-project/internal/core/ports"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <dependencies...>",
		Short: "Add dependencies to an environment",
		Long: "Add dependencies to the first source file of an environment and relock it.\n" +
			"Prefix a dependency with @pip:: to add it to the pip section.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			environment, _ := cmd.Flags().GetString("environment")
			channels, _ := cmd.Flags().GetStringSlice("channel")
			return c.app.Add(cmd.Context(), environment, ports.DependencyEdit{
				Dependencies: args,
				Channels:     channels,
			})
		},
	}
	cmd.Flags().StringP("environment", "e", "", "Environment to edit (defaults to the first one)")
	cmd.Flags().StringSliceP("channel", "c", nil, "Channel to add (repeatable)")
	return cmd
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <dependencies...>",
		Short: "Remove dependencies from an environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			environment, _ := cmd.Flags().GetString("environment")
			return c.app.Remove(cmd.Context(), environment, ports.DependencyEdit{Dependencies: args})
		},
	}
	cmd.Flags().StringP("environment", "e", "", "Environment to edit (defaults to the first one)")
	return cmd
}
