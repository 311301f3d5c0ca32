package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conda-project/internal/app"
	"go.trai.ch/conda-project/internal/core/ports"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dependencies...]",
		Short: "Create a new project",
		Long: "Create conda-project.yml and environment.yml in the project directory.\n" +
			"An existing project is left unchanged.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			channels, _ := cmd.Flags().GetStringSlice("channel")
			platforms, _ := cmd.Flags().GetStringSlice("platforms")
			configs, _ := cmd.Flags().GetStringSlice("conda-configs")
			lock, _ := cmd.Flags().GetBool("lock")
			install, _ := cmd.Flags().GetBool("install")

			condarc, err := parseOptions(configs)
			if err != nil {
				return err
			}

			return c.app.Init(cmd.Context(), app.InitOptions{
				InitOptions: ports.InitOptions{
					Name:         name,
					Dependencies: args,
					Channels:     channels,
					Platforms:    platforms,
					Condarc:      condarc,
				},
				Lock:    lock,
				Install: install,
			})
		},
	}
	cmd.Flags().StringP("name", "n", "", "Project name (defaults to the directory name)")
	cmd.Flags().StringSliceP("channel", "c", nil, "Channel to search for packages (repeatable)")
	cmd.Flags().StringSlice("platforms", nil, "Platforms to lock for (comma separated)")
	cmd.Flags().StringSlice("conda-configs", nil, "key=value settings written to the project .condarc")
	cmd.Flags().Bool("lock", false, "Lock the default environment")
	cmd.Flags().Bool("install", false, "Lock and install the default environment")
	return cmd
}
