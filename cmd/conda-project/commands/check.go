package commands

import "github.com/spf13/cobra"

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every environment has an up to date lock file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks, err := c.app.Check(cmd.Context())
			if err != nil {
				return err
			}

			p := c.app.Printer(cmd.OutOrStdout())
			ok := true
			for _, check := range checks {
				switch {
				case !check.Locked:
					p.Failure("environment %s is not locked", check.Environment)
					ok = false
				case check.Stale:
					p.Failure("the lock file of environment %s is out of date", check.Environment)
					ok = false
				default:
					p.Success("environment %s is locked", check.Environment)
				}
			}
			if !ok {
				return failed
			}
			return nil
		},
	}
}
