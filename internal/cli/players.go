package cli

import (
	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List online players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerListResult

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
