package cmd

import (
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "supertictactoe-bot",
		Short: "Minimax player for super tic-tac-toe",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(Run())
	root.AddCommand(Decide())

	return root
}
