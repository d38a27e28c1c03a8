package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/tictactoe"
)

func Decide() *cobra.Command {
	decide := &cobra.Command{
		Use:   "decide [state.json]",
		Short: "Chooses one move for a stored game state",
		Long: heredoc.Doc(`decide reads a game state as JSON from the given file, or from
			stdin when no file is given, and prints the chosen move as
			<board>:<square>. It prints "no move" when the position has
			no legal moves.

			The piece defaults to the side to move in the state. A fixed
			--seed makes the tie break reproducible.`),
		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readState(cmd, args)
			if err != nil {
				return err
			}

			flags := cmd.Flags()

			mark, _ := flags.GetString("piece")
			depth, _ := flags.GetInt("depth")
			seed, _ := flags.GetUint64("seed")
			noPruning, _ := flags.GetBool("no-pruning")

			self := state.Next
			if mark != "" {
				if self, err = entity.ParsePlayer(mark); err != nil {
					return err
				}
			}

			options := []tictactoe.Option{}
			if flags.Changed("seed") {
				options = append(options, tictactoe.WithSeed(seed))
			}
			if !noPruning {
				options = append(options, tictactoe.WithAlphaBeta())
			}

			bot, err := tictactoe.NewBot(self, options...)
			if err != nil {
				return err
			}

			move, ok, err := bot.Decide(state, depth)
			if err != nil {
				return err
			}

			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no move")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), move.String())

			return nil
		},
	}

	decide.Flags().StringP("piece", "p", "", "piece to play (X or O)")
	decide.Flags().IntP("depth", "d", 3, "search depth in plies")
	decide.Flags().Uint64("seed", 0, "seed for the tie break")
	decide.Flags().Bool("no-pruning", false, "use plain minimax instead of alpha-beta")

	return decide
}

func readState(cmd *cobra.Command, args []string) (entity.GameState, error) {
	var input io.Reader = cmd.InOrStdin()

	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return entity.GameState{}, fmt.Errorf("failed to open state: %w", err)
		}
		defer file.Close()

		input = file
	}

	var state entity.GameState
	if err := json.NewDecoder(input).Decode(&state); err != nil {
		return entity.GameState{}, fmt.Errorf("failed to decode state: %w", err)
	}

	return state, nil
}
