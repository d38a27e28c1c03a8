package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBot(t *testing.T) {
	t.Run("Accepts a player piece", func(t *testing.T) {
		bot, err := NewBot(entity.PieceO, WithSeed(1))

		require.NoError(t, err)
		assert.Equal(t, entity.PieceO, bot.Piece())
	})

	t.Run("Rejects pieces that are not players", func(t *testing.T) {
		for _, piece := range []entity.Piece{entity.Empty, entity.Draw} {
			_, err := NewBot(piece)

			assert.ErrorIs(t, err, apperror.ErrInvalidPiece)
		}
	})
}

func TestBot_Decide(t *testing.T) {
	t.Run("Empty game at depth one returns some move", func(t *testing.T) {
		// Given: an empty game and a bot playing X
		bot, err := NewBot(entity.PieceX, WithSeed(7))
		require.NoError(t, err)
		state := entity.NewGameState("fresh", entity.PieceX)

		// When: deciding with one ply
		move, ok, err := bot.Decide(state, 1)

		// Then: a legal move is returned and nothing is decided after it
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, move.Validate())

		next, err := Apply(state, move, entity.PieceX)
		require.NoError(t, err)
		assert.Equal(t, 0, Score(next, entity.PieceX))

		stats := bot.Stats()
		assert.Equal(t, 81, stats.Candidates)
		assert.Equal(t, 81, stats.Tied)
		assert.Equal(t, 81, stats.Nodes)
	})

	t.Run("Finishes the last board when eight are already won", func(t *testing.T) {
		// Given: X won boards 0-7 and board 8 is one X move from won
		layouts := map[int]string{8: "XX.OO...."}
		for id := range 8 {
			layouts[id] = "XXXOO...."
		}
		state := stateWith(t, entity.PieceX, layouts)

		for _, depth := range []int{1, 2, 3} {
			bot, err := NewBot(entity.PieceX, WithSeed(uint64(depth)))
			require.NoError(t, err)

			// When: deciding
			move, ok, err := bot.Decide(state, depth)

			// Then: X completes board 8
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, entity.Move{Board: 8, Square: 2}, move, "depth %d", depth)
			assert.Equal(t, 90, bot.Stats().Value)
		}
	})

	t.Run("Takes a board when one is available", func(t *testing.T) {
		// Given: O can win board 3 on square 6
		state := stateWith(t, entity.PieceO, map[int]string{
			3: "OX.OX....",
		})
		bot, err := NewBot(entity.PieceO, WithSeed(3))
		require.NoError(t, err)

		// When: deciding with one ply
		move, ok, err := bot.Decide(state, 1)

		// Then: the winning cell is chosen
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entity.Move{Board: 3, Square: 6}, move)
	})

	t.Run("Blocks the opponent's board win at depth two", func(t *testing.T) {
		// Given: X threatens board 0 and O has nothing to win
		state := stateWith(t, entity.PieceO, map[int]string{
			0: "XX.O.....",
		})
		bot, err := NewBot(entity.PieceO, WithSeed(11))
		require.NoError(t, err)

		// When: deciding with two plies
		move, ok, err := bot.Decide(state, 2)

		// Then: the only move keeping the score at zero is the block
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entity.Move{Board: 0, Square: 2}, move)
		assert.Equal(t, 0, bot.Stats().Value)
		assert.Equal(t, 1, bot.Stats().Tied)
	})

	t.Run("Ties are broken randomly", func(t *testing.T) {
		// Given: an empty game where every move is worth the same
		bot, err := NewBot(entity.PieceX, WithSeed(42))
		require.NoError(t, err)
		state := entity.NewGameState("fresh", entity.PieceX)

		// When: deciding many times
		seen := make(map[entity.Move]struct{})
		for range 50 {
			move, ok, err := bot.Decide(state, 1)
			require.NoError(t, err)
			require.True(t, ok)
			seen[move] = struct{}{}
		}

		// Then: more than one tied move is chosen
		assert.Greater(t, len(seen), 1)
	})

	t.Run("Same seed gives the same choices with and without pruning", func(t *testing.T) {
		state := midGame(t)

		plain, err := NewBot(entity.PieceX, WithSeed(5))
		require.NoError(t, err)
		pruned, err := NewBot(entity.PieceX, WithSeed(5), WithAlphaBeta())
		require.NoError(t, err)

		for range 5 {
			want, ok, err := plain.Decide(state, 3)
			require.NoError(t, err)
			require.True(t, ok)

			got, ok, err := pruned.Decide(state, 3)
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, want, got)
			assert.Equal(t, plain.Stats().Value, pruned.Stats().Value)
			assert.Equal(t, plain.Stats().Tied, pruned.Stats().Tied)
		}
	})

	t.Run("Reports no move when every board is decided", func(t *testing.T) {
		layouts := make(map[int]string, entity.BoardSize)
		for id := range entity.BoardSize {
			layouts[id] = "XOXOXOOXO"
		}
		state := stateWith(t, entity.PieceX, layouts)
		bot, err := NewBot(entity.PieceX)
		require.NoError(t, err)

		move, ok, err := bot.Decide(state, 2)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, entity.Move{}, move)
	})

	t.Run("Rejects bad input before searching", func(t *testing.T) {
		bot, err := NewBot(entity.PieceX)
		require.NoError(t, err)

		_, _, err = bot.Decide(entity.NewGameState("fresh", entity.PieceX), 0)
		require.Error(t, err)

		broken := entity.NewGameState("broken", entity.PieceX)
		broken.Boards[2].Outcome = entity.PieceO

		_, _, err = bot.Decide(broken, 2)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
		assert.Zero(t, bot.Stats().Nodes)
	})
}
