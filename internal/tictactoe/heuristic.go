package tictactoe

import "github.com/rocketscienceinc/supertictactoe-bot/internal/entity"

const boardWeight = 10

// Score counts sub-boards won by self against those won by the opponent.
// Threats on the meta-board are not taken into account.
func Score(state entity.GameState, self entity.Piece) int {
	opponent := self.Opponent()

	score := 0
	for _, board := range state.Boards {
		switch board.Outcome {
		case self:
			score += boardWeight
		case opponent:
			score -= boardWeight
		}
	}

	return score
}
