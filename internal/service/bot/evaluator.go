package bot

import (
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	SCORE_THREE_IN_ROW = 50    // 3 bot disks + 1 empty
	SCORE_TWO_IN_ROW   = 10    // 2 bot disks + 2 empty
	SCORE_BLOCK_THREE  = 50000 // opponent has 3 + 1 empty, must be blocked
	SCORE_CENTER       = 3     // per bot disk in the center column
)

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// evaluateBoard is only called at the depth limit on non-terminal positions.
func evaluateBoard(board *domain.Board, botPlayer, opponent domain.PlayerID) int {
	score := evaluateCenter(board, botPlayer)

	// one window per (empty cell, direction), starting at the empty cell
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if board.At(row, col) != domain.Empty {
				continue
			}
			for _, dir := range directions {
				score += scoreWindow(board, row, col, dir[0], dir[1], botPlayer, opponent)
			}
		}
	}

	return score
}

func evaluateCenter(board *domain.Board, botPlayer domain.PlayerID) int {
	score := 0
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		if board.At(row, centerCol) == botPlayer {
			score += SCORE_CENTER
		}
	}
	return score
}

// scoreWindow scores the 4 cells starting at (row, col) along (dRow, dCol).
// Windows running off the board score nothing.
func scoreWindow(board *domain.Board, row, col, dRow, dCol int, botPlayer, opponent domain.PlayerID) int {
	botCount, oppCount, emptyCount := 0, 0, 0
	for i := 0; i < domain.ToWin; i++ {
		r, c := row+i*dRow, col+i*dCol
		if !isInBounds(r, c) {
			return 0
		}
		switch board.At(r, c) {
		case botPlayer:
			botCount++
		case opponent:
			oppCount++
		default:
			emptyCount++
		}
	}

	switch {
	case botCount == 3 && emptyCount == 1:
		return SCORE_THREE_IN_ROW
	case botCount == 2 && emptyCount == 2:
		return SCORE_TWO_IN_ROW
	case oppCount == 3 && emptyCount == 1:
		return -SCORE_BLOCK_THREE
	}
	return 0
}

// Helper: check if position is within board bounds
func isInBounds(row, col int) bool {
	return row >= 0 && row < domain.Rows && col >= 0 && col < domain.Columns
}
