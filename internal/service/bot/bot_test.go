package bot

import (
	"testing"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseRows reads rows top to bottom; '.' is empty.
func parseRows(t *testing.T, rows ...string) domain.Board {
	t.Helper()
	grid := make([][]int, len(rows))
	for r, line := range rows {
		grid[r] = make([]int, len(line))
		for c, ch := range line {
			if ch != '.' {
				grid[r][c] = int(ch - '0')
			}
		}
	}
	board, err := domain.ParseBoard(grid)
	require.NoError(t, err)
	return board
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyEasy, ParseDifficulty("easy"))
	assert.Equal(t, DifficultyMedium, ParseDifficulty("medium"))
	assert.Equal(t, DifficultyHard, ParseDifficulty("hard"))
	assert.Equal(t, DifficultyMedium, ParseDifficulty(""))
	assert.Equal(t, DifficultyMedium, ParseDifficulty("impossible"))

	assert.Equal(t, 0, DifficultyEasy.Depth())
	assert.Equal(t, 4, DifficultyMedium.Depth())
	assert.Equal(t, 6, DifficultyHard.Depth())
}

func TestSearchTakesImmediateWin(t *testing.T) {
	board := parseRows(t,
		".......",
		".......",
		".......",
		".......",
		"11.....",
		"222...1",
	)

	for depth := 1; depth <= 6; depth++ {
		result := search(board, domain.Player2, depth)
		require.Equal(t, 3, result.Column, "depth %d", depth)
		require.Equal(t, MINIMAX_WIN+depth-1, result.Score, "depth %d", depth)
	}
}

func TestSearchBlocksOpponentThree(t *testing.T) {
	board := parseRows(t,
		".......",
		".......",
		".......",
		".......",
		"22.....",
		"111....",
	)

	for depth := 2; depth <= 6; depth++ {
		result := search(board, domain.Player2, depth)
		require.Equal(t, 3, result.Column, "depth %d", depth)
	}
}

func TestSearchPanicsOnNonPositiveDepth(t *testing.T) {
	require.Panics(t, func() { search(domain.NewBoard(), domain.Player1, 0) })
}

func TestEngineBestMove(t *testing.T) {
	t.Run("does not mutate the caller's board", func(t *testing.T) {
		board := parseRows(t,
			".......",
			".......",
			".......",
			"...2...",
			"..21...",
			".2111..",
		)
		before := board
		engine := NewEngine(1)

		col := engine.BestMove(board, domain.Player2, DifficultyHard)
		require.Contains(t, board.ValidMoves(), col)
		require.Equal(t, before, board)
	})

	t.Run("medium and hard complete a win", func(t *testing.T) {
		board := parseRows(t,
			".......",
			".......",
			".......",
			".......",
			"11.....",
			"222...1",
		)
		engine := NewEngine(1)
		require.Equal(t, 3, engine.BestMove(board, domain.Player2, DifficultyMedium))
		require.Equal(t, 3, engine.BestMove(board, domain.Player2, DifficultyHard))
	})

	t.Run("full board has no move", func(t *testing.T) {
		board := parseRows(t,
			"2121212",
			"2121211",
			"2121212",
			"1212121",
			"1212122",
			"1212121",
		)
		engine := NewEngine(1)
		require.Equal(t, -1, engine.BestMove(board, domain.Player1, DifficultyHard))
		require.Equal(t, -1, engine.BestMove(board, domain.Player1, DifficultyEasy))
	})

	t.Run("invalid player panics", func(t *testing.T) {
		engine := NewEngine(1)
		require.Panics(t, func() { engine.BestMove(domain.NewBoard(), domain.Empty, DifficultyHard) })
	})
}

func TestEasyPicksLegalRandomColumns(t *testing.T) {
	board := parseRows(t,
		"1.2....",
		"2.1....",
		"1.2....",
		"2.1....",
		"1.2....",
		"2.1....",
	)
	engine := NewEngine(42)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		col := engine.BestMove(board, domain.Player1, DifficultyEasy)
		require.NotEqual(t, 0, col)
		require.NotEqual(t, 2, col)
		seen[col] = true
	}
	assert.Len(t, seen, 5, "every open column should eventually be chosen")

	a, b := NewEngine(7), NewEngine(7)
	for i := 0; i < 20; i++ {
		require.Equal(t,
			a.BestMove(board, domain.Player1, DifficultyEasy),
			b.BestMove(board, domain.Player1, DifficultyEasy))
	}
}

func TestEvaluateBoard(t *testing.T) {
	require.Equal(t, 0, evaluateBoard(&domain.Board{}, domain.Player1, domain.Player2))

	board := parseRows(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		".111...",
	)
	// seen from player 2 the open three is a threat to block
	assert.Equal(t, -SCORE_BLOCK_THREE, evaluateBoard(&board, domain.Player2, domain.Player1))
	// seen from player 1: the open three plus one center disk
	assert.Equal(t, SCORE_THREE_IN_ROW+SCORE_CENTER, evaluateBoard(&board, domain.Player1, domain.Player2))
}

func TestScoreWindowMixedIsZero(t *testing.T) {
	board := parseRows(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		".112...",
	)
	assert.Equal(t, 0, scoreWindow(&board, 5, 0, 0, 1, domain.Player1, domain.Player2))
	assert.Equal(t, 0, scoreWindow(&board, 5, 4, 0, 1, domain.Player1, domain.Player2), "window off the board")
}
