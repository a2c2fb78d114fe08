package bot

import (
	"fmt"
	"math"

	"github.com/iamasit07/connect-four/internal/domain"
)

// MINIMAX_WIN is added to the remaining depth so quicker wins score higher
// and slower losses are preferred over quick ones.
const MINIMAX_WIN = 100000

type searcher struct {
	bot      domain.PlayerID
	opponent domain.PlayerID
	nodes    int
}

// search runs minimax with alpha-beta pruning from the bot's point of view.
func search(board domain.Board, botPlayer domain.PlayerID, depth int) SearchResult {
	if depth < 1 {
		panic(fmt.Sprintf("bot: search depth must be positive, got %d", depth))
	}

	s := &searcher{bot: botPlayer, opponent: botPlayer.Opponent()}
	col, score := s.minimax(board, depth, math.MinInt, math.MaxInt, true)
	return SearchResult{Column: col, Score: score, Nodes: s.nodes}
}

// minimax receives its own board copy; children are built with Simulate so
// sibling branches never see each other's disks.
func (s *searcher) minimax(board domain.Board, depth, alpha, beta int, isMaximizing bool) (int, int) {
	s.nodes++

	if winner, ok := domain.FindWinner(&board); ok {
		if winner == s.bot {
			return -1, MINIMAX_WIN + depth
		}
		return -1, -(MINIMAX_WIN + depth)
	}

	validColumns := board.ValidMoves()
	if depth == 0 || len(validColumns) == 0 {
		return -1, evaluateBoard(&board, s.bot, s.opponent)
	}

	mover := s.opponent
	bestScore := math.MaxInt
	if isMaximizing {
		mover = s.bot
		bestScore = math.MinInt
	}
	bestCol := validColumns[0]

	for _, col := range validColumns {
		child, _, err := board.Simulate(col, mover)
		if err != nil {
			continue
		}

		_, score := s.minimax(child, depth-1, alpha, beta, !isMaximizing)

		if isMaximizing {
			if score > bestScore {
				bestScore = score
				bestCol = col
			}
			alpha = max(alpha, score)
		} else {
			if score < bestScore {
				bestScore = score
				bestCol = col
			}
			beta = min(beta, score)
		}

		if beta <= alpha {
			break
		}
	}

	return bestCol, bestScore
}
