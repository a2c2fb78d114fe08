package bot

import (
	"fmt"
	"sync"

	"github.com/iamasit07/connect-four/internal/domain"
	"golang.org/x/exp/rand"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates and returns the bot difficulty
// Defaults to Medium if invalid or empty
func ParseDifficulty(difficulty string) Difficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Depth is the minimax horizon. Easy does not search.
func (d Difficulty) Depth() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyHard:
		return 6
	default:
		return 4
	}
}

type SearchResult struct {
	Column int
	Score  int
	Nodes  int
}

// Engine picks moves for the computer player. It only holds a random source,
// so one engine per session is enough.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(seed uint64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// BestMove returns the column to play, or -1 if the board has no legal column.
func (e *Engine) BestMove(board domain.Board, aiPlayer domain.PlayerID, difficulty Difficulty) int {
	return e.Search(board, aiPlayer, difficulty).Column
}

// Search works on its own copy of the board; the caller's board is never touched.
func (e *Engine) Search(board domain.Board, aiPlayer domain.PlayerID, difficulty Difficulty) SearchResult {
	if !aiPlayer.IsPlayer() {
		panic(fmt.Sprintf("bot: invalid ai player %d", aiPlayer))
	}
	if len(board.ValidMoves()) == 0 {
		return SearchResult{Column: -1}
	}

	if difficulty == DifficultyEasy {
		return SearchResult{Column: e.randomMove(&board), Nodes: 1}
	}
	return search(board, aiPlayer, difficulty.Depth())
}

func (e *Engine) randomMove(board *domain.Board) int {
	validColumns := board.ValidMoves()

	e.mu.Lock()
	defer e.mu.Unlock()
	return validColumns[e.rng.Intn(len(validColumns))]
}
