package game

import (
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions *SessionManager
	engine   *bot.Engine
}

func NewService(sessions *SessionManager, seed uint64) *Service {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Service{
		Sessions: sessions,
		engine:   bot.NewEngine(seed),
	}
}

// SuggestMove picks a column for player on an arbitrary position.
func (s *Service) SuggestMove(grid [][]int, player domain.PlayerID, difficulty bot.Difficulty) (bot.SearchResult, error) {
	if !player.IsPlayer() {
		return bot.SearchResult{}, domain.ErrInvalidPlayer
	}
	board, err := domain.ParseBoard(grid)
	if err != nil {
		return bot.SearchResult{}, err
	}
	if _, decided := domain.FindWinner(&board); decided {
		return bot.SearchResult{}, domain.ErrInvalidBoard
	}
	if len(board.ValidMoves()) == 0 {
		return bot.SearchResult{}, domain.ErrColumnFull
	}
	return s.engine.Search(board, player, difficulty), nil
}
