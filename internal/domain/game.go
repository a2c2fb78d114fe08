package domain

// ScoreBoard counts round wins within a session. Draws never score.
type ScoreBoard struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

func (s *ScoreBoard) increment(player PlayerID) {
	switch player {
	case Player1:
		s.Player1++
	case Player2:
		s.Player2++
	}
}

func (s ScoreBoard) Of(player PlayerID) int {
	if player == Player1 {
		return s.Player1
	}
	if player == Player2 {
		return s.Player2
	}
	return 0
}

// Game is the state machine for one session. It is not safe for concurrent
// use; callers serialize access.
type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	Reason        string
	WinningLine   WinningLine
	TimeRemaining int
	Scores        ScoreBoard
	MoveCount     int
	LastMove      *Position
	RoundStarter  PlayerID
}

type DropResult struct {
	Row         int
	Column      int
	Player      PlayerID
	Status      GameStatus
	WinningLine WinningLine
}

type TimerResult struct {
	Remaining int
	Expired   bool
	// Winner is set when the expiry forfeited the round.
	Winner PlayerID
}

func NewGame() *Game {
	g := &Game{}
	g.Restart()
	return g
}

func (g *Game) IsFinished() bool {
	return g.Status.IsTerminal()
}

// Drop validates the column, places the current player's disk and advances
// the game. Rejected drops leave the game untouched.
func (g *Game) Drop(column int) (DropResult, error) {
	if g.IsFinished() {
		return DropResult{}, ErrGameAlreadyOver
	}
	if err := ValidateDrop(&g.Board, column); err != nil {
		return DropResult{}, err
	}

	player := g.CurrentPlayer
	row, _ := g.Board.LowestEmptyRow(column)
	g.Board.Place(row, column, player)
	g.MoveCount++
	g.LastMove = &Position{Row: row, Column: column}
	g.TimeRemaining = TurnTime

	result := DropResult{Row: row, Column: column, Player: player}

	if line, won := CheckWin(&g.Board, row, column, player); won {
		g.Board.MarkLine(line)
		g.WinningLine = line
		g.finish(player, ReasonConnectFour)
		result.WinningLine = line
	} else if g.Board.IsFull() {
		g.Status = StatusDraw
		g.Reason = ReasonDraw
	} else {
		g.CurrentPlayer = player.Opponent()
	}

	result.Status = g.Status
	return result, nil
}

// TickTimer consumes one unit of the current turn. When it runs out the
// opponent of the player to move wins by forfeit.
func (g *Game) TickTimer() TimerResult {
	if g.IsFinished() {
		return TimerResult{Remaining: g.TimeRemaining}
	}

	g.TimeRemaining--
	if g.TimeRemaining > 0 {
		return TimerResult{Remaining: g.TimeRemaining}
	}

	winner := g.CurrentPlayer.Opponent()
	g.finish(winner, ReasonTimeout)
	g.TimeRemaining = TurnTime
	return TimerResult{Remaining: g.TimeRemaining, Expired: true, Winner: winner}
}

// Restart wipes everything, scores included. Player 1 starts.
func (g *Game) Restart() {
	g.Scores = ScoreBoard{}
	g.resetRound(Player1)
}

// PlayAgain starts a new round keeping the scores. The loser of the last
// round starts; after a draw the starter alternates.
func (g *Game) PlayAgain() {
	starter := g.RoundStarter.Opponent()
	if g.Status == StatusWon {
		starter = g.Winner.Opponent()
	}
	if !starter.IsPlayer() {
		starter = Player1
	}
	g.resetRound(starter)
}

func (g *Game) finish(winner PlayerID, reason string) {
	g.Status = StatusWon
	g.Winner = winner
	g.Reason = reason
	g.Scores.increment(winner)
}

func (g *Game) resetRound(starter PlayerID) {
	g.Board = NewBoard()
	g.CurrentPlayer = starter
	g.RoundStarter = starter
	g.Status = StatusActive
	g.Winner = Empty
	g.Reason = ""
	g.WinningLine = nil
	g.TimeRemaining = TurnTime
	g.MoveCount = 0
	g.LastMove = nil
}

// Snapshot is a read-only copy of the game for presentation layers.
type Snapshot struct {
	Board         Board       `json:"-"`
	Grid          [][]int     `json:"board"`
	CurrentPlayer PlayerID    `json:"currentPlayer"`
	Status        GameStatus  `json:"status"`
	Winner        PlayerID    `json:"winner,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	WinningLine   WinningLine `json:"winningLine,omitempty"`
	TimeRemaining int         `json:"timeRemaining"`
	Scores        ScoreBoard  `json:"scores"`
	MoveCount     int         `json:"moveCount"`
	LastMove      *Position   `json:"lastMove,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board:         g.Board,
		Grid:          g.Board.Grid(),
		CurrentPlayer: g.CurrentPlayer,
		Status:        g.Status,
		Winner:        g.Winner,
		Reason:        g.Reason,
		TimeRemaining: g.TimeRemaining,
		Scores:        g.Scores,
		MoveCount:     g.MoveCount,
	}
	if g.WinningLine != nil {
		s.WinningLine = append(WinningLine(nil), g.WinningLine...)
	}
	if g.LastMove != nil {
		last := *g.LastMove
		s.LastMove = &last
	}
	return s
}
