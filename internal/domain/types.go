package domain

import "errors"

var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player identity. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	// TurnTime is the per-move allotment in timer ticks.
	TurnTime = 30
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

func (s GameStatus) IsTerminal() bool {
	return s == StatusWon || s == StatusDraw
}

// why a round ended
const (
	ReasonConnectFour = "connect_four"
	ReasonTimeout     = "timeout"
	ReasonDraw        = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnOutOfRange Error = "column out of range"
	ErrColumnFull       Error = "column is full"
	ErrGameAlreadyOver  Error = "game already over"
	ErrInvalidBoard     Error = "invalid board"
	ErrInvalidPlayer    Error = "invalid player"
	ErrNotYourTurn      Error = "not your turn"
	ErrSessionClosed    Error = "session closed"
)

// Code is the stable identifier sent to clients alongside the message.
func (e Error) Code() string {
	switch e {
	case ErrColumnOutOfRange:
		return "COLUMN_OUT_OF_RANGE"
	case ErrColumnFull:
		return "COLUMN_FULL"
	case ErrGameAlreadyOver:
		return "GAME_ALREADY_OVER"
	case ErrInvalidBoard:
		return "INVALID_BOARD"
	case ErrInvalidPlayer:
		return "INVALID_PLAYER"
	case ErrNotYourTurn:
		return "NOT_YOUR_TURN"
	case ErrSessionClosed:
		return "SESSION_CLOSED"
	}
	return "UNKNOWN"
}

// ErrorCode maps any error to the code clients see.
func ErrorCode(err error) string {
	var domainErr Error
	if errors.As(err, &domainErr) {
		return domainErr.Code()
	}
	return "UNKNOWN"
}
