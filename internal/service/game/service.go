package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/pkg/uid"
	"github.com/rs/zerolog/log"
)

type Mode string

const (
	ModeLocal    Mode = "local"    // two humans sharing one screen
	ModeComputer Mode = "computer" // human is Player 1, computer is Player 2
)

func ParseMode(mode string) (Mode, error) {
	switch Mode(mode) {
	case ModeLocal, "":
		return ModeLocal, nil
	case ModeComputer:
		return ModeComputer, nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

type Phase string

const (
	PhaseAwaitingHuman    Phase = "awaiting_human"
	PhaseAwaitingComputer Phase = "awaiting_computer"
	PhaseFinished         Phase = "finished"
)

// Notifier receives every state change of a session.
type Notifier interface {
	Notify(sessionID string, message domain.ServerMessage) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, domain.ServerMessage) error { return nil }

type Options struct {
	BotThinkDelay time.Duration
	// TurnTick is the wall-clock length of one timer unit; zero disables the clock.
	TurnTick time.Duration
	// Seed for the easy bot; zero picks one from the clock.
	Seed uint64
}

type GameSession struct {
	ID             string
	Mode           Mode
	Difficulty     bot.Difficulty
	ComputerPlayer domain.PlayerID
	CreatedAt      time.Time

	game         *domain.Game
	engine       *bot.Engine
	notifier     Notifier
	opts         Options
	round        int
	lastActivity time.Time
	closed       bool
	outbox       []domain.ServerMessage
	stop         chan struct{}
	stopOnce     sync.Once
	mu           sync.Mutex

	// sendMu orders deliveries; it is never acquired while mu is held.
	sendMu sync.Mutex
}

// SessionState is what clients render.
type SessionState struct {
	SessionID  string          `json:"sessionId"`
	Mode       Mode            `json:"mode"`
	Difficulty bot.Difficulty  `json:"difficulty,omitempty"`
	Phase      Phase           `json:"phase"`
	Opponent   string          `json:"opponent,omitempty"`
	Game       domain.Snapshot `json:"game"`
}

func NewGameSession(mode Mode, difficulty bot.Difficulty, notifier Notifier, opts Options) *GameSession {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	gs := &GameSession{
		ID:           uid.NewSessionID(),
		Mode:         mode,
		CreatedAt:    time.Now(),
		game:         domain.NewGame(),
		notifier:     notifier,
		opts:         opts,
		lastActivity: time.Now(),
		stop:         make(chan struct{}),
	}
	if mode == ModeComputer {
		gs.Difficulty = difficulty
		gs.ComputerPlayer = domain.Player2
		gs.engine = bot.NewEngine(seed)
	}
	return gs
}

// Start launches the turn clock. Stop must be called to release it.
func (gs *GameSession) Start() {
	if gs.opts.TurnTick <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(gs.opts.TurnTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gs.Tick()
			case <-gs.stop:
				return
			}
		}
	}()
}

// Stop halts the clock and closes the session: later actions fail with ErrSessionClosed.
func (gs *GameSession) Stop() {
	gs.stopOnce.Do(func() {
		gs.mu.Lock()
		gs.closed = true
		gs.outbox = nil
		gs.mu.Unlock()
		close(gs.stop)
	})
}

func (gs *GameSession) Closed() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.closed
}

func (gs *GameSession) LastActivity() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lastActivity
}

func (gs *GameSession) State() SessionState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.stateLocked()
}

func (gs *GameSession) stateLocked() SessionState {
	state := SessionState{
		SessionID: gs.ID,
		Mode:      gs.Mode,
		Phase:     gs.phaseLocked(),
		Game:      gs.game.Snapshot(),
	}
	if gs.Mode == ModeComputer {
		state.Difficulty = gs.Difficulty
		state.Opponent = domain.GetBotName(string(gs.Difficulty))
	}
	return state
}

func (gs *GameSession) phaseLocked() Phase {
	if gs.game.IsFinished() {
		return PhaseFinished
	}
	if gs.isComputerTurnLocked() {
		return PhaseAwaitingComputer
	}
	return PhaseAwaitingHuman
}

func (gs *GameSession) isComputerTurnLocked() bool {
	return gs.Mode == ModeComputer && gs.game.CurrentPlayer == gs.ComputerPlayer
}

// HandleDrop plays a human move for whoever is to move.
func (gs *GameSession) HandleDrop(column int) (domain.DropResult, error) {
	gs.mu.Lock()
	defer gs.flush()
	defer gs.mu.Unlock()

	if gs.closed {
		return domain.DropResult{}, domain.ErrSessionClosed
	}
	if gs.isComputerTurnLocked() && !gs.game.IsFinished() {
		return domain.DropResult{}, domain.ErrNotYourTurn
	}
	return gs.dropLocked(column)
}

func (gs *GameSession) dropLocked(column int) (domain.DropResult, error) {
	result, err := gs.game.Drop(column)
	if err != nil {
		log.Debug().Str("session", gs.ID).Int("column", column).Err(err).Msg("[GAME] Drop rejected")
		return result, err
	}
	gs.lastActivity = time.Now()

	row, col := result.Row, result.Column
	gs.enqueue(domain.ServerMessage{
		Type:        "move_made",
		Column:      &col,
		Row:         &row,
		Player:      int(result.Player),
		NextTurn:    int(gs.game.CurrentPlayer),
		WinningLine: result.WinningLine,
	}, true)

	switch result.Status {
	case domain.StatusWon:
		log.Info().Str("session", gs.ID).Int("winner", int(result.Player)).
			Int("moves", gs.game.MoveCount).Msg("[GAME] Connect four")
		gs.enqueueGameOver()
	case domain.StatusDraw:
		log.Info().Str("session", gs.ID).Msg("[GAME] Draw, board is full")
		gs.enqueueGameOver()
	default:
		gs.scheduleComputerMoveLocked()
	}

	return result, nil
}

// Tick advances the turn clock by one unit.
func (gs *GameSession) Tick() domain.TimerResult {
	gs.mu.Lock()
	defer gs.flush()
	defer gs.mu.Unlock()

	if gs.closed || gs.game.IsFinished() {
		return domain.TimerResult{Remaining: gs.game.TimeRemaining}
	}

	res := gs.game.TickTimer()
	if res.Expired {
		log.Info().Str("session", gs.ID).Int("winner", int(res.Winner)).Msg("[GAME] Turn timer expired, forfeit")
		gs.round++
		gs.enqueueGameOver()
		return res
	}

	gs.enqueue(domain.ServerMessage{
		Type:          "timer",
		TimeRemaining: res.Remaining,
		NextTurn:      int(gs.game.CurrentPlayer),
	}, false)
	return res
}

// Restart clears the board and both scores.
func (gs *GameSession) Restart() error {
	gs.mu.Lock()
	defer gs.flush()
	defer gs.mu.Unlock()

	if gs.closed {
		return domain.ErrSessionClosed
	}
	gs.game.Restart()
	gs.round++
	gs.lastActivity = time.Now()
	log.Info().Str("session", gs.ID).Msg("[GAME] Restarted")
	gs.enqueue(domain.ServerMessage{Type: "state"}, true)
	gs.scheduleComputerMoveLocked()
	return nil
}

// PlayAgain starts the next round keeping the scores; the loser starts.
func (gs *GameSession) PlayAgain() error {
	gs.mu.Lock()
	defer gs.flush()
	defer gs.mu.Unlock()

	if gs.closed {
		return domain.ErrSessionClosed
	}
	gs.game.PlayAgain()
	gs.round++
	gs.lastActivity = time.Now()
	log.Info().Str("session", gs.ID).Int("starter", int(gs.game.CurrentPlayer)).Msg("[GAME] New round")
	gs.enqueue(domain.ServerMessage{Type: "state"}, true)
	gs.scheduleComputerMoveLocked()
	return nil
}

// RequestState returns the full "state" frame. Asking for it counts as activity.
func (gs *GameSession) RequestState() (domain.ServerMessage, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.closed {
		return domain.ServerMessage{}, domain.ErrSessionClosed
	}
	gs.lastActivity = time.Now()
	return gs.withStateLocked(domain.ServerMessage{Type: "state"}), nil
}

// scheduleComputerMoveLocked runs the search after the think delay on its own
// goroutine. The result is dropped if the round or move count changed meanwhile.
func (gs *GameSession) scheduleComputerMoveLocked() {
	if !gs.isComputerTurnLocked() || gs.game.IsFinished() {
		return
	}

	round := gs.round
	moveCount := gs.game.MoveCount
	board := gs.game.Board

	time.AfterFunc(gs.opts.BotThinkDelay, func() {
		if gs.Closed() {
			return
		}

		started := time.Now()
		result := gs.engine.Search(board, gs.ComputerPlayer, gs.Difficulty)
		log.Debug().Str("session", gs.ID).Str("difficulty", string(gs.Difficulty)).
			Int("column", result.Column).Int("score", result.Score).Int("nodes", result.Nodes).
			Dur("took", time.Since(started)).Msg("[BOT] Move selected")

		gs.mu.Lock()
		defer gs.flush()
		defer gs.mu.Unlock()

		if gs.closed || gs.round != round || gs.game.MoveCount != moveCount || !gs.isComputerTurnLocked() || gs.game.IsFinished() {
			log.Debug().Str("session", gs.ID).Msg("[BOT] Discarding stale move")
			return
		}
		if result.Column < 0 {
			return
		}
		if _, err := gs.dropLocked(result.Column); err != nil {
			log.Error().Str("session", gs.ID).Err(err).Msg("[BOT] Error handling bot move")
		}
	})
}

func (gs *GameSession) enqueueGameOver() {
	gs.enqueue(domain.ServerMessage{
		Type:        "game_over",
		Winner:      int(gs.game.Winner),
		Reason:      gs.game.Reason,
		WinningLine: gs.game.WinningLine,
	}, true)
}

func (gs *GameSession) withStateLocked(msg domain.ServerMessage) domain.ServerMessage {
	state := gs.stateLocked()
	msg.SessionID = gs.ID
	msg.Mode = string(state.Mode)
	msg.Phase = string(state.Phase)
	msg.Opponent = state.Opponent
	msg.State = &state.Game
	return msg
}

func (gs *GameSession) enqueue(msg domain.ServerMessage, withState bool) {
	if withState {
		msg = gs.withStateLocked(msg)
	}
	msg.SessionID = gs.ID
	gs.outbox = append(gs.outbox, msg)
}

// flush delivers queued messages outside mu so a slow socket cannot hold up the game.
// Whoever flushes first sends everything queued so far, in order.
func (gs *GameSession) flush() {
	gs.sendMu.Lock()
	defer gs.sendMu.Unlock()

	gs.mu.Lock()
	pending := gs.outbox
	gs.outbox = nil
	gs.mu.Unlock()

	for _, msg := range pending {
		if err := gs.notifier.Notify(gs.ID, msg); err != nil {
			log.Warn().Str("session", gs.ID).Str("type", msg.Type).Err(err).Msg("[SESSION] Notify failed")
		}
	}
}

// SessionManager manages active game sessions
type SessionManager struct {
	Sessions map[string]*GameSession // sessionID → GameSession
	mu       sync.RWMutex
	notifier Notifier
	opts     Options
}

func NewSessionManager(notifier Notifier, opts Options) *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*GameSession),
		notifier: notifier,
		opts:     opts,
	}
}

func (sm *SessionManager) CreateSession(mode Mode, difficulty bot.Difficulty) *GameSession {
	session := NewGameSession(mode, difficulty, sm.notifier, sm.opts)

	sm.mu.Lock()
	sm.Sessions[session.ID] = session
	sm.mu.Unlock()

	session.Start()
	log.Info().Str("session", session.ID).Str("mode", string(mode)).Str("difficulty", string(session.Difficulty)).
		Msg("[SESSION] Created session")
	return session
}

func (sm *SessionManager) GetSession(sessionID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Sessions[sessionID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(sessionID string) error {
	sm.mu.Lock()
	session, exists := sm.Sessions[sessionID]
	if !exists {
		sm.mu.Unlock()
		return fmt.Errorf("session not found")
	}
	delete(sm.Sessions, sessionID)
	sm.mu.Unlock()

	session.Stop()
	log.Info().Str("session", sessionID).Msg("[SESSION] Removed session")
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Sessions)
}

// CleanupIdleSessions removes and closes sessions without activity for longer than maxIdle.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Sessions))
	for _, session := range sm.Sessions {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	now := time.Now()
	var stale []*GameSession
	for _, session := range sessions {
		if now.Sub(session.LastActivity()) > maxIdle {
			stale = append(stale, session)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	var removed []*GameSession
	sm.mu.Lock()
	for _, session := range stale {
		if sm.Sessions[session.ID] == session {
			delete(sm.Sessions, session.ID)
			removed = append(removed, session)
		}
	}
	sm.mu.Unlock()

	for _, session := range removed {
		session.Stop()
	}

	if len(removed) > 0 {
		log.Info().Int("count", len(removed)).Msg("[SESSION] Memory cleanup: removed idle sessions")
	}
	return len(removed)
}
