package domain

type ClientMessage struct {
	Type   string `json:"type"`
	Token  string `json:"token,omitempty"`
	Column *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type          string      `json:"type"`
	Message       string      `json:"message,omitempty"`
	Code          string      `json:"code,omitempty"`
	SessionID     string      `json:"sessionId,omitempty"`
	Mode          string      `json:"mode,omitempty"`
	Phase         string      `json:"phase,omitempty"`
	Opponent      string      `json:"opponent,omitempty"`
	Column        *int        `json:"column,omitempty"`
	Row           *int        `json:"row,omitempty"`
	Player        int         `json:"player,omitempty"`
	NextTurn      int         `json:"nextTurn,omitempty"`
	Winner        int         `json:"winner,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	WinningLine   WinningLine `json:"winningLine,omitempty"`
	TimeRemaining int         `json:"timeRemaining,omitempty"`
	State         *Snapshot   `json:"state,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
