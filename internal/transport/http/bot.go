package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type BotHandler struct {
	GameService *game.Service
}

func NewBotHandler(gs *game.Service) *BotHandler {
	return &BotHandler{GameService: gs}
}

type botMoveRequest struct {
	Board      [][]int `json:"board" binding:"required"`
	Player     int     `json:"player" binding:"required"`
	Difficulty string  `json:"difficulty"`
}

type botMoveResponse struct {
	Column int `json:"column"`
	Score  int `json:"score"`
	Nodes  int `json:"nodes"`
}

// SuggestMove runs the engine on a position sent by the client. Row 0 of the board is the top.
func (h *BotHandler) SuggestMove(c *gin.Context) {
	var req botMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.GameService.SuggestMove(req.Board, domain.PlayerID(req.Player), bot.ParseDifficulty(req.Difficulty))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": domain.ErrorCode(err)})
		return
	}

	c.JSON(http.StatusOK, botMoveResponse{Column: result.Column, Score: result.Score, Nodes: result.Nodes})
}
