package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"minigames_webapp/internal/domain"
	"minigames_webapp/internal/http/middleware"
	"minigames_webapp/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// GameResultRequest - самоотчёт клиента о завершённой игре
type GameResultRequest struct {
	GameType string                 `json:"gameType"`
	Result   string                 `json:"result"`
	GameData map[string]interface{} `json:"gameData"`
}

// RecordResult accepts a self-reported outcome, writes the session record
// and bumps the caller's counters. The server does not recompute the
// outcome as a gate; the client promises to submit once per game.
func (h *Handler) RecordResult(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req GameResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	gameType := domain.GameType(req.GameType)
	result := domain.GameResult(req.Result)
	if !domain.ValidGameType(gameType) || !domain.ValidGameResult(result) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	ctx := c.Request.Context()
	if err := h.GameService.RecordResult(ctx, userID, gameType, result, req.GameData); err != nil {
		logger.Error("failed to record game result", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	middleware.GamesRecorded.WithLabelValues(req.GameType, req.Result).Inc()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Stats returns the caller's aggregate counters and derived win rate.
func (h *Handler) Stats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.GameService.Stats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// аккаунт исчез между проверкой сессии и чтением - не должно случаться
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Error("failed to read stats", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// History returns the caller's recent completed sessions, newest first.
func (h *Handler) History(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := h.GameService.History(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("failed to read history", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
