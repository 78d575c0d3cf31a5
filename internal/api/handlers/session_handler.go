package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/game/engine"
	"github.com/monopolybot/backend/internal/journal"
)

const defaultJournalLimit = 50

// SessionHandler serves read-only views of the running session and the
// admin reset operation.
type SessionHandler struct {
	engine  *engine.Engine
	journal *journal.Journal
	logger  *zap.SugaredLogger
}

// NewSessionHandler creates a new session handler. The journal may be
// nil when Redis is disabled.
func NewSessionHandler(eng *engine.Engine, jrnl *journal.Journal, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{
		engine:  eng,
		journal: jrnl,
		logger:  logger,
	}
}

// GetSession returns the current session snapshot.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.Snapshot())
}

// GetJournal returns the most recent journal entries for the current
// session, oldest first.
func (h *SessionHandler) GetJournal(c echo.Context) error {
	if h.journal == nil {
		return echo.NewHTTPError(http.StatusNotFound, "journal is disabled")
	}

	snapshot := h.engine.Snapshot()
	events, err := h.journal.Recent(c.Request().Context(), snapshot.ID, defaultJournalLimit)
	if err != nil {
		h.logger.Errorf("Failed to read journal: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read journal")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessionId": snapshot.ID,
		"events":    events,
	})
}

// ResetSessionRequest is the admin reset request body.
type ResetSessionRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// ResetSession discards the running session and starts a fresh one.
func (h *SessionHandler) ResetSession(c echo.Context) error {
	var req ResetSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adminID, _ := c.Get("adminID").(string)
	view := h.engine.Reset()

	h.logger.Infow("Session reset by admin",
		"admin", adminID, "reason", req.Reason, "sessionId", view.ID)

	return c.JSON(http.StatusOK, view)
}
