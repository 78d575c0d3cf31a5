package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/game/board"
	"github.com/monopolybot/backend/internal/game/deck"
	"github.com/monopolybot/backend/internal/game/engine"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newTestHandler(t *testing.T) (*SessionHandler, *echo.Echo) {
	t.Helper()

	b, err := board.Standard()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	chance, err := deck.Chance(rng)
	require.NoError(t, err)
	chest, err := deck.CommunityChest(rng)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	eng := engine.New(b, chance, chest, engine.DefaultRules(), engine.NewDice(rng), logger)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return NewSessionHandler(eng, nil, logger), e
}

func TestGetSessionReturnsWaitingSnapshot(t *testing.T) {
	handler, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view engine.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "WAITING", view.Phase)
	assert.NotEmpty(t, view.ID)
	assert.Empty(t, view.Players)
}

func TestGetJournalDisabled(t *testing.T) {
	handler, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/journal", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetJournal(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestResetSessionRequiresReason(t *testing.T) {
	handler, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ResetSession(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestResetSessionStartsFreshSession(t *testing.T) {
	handler, e := newTestHandler(t)
	before := handler.engine.Snapshot()

	body := `{"reason":"stuck session"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("adminID", "admin")

	require.NoError(t, handler.ResetSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view engine.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "WAITING", view.Phase)
	assert.NotEqual(t, before.ID, view.ID)
}
