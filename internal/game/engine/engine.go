package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/game/board"
	"github.com/monopolybot/backend/internal/game/deck"
	"github.com/monopolybot/backend/internal/game/models"
)

// Engine is the rules engine: it owns the single session, validates
// every command fully before mutating anything, and describes what
// happened through Result messages. Commands are processed one at a
// time; the lock exists so the HTTP API can read snapshots while the
// transport drives commands.
type Engine struct {
	mu      sync.RWMutex
	session *Session
	rules   Rules
	dice    Dice
	logger  *zap.SugaredLogger
	sinks   []Sink
}

// New creates an engine with a fresh WAITING session.
func New(b *board.Board, chance, chest *deck.Deck, rules Rules, dice Dice, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		session: newSession(b, chance, chest),
		rules:   rules,
		dice:    dice,
		logger:  logger,
	}
}

// AddSink registers an event observer. Not safe to call after the
// engine starts receiving commands.
func (e *Engine) AddSink(sink Sink) {
	e.sinks = append(e.sinks, sink)
}

// Snapshot returns a read-only view of the current session.
func (e *Engine) Snapshot() SessionView {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.view()
}

// Reset discards the current session and starts a fresh WAITING one.
func (e *Engine) Reset() SessionView {
	e.mu.Lock()
	old := e.session.ID
	e.session = newSession(e.session.Board, e.session.Chance, e.session.CommunityChest)
	view := e.session.view()
	e.mu.Unlock()

	e.logger.Infow("Session reset", "oldSessionId", old, "sessionId", view.ID)
	return view
}

// Execute processes one command and returns the result for the
// transport to render. Rejections never leave the session partially
// mutated.
func (e *Engine) Execute(cmd Command) Result {
	e.mu.Lock()
	result := e.dispatch(cmd)
	event := Event{
		SessionID: e.session.ID,
		Command:   string(cmd.Kind),
		ActorID:   cmd.ActorID,
		Success:   result.Success,
		ErrorKind: string(result.ErrorKind),
		Messages:  result.Messages,
		Phase:     string(e.session.Phase),
		WinnerID:  e.session.WinnerID,
		Timestamp: time.Now(),
	}
	if e.session.Phase == models.PhaseEnded && result.Success {
		view := e.session.view()
		event.Final = &view
	}
	e.mu.Unlock()

	if !result.Success {
		e.logger.Debugw("Command rejected",
			"command", cmd.Kind, "actor", cmd.ActorID, "errorKind", result.ErrorKind)
	}

	for _, sink := range e.sinks {
		sink.HandleEvent(event)
	}

	return result
}

func (e *Engine) dispatch(cmd Command) Result {
	switch cmd.Kind {
	case CommandJoin:
		return e.join(cmd)
	case CommandStart:
		return e.start(cmd)
	case CommandRoll:
		return e.roll(cmd)
	case CommandBuy:
		return e.buy(cmd)
	case CommandSell:
		return e.sell(cmd)
	case CommandTradeOffer:
		return e.tradeOffer(cmd)
	case CommandTradeAccept:
		return e.tradeAccept(cmd)
	case CommandEnd:
		return e.endTurn(cmd)
	case CommandPlayers:
		return e.roster()
	default:
		return reject(ErrorUnknownCommand, fmt.Sprintf("Unknown command %q.", cmd.Kind))
	}
}

// requireTurn gates every gameplay command: the session must be in
// progress and the actor must be the current player.
func (e *Engine) requireTurn(actorID string) *Result {
	s := e.session
	switch s.Phase {
	case models.PhaseWaiting:
		r := reject(ErrorNotStarted, "The game is not started yet. Type /start when everyone has joined.")
		return &r
	case models.PhaseEnded:
		r := reject(ErrorAlreadyEnded, "The game is already ended.")
		return &r
	}

	current := s.currentPlayer()
	if current == nil || current.ID != actorID {
		name := "nobody"
		if current != nil {
			name = current.DisplayName
		}
		r := reject(ErrorOutOfTurn, fmt.Sprintf("It's not your turn. It's %s's turn.", name))
		return &r
	}
	return nil
}

func (e *Engine) join(cmd Command) Result {
	s := e.session
	switch s.Phase {
	case models.PhaseInProgress:
		return reject(ErrorAlreadyStarted, "The game is already started.")
	case models.PhaseEnded:
		return reject(ErrorAlreadyEnded, "The game is already ended.")
	}

	if s.playerByID(cmd.ActorID) != nil {
		return reject(ErrorDuplicatePlayer, "You are already a player.")
	}
	if len(s.Players) >= e.rules.MaxPlayers {
		return reject(ErrorGameFull, fmt.Sprintf("The game is full (%d players max).", e.rules.MaxPlayers))
	}

	name := strings.TrimSpace(cmd.ActorName)
	if name == "" {
		name = cmd.ActorID
	}

	player := &models.Player{
		ID:          cmd.ActorID,
		DisplayName: name,
		Cash:        e.rules.StartingCash,
		Position:    0,
		Status:      models.PlayerStatusActive,
	}
	s.Players = append(s.Players, player)

	e.logger.Infow("Player joined", "sessionId", s.ID, "playerId", player.ID, "players", len(s.Players))

	return ok(fmt.Sprintf("Welcome %s! You have joined the game with $%d. Type /start when everyone has joined.",
		player.DisplayName, player.Cash))
}

func (e *Engine) start(cmd Command) Result {
	s := e.session
	switch s.Phase {
	case models.PhaseInProgress:
		return reject(ErrorAlreadyStarted, "The game is already started.")
	case models.PhaseEnded:
		return reject(ErrorAlreadyEnded, "The game is already ended.")
	}

	if len(s.Players) < e.rules.MinPlayers {
		return reject(ErrorNotEnoughPlayers,
			fmt.Sprintf("At least %d players are needed to start. Type /join to join.", e.rules.MinPlayers))
	}

	s.Phase = models.PhaseInProgress
	s.Turn = 0
	first := s.Players[0]

	e.logger.Infow("Game started", "sessionId", s.ID, "players", len(s.Players))

	return ok(
		fmt.Sprintf("The game has started with %d players.", len(s.Players)),
		fmt.Sprintf("It's %s's turn. Type /roll to roll the dice.", first.DisplayName),
	)
}

func (e *Engine) endTurn(cmd Command) Result {
	if r := e.requireTurn(cmd.ActorID); r != nil {
		return *r
	}

	s := e.session
	messages := []string{}
	if s.Pending != nil {
		square := s.Board.SquareAt(s.Pending.SquareIndex)
		messages = append(messages, fmt.Sprintf("%s passed on buying %s.",
			s.currentPlayer().DisplayName, square.Name))
	}

	next := s.advance()
	messages = append(messages, fmt.Sprintf("It's %s's turn. Type /roll to roll the dice.", next.DisplayName))
	return ok(messages...)
}

func (e *Engine) roster() Result {
	s := e.session
	if len(s.Players) == 0 {
		return ok("There are no players yet. Type /join to join the game.")
	}

	messages := []string{"The current players are:"}
	for _, p := range s.Players {
		line := fmt.Sprintf("%s ($%d)", p.DisplayName, p.Cash)
		if !p.Active() {
			line += " (bankrupt)"
		}
		messages = append(messages, line)
	}
	return ok(messages...)
}
