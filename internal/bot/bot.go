package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/config"
	"github.com/monopolybot/backend/internal/game/engine"
)

const helpText = `Commands:
/join - join the game
/start - start the game once everyone has joined
/players - list the players
/roll - roll the dice
/buy - buy the property you landed on
/sell <property> - sell a property back to the bank
/trade offer: <property>[, ...]; demand: <property>[, ...] - propose a trade
/accept - accept the pending trade
/end - end your turn`

// Bot is the Telegram transport. It tokenizes chat commands into
// engine commands and renders each Result message as one reply. It
// holds no game state of its own.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
	logger *zap.SugaredLogger
	cfg    config.TelegramConfig
}

// New connects to the Telegram Bot API.
func New(cfg config.TelegramConfig, eng *engine.Engine, logger *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	api.Debug = cfg.Debug

	logger.Infow("Telegram bot authorized", "username", api.Self.UserName)

	return &Bot{
		api:    api,
		engine: eng,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Telegram bot stopped")
			return

		case update, open := <-updates:
			if !open {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(update.Message)
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	if name == "" {
		name = msg.From.UserName
	}

	cmd, known := ParseCommand(msg.Command(), msg.CommandArguments(), strconv.FormatInt(msg.From.ID, 10), name)
	if !known {
		return
	}
	if cmd.Kind == "" {
		b.reply(msg.Chat.ID, helpText)
		return
	}

	result := b.engine.Execute(cmd)
	for _, message := range result.Messages {
		b.reply(msg.Chat.ID, message)
	}
}

// ParseCommand maps a chat command name and its argument string onto an
// engine command. The second return is false for commands this bot does
// not recognize at all; a recognized /help returns a zero-kind command.
func ParseCommand(name, args, actorID, actorName string) (engine.Command, bool) {
	cmd := engine.Command{
		ActorID:   actorID,
		ActorName: actorName,
		RawArgs:   strings.TrimSpace(args),
	}

	switch name {
	case "join":
		cmd.Kind = engine.CommandJoin
	case "start":
		cmd.Kind = engine.CommandStart
	case "players":
		cmd.Kind = engine.CommandPlayers
	case "roll":
		cmd.Kind = engine.CommandRoll
	case "buy":
		cmd.Kind = engine.CommandBuy
	case "sell":
		cmd.Kind = engine.CommandSell
	case "trade":
		cmd.Kind = engine.CommandTradeOffer
	case "accept":
		cmd.Kind = engine.CommandTradeAccept
	case "end":
		cmd.Kind = engine.CommandEnd
	case "help":
		// handled by the transport, never reaches the engine
	default:
		return engine.Command{}, false
	}

	return cmd, true
}

func (b *Bot) reply(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Errorf("Failed to send reply: %v", err)
	}
}
