package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monopolybot/backend/internal/game/engine"
)

func TestParseCommandMapsGameplayCommands(t *testing.T) {
	cases := []struct {
		name string
		args string
		kind engine.CommandKind
	}{
		{"join", "", engine.CommandJoin},
		{"start", "", engine.CommandStart},
		{"players", "", engine.CommandPlayers},
		{"roll", "", engine.CommandRoll},
		{"buy", "", engine.CommandBuy},
		{"sell", "Baltic Avenue", engine.CommandSell},
		{"trade", "offer: Baltic Avenue; demand: Boardwalk", engine.CommandTradeOffer},
		{"accept", "", engine.CommandTradeAccept},
		{"end", "", engine.CommandEnd},
	}

	for _, tc := range cases {
		cmd, known := ParseCommand(tc.name, tc.args, "42", "Alice")
		assert.True(t, known, tc.name)
		assert.Equal(t, tc.kind, cmd.Kind, tc.name)
		assert.Equal(t, "42", cmd.ActorID)
		assert.Equal(t, "Alice", cmd.ActorName)
	}
}

func TestParseCommandTrimsArguments(t *testing.T) {
	cmd, known := ParseCommand("sell", "  Baltic Avenue  ", "42", "Alice")
	assert.True(t, known)
	assert.Equal(t, "Baltic Avenue", cmd.RawArgs)
}

func TestParseCommandHelpHasNoKind(t *testing.T) {
	cmd, known := ParseCommand("help", "", "42", "Alice")
	assert.True(t, known)
	assert.Empty(t, cmd.Kind)
}

func TestParseCommandIgnoresUnknown(t *testing.T) {
	_, known := ParseCommand("dance", "", "42", "Alice")
	assert.False(t, known)
}
