package commands

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	Name        string
	Description string
}

func (f fakeCommand) Handler(*events.ApplicationCommandInteractionCreate) {}

func (f fakeCommand) CreateCommandArguments() []discord.ApplicationCommandOption {
	return []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{Name: "word", Description: "a word"},
	}
}

func (f fakeCommand) ComponentHandler(*events.ComponentInteractionCreate) {}

func TestNewCommands(t *testing.T) {
	c := NewCommands(fakeCommand{Name: "fake", Description: "does nothing"})

	require.Len(t, c.ApplicationCommands, 2)
	ping := c.ApplicationCommands[0].(discord.SlashCommandCreate)
	assert.Equal(t, "ping", ping.Name)
	assert.Equal(t, "pong", ping.Description)

	fake := c.ApplicationCommands[1].(discord.SlashCommandCreate)
	assert.Equal(t, "fake", fake.Name)
	assert.Equal(t, "does nothing", fake.Description)
	assert.Len(t, fake.Options, 1)

	assert.Contains(t, c.CommandHandlers, "ping")
	assert.Contains(t, c.CommandHandlers, "fake")
	assert.Contains(t, c.ComponentHandlers, "fake")
	assert.NotContains(t, c.ComponentHandlers, "ping")
}

func TestComponentOwner(t *testing.T) {
	assert.Equal(t, "analytics", componentOwner("analytics_duration;Leaderboard"))
	assert.Equal(t, "plain", componentOwner("plain"))
}
