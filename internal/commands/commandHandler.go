package commands

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

type CommandI interface {
	Handler(event *events.ApplicationCommandInteractionCreate)
	CreateCommandArguments() []discord.ApplicationCommandOption
}

// ComponentCommandI is implemented by commands that own message components.
// Their custom IDs start with "<command name>_".
type ComponentCommandI interface {
	ComponentHandler(event *events.ComponentInteractionCreate)
}

type Commands struct {
	ApplicationCommands []discord.ApplicationCommandCreate
	CommandHandlers     map[string]func(event *events.ApplicationCommandInteractionCreate)
	ComponentHandlers   map[string]func(event *events.ComponentInteractionCreate)
}

// NewCommands registers cmds next to the built in ping command.
func NewCommands(cmds ...CommandI) *Commands {
	c := &Commands{
		CommandHandlers:   make(map[string]func(event *events.ApplicationCommandInteractionCreate)),
		ComponentHandlers: make(map[string]func(event *events.ComponentInteractionCreate)),
	}
	for _, cmd := range append([]CommandI{PingCmd}, cmds...) {
		name := reflect.ValueOf(cmd).FieldByName("Name").String()
		c.ApplicationCommands = append(c.ApplicationCommands, discord.SlashCommandCreate{
			Name:        name,
			Description: reflect.ValueOf(cmd).FieldByName("Description").String(),
			Options:     cmd.CreateCommandArguments(),
		})
		c.CommandHandlers[name] = cmd.Handler
		if component, ok := cmd.(ComponentCommandI); ok {
			c.ComponentHandlers[name] = component.ComponentHandler
		}
	}
	return c
}

func (c *Commands) OnApplicationCommand(event *events.ApplicationCommandInteractionCreate) {
	if h, ok := c.CommandHandlers[event.Data.CommandName()]; ok {
		h(event)
	}
}

func (c *Commands) OnComponent(event *events.ComponentInteractionCreate) {
	if h, ok := c.ComponentHandlers[componentOwner(event.Data.CustomID())]; ok {
		h(event)
		return
	}
	slog.Warn("No handler for component", slog.String("customID", event.Data.CustomID()))
}

func componentOwner(customID string) string {
	owner, _, _ := strings.Cut(customID, "_")
	return owner
}

var PingCmd = PingCommand{
	Name:        "ping",
	Description: "pong",
}

type PingCommand struct {
	Name        string
	Description string
}

// Handler sends back the pong
func (p PingCommand) Handler(event *events.ApplicationCommandInteractionCreate) {
	err := event.CreateMessage(discord.MessageCreate{
		Content: "Pong",
	})
	if err != nil {
		slog.Error("Error sending pong:", slog.Any("err", err))
	}
}

func (p PingCommand) CreateCommandArguments() []discord.ApplicationCommandOption {
	return nil
}
