package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/spf13/cobra"
	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/stollenaar/analyticsbot/internal/commands"
	"github.com/stollenaar/analyticsbot/internal/commands/analyticscommand"
	"github.com/stollenaar/analyticsbot/internal/routes"
	"github.com/stollenaar/analyticsbot/internal/util"
)

var (
	GuildID        string
	RemoveCommands bool

	rootCmd = &cobra.Command{
		Use:          "analyticsbot",
		Short:        "Discord bot that charts website page views",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&GuildID, "guild", "", "Test guild ID. If not passed - bot registers commands globally")
	rootCmd.Flags().BoolVar(&RemoveCommands, "rmcmd", true, "Remove all commands after shutdowning or not")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := util.LoadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	registry, err := analytics.LoadRegistry(cfg.REGISTRY_PATH)
	if err != nil {
		return err
	}
	client := analytics.NewClient(registry, cfg, analytics.WithLogger(logger))
	pipeline := analyticscommand.NewPipeline(client, logger)
	cmds := commands.NewCommands(analyticscommand.New(pipeline, cfg))

	token, err := cfg.GetDiscordToken(ctx)
	if err != nil {
		return err
	}

	discordClient, err := disgo.New(token,
		bot.WithLogger(logger),
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		// Report requests are slow; each interaction gets its own goroutine.
		bot.WithEventManagerConfigOpts(bot.WithAsyncEventsEnabled()),
		bot.WithEventListenerFunc(cmds.OnApplicationCommand),
		bot.WithEventListenerFunc(cmds.OnComponent),
	)
	if err != nil {
		return fmt.Errorf("error loading bot: %w", err)
	}
	defer discordClient.Close(context.TODO())

	if err = discordClient.OpenGateway(ctx); err != nil {
		return fmt.Errorf("error starting bot: %w", err)
	}

	logger.Info("Adding commands...")
	registeredCommands, err := registerCommands(discordClient, cmds.ApplicationCommands)
	if err != nil {
		return err
	}

	go func() {
		if err := routes.CreateRouter(pipeline, cfg.DEBUG).Run(); err != nil {
			logger.Error("Router stopped", slog.Any("err", err))
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if RemoveCommands {
		logger.Info("Removing commands...")
		for _, v := range registeredCommands {
			if err := deleteCommand(discordClient, v.ID()); err != nil {
				logger.Error("Cannot delete command", slog.String("name", v.Name()), slog.Any("err", err))
			}
		}
	}
	return nil
}

func registerCommands(client *bot.Client, cmds []discord.ApplicationCommandCreate) ([]discord.ApplicationCommand, error) {
	if GuildID == "" {
		return client.Rest.SetGlobalCommands(client.ApplicationID, cmds)
	}
	guildID, err := snowflake.Parse(GuildID)
	if err != nil {
		return nil, fmt.Errorf("invalid guild %q: %w", GuildID, err)
	}
	return client.Rest.SetGuildCommands(client.ApplicationID, guildID, cmds)
}

func deleteCommand(client *bot.Client, commandID snowflake.ID) error {
	if GuildID == "" {
		return client.Rest.DeleteGlobalCommand(client.ApplicationID, commandID)
	}
	return client.Rest.DeleteGuildCommand(client.ApplicationID, snowflake.MustParse(GuildID), commandID)
}
