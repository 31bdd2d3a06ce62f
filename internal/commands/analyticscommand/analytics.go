package analyticscommand

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/stollenaar/analyticsbot/internal/util"
	"github.com/stollenaar/analyticsbot/internal/util/charts"
)

const (
	websiteButtonID  = "analytics_website"
	durationSelectID = "analytics_duration"

	embedColor = 0x3498db
	// Discord allows five buttons per action row.
	buttonsPerRow = 5
)

var durationOptions = []discord.StringSelectMenuOption{
	{Label: "1 Day", Value: "1"},
	{Label: "7 Days", Value: "7"},
	{Label: "28 Days", Value: "28"},
	{Label: "1 Month", Value: "1m"},
	{Label: "3 Months", Value: "3m"},
}

type AnalyticsCommand struct {
	Name        string
	Description string

	pipeline *Pipeline
	config   *util.Config
}

func New(pipeline *Pipeline, config *util.Config) AnalyticsCommand {
	return AnalyticsCommand{
		Name:        "analytics",
		Description: "View analytics data with interactive menus",
		pipeline:    pipeline,
		config:      config,
	}
}

func (a AnalyticsCommand) CreateCommandArguments() []discord.ApplicationCommandOption {
	return []discord.ApplicationCommandOption{}
}

// Handler opens the dashboard with one button per website.
func (a AnalyticsCommand) Handler(event *events.ApplicationCommandInteractionCreate) {
	err := event.CreateMessage(dashboardMessage(a.pipeline.Registry.Names()))
	if err != nil {
		slog.Error("Error sending the dashboard:", slog.Any("err", err))
	}
}

// ComponentHandler handles the website buttons and the duration select.
// The website rides along in the custom ID so no state is kept between events.
func (a AnalyticsCommand) ComponentHandler(event *events.ComponentInteractionCreate) {
	action, website := parseCustomID(event.Data.CustomID())

	switch action {
	case websiteButtonID:
		a.websiteSelected(event, website)
	case durationSelectID:
		a.durationSelected(event, website, event.StringSelectMenuInteractionData().Values)
	default:
		slog.Warn("Unknown analytics component", slog.String("customID", event.Data.CustomID()))
	}
}

func (a AnalyticsCommand) websiteSelected(event *events.ComponentInteractionCreate, website string) {
	flow := a.pipeline.NewFlow()
	message := durationMessage(website)
	if err := flow.SelectWebsite(website); err != nil {
		message = discord.MessageCreate{
			Content: errorText(err),
			Flags:   discord.MessageFlagEphemeral,
		}
	}
	if err := event.CreateMessage(message); err != nil {
		slog.Error("Error sending the duration selection:", slog.Any("err", err))
	}
}

func (a AnalyticsCommand) durationSelected(event *events.ComponentInteractionCreate, website string, values []string) {
	err := event.DeferCreateMessage(a.config.SetEphemeral() == discord.MessageFlagEphemeral)
	if err != nil {
		slog.Error("Error deferring: ", slog.Any("err", err))
		return
	}

	var duration string
	if len(values) > 0 {
		duration = values[0]
	}
	flow := a.pipeline.Run(context.Background(), website, duration)

	var update discord.MessageUpdate
	if flow.State == Completed {
		update = resultUpdate(flow.Result)
	} else {
		e := errorText(flow.Err)
		update = discord.MessageUpdate{Content: &e}
	}

	_, err = event.Client().Rest.UpdateInteractionResponse(event.ApplicationID(), event.Token(), update)
	if err != nil {
		slog.Error("Error editing the response:", slog.Any("err", err))
	}
}

func dashboardMessage(websites []string) discord.MessageCreate {
	var rows []discord.LayoutComponent
	var buttons []discord.InteractiveComponent
	for i, website := range websites {
		style := discord.ButtonStylePrimary
		if i%2 == 1 {
			style = discord.ButtonStyleSuccess
		}
		buttons = append(buttons, discord.ButtonComponent{
			Label:    website,
			Style:    style,
			CustomID: customID(websiteButtonID, website),
		})
		if len(buttons) == buttonsPerRow || i == len(websites)-1 {
			rows = append(rows, discord.ActionRowComponent{Components: buttons})
			buttons = nil
		}
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{
			{
				Title:       "📊 Analytics Dashboard",
				Description: "Please select a website to view its analytics data.",
				Color:       embedColor,
				Footer:      &discord.EmbedFooter{Text: "Choose a website below:"},
			},
		},
		Components: rows,
		Flags:      discord.MessageFlagEphemeral,
	}
}

func durationMessage(website string) discord.MessageCreate {
	return discord.MessageCreate{
		Content: fmt.Sprintf("✅ **%s selected!** Now choose a duration:", website),
		Components: []discord.LayoutComponent{
			discord.ActionRowComponent{
				Components: []discord.InteractiveComponent{
					discord.StringSelectMenuComponent{
						CustomID:    customID(durationSelectID, website),
						Placeholder: "Select a duration",
						Options:     durationOptions,
					},
				},
			},
		},
		Flags: discord.MessageFlagEphemeral,
	}
}

func resultUpdate(result *Result) discord.MessageUpdate {
	embeds := []discord.Embed{
		{
			Title:       fmt.Sprintf("📊 **%s Analytics Data (%s)**", result.Website, result.Range.Label()),
			Description: fmt.Sprintf("Total Page Views: **%d**", result.Total),
			Color:       embedColor,
			Image:       &discord.EmbedResource{URL: "attachment://" + charts.FileName},
		},
	}
	return discord.MessageUpdate{
		Embeds: &embeds,
		Files: []*discord.File{
			discord.NewFile(charts.FileName, "", bytes.NewReader(result.Image)),
		},
	}
}

func errorText(err error) string {
	return fmt.Sprintf("❌ Error: %s", err)
}

func customID(action, website string) string {
	return action + ";" + website
}

func parseCustomID(id string) (action, website string) {
	action, website, _ = strings.Cut(id, ";")
	return
}
