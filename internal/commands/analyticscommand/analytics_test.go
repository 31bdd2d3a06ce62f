package analyticscommand

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardMessage(t *testing.T) {
	msg := dashboardMessage([]string{"Leaderboard", "GambleAssist"})
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "📊 Analytics Dashboard", msg.Embeds[0].Title)
	assert.Equal(t, discord.MessageFlagEphemeral, msg.Flags)

	require.Len(t, msg.Components, 1)
	row := msg.Components[0].(discord.ActionRowComponent)
	require.Len(t, row.Components, 2)

	first := row.Components[0].(discord.ButtonComponent)
	assert.Equal(t, "Leaderboard", first.Label)
	assert.Equal(t, "analytics_website;Leaderboard", first.CustomID)
	assert.Equal(t, discord.ButtonStylePrimary, first.Style)
	assert.Equal(t, discord.ButtonStyleSuccess, row.Components[1].(discord.ButtonComponent).Style)
}

func TestDashboardMessage_RowsOfFive(t *testing.T) {
	var websites []string
	for i := 0; i < 7; i++ {
		websites = append(websites, fmt.Sprintf("site%d", i))
	}
	msg := dashboardMessage(websites)
	require.Len(t, msg.Components, 2)
	assert.Len(t, msg.Components[0].(discord.ActionRowComponent).Components, 5)
	assert.Len(t, msg.Components[1].(discord.ActionRowComponent).Components, 2)
}

func TestDurationMessage(t *testing.T) {
	msg := durationMessage("Leaderboard")
	assert.Equal(t, "✅ **Leaderboard selected!** Now choose a duration:", msg.Content)

	menu := msg.Components[0].(discord.ActionRowComponent).Components[0].(discord.StringSelectMenuComponent)
	assert.Equal(t, "analytics_duration;Leaderboard", menu.CustomID)

	var values []string
	for _, o := range menu.Options {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"1", "7", "28", "1m", "3m"}, values)

	for _, v := range values {
		_, err := analytics.ParseDuration(v)
		assert.NoError(t, err, v)
	}
}

func TestResultUpdate(t *testing.T) {
	r, err := analytics.ParseDuration("1m")
	require.NoError(t, err)
	update := resultUpdate(&Result{
		Report: analytics.Report{Website: "GambleAssist", Range: r, Total: 25},
		Image:  []byte("png"),
	})

	require.NotNil(t, update.Embeds)
	embed := (*update.Embeds)[0]
	assert.Equal(t, "📊 **GambleAssist Analytics Data (1 month(s))**", embed.Title)
	assert.Equal(t, "Total Page Views: **25**", embed.Description)
	assert.Equal(t, "attachment://analytics_chart.png", embed.Image.URL)

	require.Len(t, update.Files, 1)
	assert.Equal(t, "analytics_chart.png", update.Files[0].Name)
	data, err := io.ReadAll(update.Files[0].Reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestErrorText(t *testing.T) {
	err := analytics.NewError(analytics.UnknownWebsite, "unknown website %q", "Unknown")
	assert.Equal(t, `❌ Error: unknown website "Unknown"`, errorText(err))
	assert.Equal(t, "❌ Error: boom", errorText(errors.New("boom")))
}

func TestParseCustomID(t *testing.T) {
	action, website := parseCustomID(customID(durationSelectID, "Gamble;Assist"))
	assert.Equal(t, durationSelectID, action)
	assert.Equal(t, "Gamble;Assist", website)

	action, website = parseCustomID("garbage")
	assert.Equal(t, "garbage", action)
	assert.Empty(t, website)
}
