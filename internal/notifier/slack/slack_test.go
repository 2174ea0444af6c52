package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/metrics"
	"github.com/mauv0809/pickup-tracker/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", errors.New("slack is down")
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)
	require.Error(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatResultNotification(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	match := &club.Match{
		ID:        "m1",
		HomeTeam:  "Red",
		AwayTeam:  "Blue",
		HomeScore: 2,
		AwayScore: 0,
		Date:      "2026-08-20T18:00:00Z",
		Finished:  true,
		Narrative: "_What a match._",
		Events: []club.MatchEvent{
			{Type: club.EventGoal, PlayerID: "p1", Minute: 55},
			{Type: club.EventGoal, PlayerID: "gone", Minute: 10},
		},
	}
	players := []club.Player{{ID: "p1", Name: "Ana", Position: club.PositionForward}}

	msg := notifier.formatResultNotification(match, players)
	require.NotEmpty(t, msg.Blocks.BlockSet)

	// Header, score, scorers and narrative blocks.
	assert.Len(t, msg.Blocks.BlockSet, 4)

	scorersBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, scorersBlock.Text.Text, "Ana (55')")
	assert.Contains(t, scorersBlock.Text.Text, "Unknown player (10')")

	narrativeBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "_What a match._", narrativeBlock.Text.Text)
}

func TestFormatLeaderboard(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("empty board", func(t *testing.T) {
		msg := notifier.formatLeaderboard(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
	})

	t.Run("ranks players", func(t *testing.T) {
		board := []stats.PlayerStats{
			{PlayerName: "Beto", Position: club.PositionForward, Goals: 5, GoalContributions: 5},
			{PlayerName: "Cris", Position: club.PositionGoalkeeper, Saves: 9},
		}
		msg := notifier.formatLeaderboard(board)
		require.Len(t, msg.Blocks.BlockSet, 3)

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, first.Text.Text, "1. 🥇 Beto")
		assert.Contains(t, first.Text.Text, "Goals: 5")

		second, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, second.Text.Text, "Saves: 9")
	})
}
