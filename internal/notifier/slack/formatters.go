package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/stats"
	"github.com/slack-go/slack"
)

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatResultNotification(match *club.Match, players []club.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "⚽ Full time! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Score line
	scoreText := fmt.Sprintf("%s %d - %d %s", match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam)
	if date, err := time.Parse(time.RFC3339, match.Date); err == nil {
		scoreText = fmt.Sprintf("%s\n%s", scoreText, date.Format("Monday 02 Jan, 15:04"))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	// Scorers
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	var scorers []string
	for i := len(match.Events) - 1; i >= 0; i-- {
		event := match.Events[i]
		if event.Type != club.EventGoal {
			continue
		}
		name, ok := names[event.PlayerID]
		if !ok {
			name = "Unknown player"
		}
		scorers = append(scorers, fmt.Sprintf("• %s (%d')", name, event.Minute))
	}
	if len(scorers) > 0 {
		scorersText := "Scorers:\n" + strings.Join(scorers, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scorersText, true, false), nil, nil))
	}

	// Narrative
	if match.Narrative != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", match.Narrative, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(board []stats.PlayerStats) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(board) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, row := range board {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Goals: %d | Assists: %d | G+A: %d | Matches: %d",
			rank,
			medal,
			row.PlayerName,
			row.Goals,
			row.Assists,
			row.GoalContributions,
			row.MatchesPlayed,
		)
		if row.Position == club.PositionGoalkeeper {
			playerText = fmt.Sprintf("%s | Saves: %d", playerText, row.Saves)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
