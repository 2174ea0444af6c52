package notifier

import (
	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished matches
	SendResultNotification(match *club.Match, players []club.Player, dryRun bool) error
	// For slash commands
	SendLeaderboard(board []stats.PlayerStats, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(board []stats.PlayerStats) (any, error)
}
