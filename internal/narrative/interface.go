package narrative

import (
	"context"

	"github.com/mauv0809/pickup-tracker/internal/club"
)

// Generator turns a finished match into a short written report.
// Generate never fails the caller: when the text-generation service is
// unconfigured or errors, it returns the Placeholder string instead.
type Generator interface {
	Generate(ctx context.Context, match *club.Match, players []club.Player) string
}
