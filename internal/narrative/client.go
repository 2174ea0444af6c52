package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/metrics"
)

const defaultBaseURL = "https://api.narrativo.dev"

// Client calls an external text-generation API to write match reports.
type Client struct {
	httpClient *http.Client
	apiKey     string
	BaseURL    string
	metrics    metrics.Metrics
}

var _ Generator = (*Client)(nil)

// NewClient creates a new narrative client. An empty apiKey disables the
// client: Generate returns the placeholder without making any call.
func NewClient(apiKey, baseURL string, metrics metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		BaseURL:    baseURL,
		metrics:    metrics,
	}
}

// Generate builds the prompt and relays it to the text-generation API.
// One call, one failure path: any error degrades to the placeholder.
func (c *Client) Generate(ctx context.Context, match *club.Match, players []club.Player) string {
	if c.apiKey == "" {
		log.Info("Narrative API key not configured, skipping generation", "matchID", match.ID)
		return Placeholder
	}

	prompt := BuildPrompt(match, players)
	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.metrics.IncNarrativeFailed()
		log.Error("Failed to generate match narrative", "error", err, "matchID", match.ID)
		return Placeholder
	}

	c.metrics.IncNarrativeGenerated()
	log.Info("Generated match narrative", "matchID", match.ID, "chars", len(text))
	return text
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generate", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if decoded.Text == "" {
		return "", fmt.Errorf("empty narrative in response")
	}
	return decoded.Text, nil
}

// BuildPrompt renders the match into a deterministic prompt: team names,
// final score, the scorers, and every event in chronological order. Events
// are stored newest first, so they are walked backwards here.
func BuildPrompt(match *club.Match, players []club.Player) string {
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	resolve := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return unknownPlayerName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, lively markdown match report for an amateur pickup football match.\n")
	fmt.Fprintf(&b, "%s vs %s, final score %d-%d.\n", match.HomeTeam, match.AwayTeam, match.HomeScore, match.AwayScore)

	var scorers []string
	for i := len(match.Events) - 1; i >= 0; i-- {
		if match.Events[i].Type == club.EventGoal {
			scorers = append(scorers, resolve(match.Events[i].PlayerID))
		}
	}
	if len(scorers) > 0 {
		fmt.Fprintf(&b, "Scorers: %s.\n", strings.Join(scorers, ", "))
	}

	if len(match.Events) > 0 {
		b.WriteString("Events:\n")
		for i := len(match.Events) - 1; i >= 0; i-- {
			event := match.Events[i]
			fmt.Fprintf(&b, "- %d' %s: %s", event.Minute, eventLabel(event.Type), resolve(event.PlayerID))
			if event.Type == club.EventGoal && event.AssistPlayerID != "" {
				fmt.Fprintf(&b, " (assist: %s)", resolve(event.AssistPlayerID))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func eventLabel(t club.EventType) string {
	switch t {
	case club.EventGoal:
		return "Goal"
	case club.EventAssist:
		return "Assist"
	case club.EventYellowCard:
		return "Yellow card"
	case club.EventRedCard:
		return "Red card"
	case club.EventSave:
		return "Save"
	case club.EventSubstitution:
		return "Substitution"
	}
	return string(t)
}
