package narrative

// Placeholder is attached to a match when no narrative could be generated.
const Placeholder = "_Match report unavailable._"

// unknownPlayerName is substituted when an event references a player that no
// longer exists. Deleting a player does not cascade into match records, so
// dangling identifiers are expected.
const unknownPlayerName = "Unknown player"

// generateRequest is the body sent to the text-generation API.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

// generateResponse is the body returned by the text-generation API.
type generateResponse struct {
	Text string `json:"text"`
}
