package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/match"
	"github.com/mauv0809/pickup-tracker/internal/stats"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// PlayersHandler serves the full player roster CRUD on a single route,
// dispatching on the HTTP method.
func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.listPlayers(w)
		case http.MethodPost:
			s.createPlayer(w, r)
		case http.MethodPut:
			s.updatePlayer(w, r)
		case http.MethodDelete:
			s.deletePlayer(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) listPlayers(w http.ResponseWriter) {
	players, err := s.Store.ListPlayers()
	if err != nil {
		http.Error(w, "Failed to get players", http.StatusInternalServerError)
		log.Error("Failed to get players from store", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(players); err != nil {
		log.Error("Failed to encode players to JSON", "error", err)
	}
}

func validatePlayer(p club.Player) error {
	if p.Name == "" {
		return errors.New("player name is required")
	}
	if !club.ValidPosition(p.Position) {
		return fmt.Errorf("unknown position %q", p.Position)
	}
	if len(p.Photo) > club.MaxPhotoBytes {
		return fmt.Errorf("photo exceeds %d bytes", club.MaxPhotoBytes)
	}
	return nil
}

func (s *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var player club.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validatePlayer(player); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if err := s.Store.AddPlayer(player); err != nil {
		http.Error(w, "Failed to save player", http.StatusInternalServerError)
		log.Error("Failed to save player", "error", err)
		return
	}
	log.Info("Player created", "playerID", player.ID, "name", player.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(player); err != nil {
		log.Error("Failed to encode player to JSON", "error", err)
	}
}

func (s *Server) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var player club.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if player.ID == "" {
		http.Error(w, "Player ID is required", http.StatusBadRequest)
		return
	}
	if err := validatePlayer(player); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Store.UpdatePlayer(player); err != nil {
		http.Error(w, "Failed to update player", http.StatusInternalServerError)
		log.Error("Failed to update player", "error", err, "playerID", player.ID)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(player); err != nil {
		log.Error("Failed to encode player to JSON", "error", err)
	}
}

func (s *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Player ID is required", http.StatusBadRequest)
		return
	}
	// Past match events keep referencing the deleted ID; display layers fall
	// back to a placeholder name instead of cascading deletes.
	if err := s.Store.DeletePlayer(id); err != nil {
		http.Error(w, "Failed to delete player", http.StatusInternalServerError)
		log.Error("Failed to delete player", "error", err, "playerID", id)
		return
	}
	log.Info("Player deleted", "playerID", id)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Deleted player %s", id)
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.ListMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(matches); err != nil {
			log.Error("Failed to encode matches to JSON", "error", err)
		}
	}
}

func (s *Server) ActiveMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := s.Controller.Active()
		if active == nil {
			http.Error(w, "No active match", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(active); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

func (s *Server) StartMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var params match.StartParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		started, err := s.Controller.Start(params)
		if err != nil {
			switch {
			case errors.Is(err, match.ErrMatchInProgress):
				http.Error(w, "A match is already in progress", http.StatusConflict)
			case errors.Is(err, match.ErrEmptyRoster):
				http.Error(w, "Both teams need at least one player", http.StatusBadRequest)
			default:
				http.Error(w, "Failed to start match", http.StatusInternalServerError)
				log.Error("Failed to start match", "error", err)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(started); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

func (s *Server) RecordEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var params match.EventParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		updated, err := s.Controller.RecordEvent(params)
		if err != nil {
			switch {
			case errors.Is(err, match.ErrNoActiveMatch):
				http.Error(w, "No active match", http.StatusNotFound)
			case errors.Is(err, match.ErrInvalidEvent):
				http.Error(w, "Invalid event", http.StatusBadRequest)
			default:
				http.Error(w, "Failed to record event", http.StatusInternalServerError)
				log.Error("Failed to record event", "error", err)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

func (s *Server) FinishMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		finished, err := s.Controller.Finish(r.Context())
		if err != nil {
			if errors.Is(err, match.ErrNoActiveMatch) {
				http.Error(w, "No active match", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to finish match", http.StatusInternalServerError)
			log.Error("Failed to finish match", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(finished); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

// LeaderboardHandler returns a handler that serves the aggregated player
// statistics leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.leaderboard()
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(board); err != nil {
			log.Error("Failed to encode leaderboard to JSON", "error", err)
		}
	}
}

func (s *Server) leaderboard() ([]stats.PlayerStats, error) {
	players, err := s.Store.ListPlayers()
	if err != nil {
		return nil, err
	}
	matches, err := s.Store.ListMatches()
	if err != nil {
		return nil, err
	}
	return stats.Aggregate(players, matches), nil
}

// PostLeaderboardHandler pushes the current leaderboard to the club channel.
// Meant to be hit by a scheduler or the CLI rather than end users.
func (s *Server) PostLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		board, err := s.leaderboard()
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendLeaderboard(board, isDryRun); err != nil {
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			log.Error("Failed to send leaderboard", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyResultHandler is the pub/sub push endpoint for finished matches.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify result message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		result := club.Match{}
		if err := s.pubsub.ProcessMessage(rawData, &result); err != nil {
			log.Error("Failed to decode match payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		players, err := s.Store.ListPlayers()
		if err != nil {
			log.Error("Failed to get players for notification, continuing without names", "error", err)
			players = nil
		}
		if err := s.Notifier.SendResultNotification(&result, players, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err, "matchID", result.ID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.leaderboard()
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(board)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
