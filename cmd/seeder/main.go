package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/pickup-tracker/internal/club"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// Create 4 dummy players to use in matches
	dummyPlayers := []club.Player{
		{ID: "player-1", Name: "Seeder Player A", Position: club.PositionGoalkeeper},
		{ID: "player-2", Name: "Seeder Player B", Position: club.PositionDefender},
		{ID: "player-3", Name: "Seeder Player C", Position: club.PositionMidfielder},
		{ID: "player-4", Name: "Seeder Player D", Position: club.PositionForward},
	}

	for _, p := range dummyPlayers {
		blob, err := json.Marshal(p)
		if err != nil {
			log.Fatalf("Failed to marshal dummy player %s: %s", p.Name, err)
		}
		_, err = db.Exec("INSERT OR IGNORE INTO players (id, data) VALUES (?, ?)", p.ID, string(blob))
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*4) // 4 columns per match

	for i := 0; i < numMatches; i++ {
		matchDate := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour).UTC().Format(time.RFC3339)
		m := club.Match{
			ID:            uuid.NewString(),
			HomeTeam:      "Seeded Home",
			AwayTeam:      "Seeded Away",
			HomePlayerIDs: []string{dummyPlayers[0].ID, dummyPlayers[1].ID},
			AwayPlayerIDs: []string{dummyPlayers[2].ID, dummyPlayers[3].ID},
			HomeScore:     rand.Intn(6),
			AwayScore:     rand.Intn(6),
			Date:          matchDate,
			Finished:      true,
			Events:        []club.MatchEvent{},
		}
		blob, err := json.Marshal(&m)
		if err != nil {
			log.Fatalf("Failed to marshal dummy match: %s", err)
		}

		valueStrings = append(valueStrings, "(?, ?, ?, ?)")
		valueArgs = append(valueArgs, m.ID, m.Date, 1, string(blob))

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, match_date, finished, data)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*4)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}
