package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	Seed         string         `json:"seed,omitempty"`
	Victory      bool           `json:"victory"`
	DeepestLevel int            `json:"deepest_level"`
	Turns        int            `json:"turns"`
	Kills        map[string]int `json:"kills"` // being name → kill count
	DamageDealt  int            `json:"damage_dealt"`
	DamageTaken  int            `json:"damage_taken"`
	CauseOfDeath string         `json:"cause_of_death,omitempty"` // last thing that hurt the player
	EndedAt      time.Time      `json:"ended_at"`
}

func newRunLog(seed string) RunLog {
	return RunLog{Seed: seed, Kills: make(map[string]int)}
}

// TotalKills sums the kill counts.
func (r RunLog) TotalKills() int {
	n := 0
	for _, c := range r.Kills {
		n += c
	}
	return n
}

// SaveRunLog appends the completed run as a single JSON line to runs.jsonl.
func SaveRunLog(log RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if log.EndedAt.IsZero() {
		log.EndedAt = time.Now().UTC()
	}
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// runLogDir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/glyphcrawl,
// defaulting to ~/.local/share/glyphcrawl.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "glyphcrawl"), nil
}
