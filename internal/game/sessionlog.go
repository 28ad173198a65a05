package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"emoji-arpg/internal/item"
)

// SessionLog summarises one play session.
type SessionLog struct {
	Session   string `json:",omitempty"`
	Started   time.Time
	Seconds   float64
	Generated map[string]int // rarity → count
	Equips    int
	Unequips  int
	Drops     int
	Pickups   int
}

func newSessionLog(now time.Time) SessionLog {
	return SessionLog{Started: now, Generated: make(map[string]int)}
}

func (l *SessionLog) generated(it *item.Item) {
	l.Generated[it.Rarity.String()]++
}

func (l *SessionLog) finish(now time.Time) {
	l.Seconds = now.Sub(l.Started).Seconds()
}

// saveSessionLog appends log as a single JSON line to sessions.jsonl in dir,
// or in the default data directory when dir is empty.
func saveSessionLog(dir string, log SessionLog) error {
	if dir == "" {
		var err error
		if dir, err = sessionLogDir(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode session log: %w", err)
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// sessionLogDir returns the directory where session logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/emoji-arpg,
// defaulting to ~/.local/share/emoji-arpg.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "emoji-arpg"), nil
}
