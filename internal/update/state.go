package update

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// announcedRetention is how long a shown notice is remembered after its
// event started.
const announcedRetention = 24 * time.Hour

type noticeState struct {
	Announced []announcedNotice `json:"announced"`
}

type announcedNotice struct {
	Key      string    `json:"key"`
	StartsAt time.Time `json:"starts_at"`
}

// saveAnnouncedNotices writes the shown notices atomically, dropping the
// ones whose event is long past.
func saveAnnouncedNotices(path string, announced map[string]time.Time, now time.Time) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	state := noticeState{Announced: make([]announcedNotice, 0, len(announced))}
	for key, startsAt := range announced {
		if now.Sub(startsAt) > announcedRetention {
			continue
		}
		state.Announced = append(state.Announced, announcedNotice{Key: key, StartsAt: startsAt})
	}
	sort.Slice(state.Announced, func(i, j int) bool {
		return state.Announced[i].Key < state.Announced[j].Key
	})
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// loadAnnouncedNotices never fails: a missing or unreadable file means no
// notice has been shown yet.
func loadAnnouncedNotices(path string, logger *slog.Logger) map[string]time.Time {
	out := make(map[string]time.Time)
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return out
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("read notice state failed", "op", "notices", "path", trimmed, "err", err)
		}
		return out
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out
	}
	var state noticeState
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Warn("notice state unreadable, starting fresh", "op", "notices", "path", trimmed, "err", err)
		return out
	}
	for _, a := range state.Announced {
		if a.Key = strings.TrimSpace(a.Key); a.Key != "" {
			out[a.Key] = a.StartsAt
		}
	}
	return out
}
