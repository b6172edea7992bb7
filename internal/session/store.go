// Package session persists the navigation state across runs: one small
// JSON document holding the active tab, badges and layout, written by a
// bus-fed tracker after a quiet period.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tabdeck/internal/jsonutil"
)

const (
	// StateDirEnv is the env var override for the ~/.tabdeck base (for
	// testing and sandboxed runs).
	StateDirEnv = "TABDECK_STATE_DIR"
	// DefaultStateBase is the default state directory under home.
	DefaultStateBase = ".tabdeck"

	stateFile = "session.json"
)

// State is the persisted navigation snapshot.
type State struct {
	ActiveTab string            `json:"active_tab"`
	Badges    map[string]string `json:"badges,omitempty"`
	Collapsed bool              `json:"collapsed"`
	SavedAt   time.Time         `json:"saved_at"`
}

func (s State) clone() State {
	out := s
	if s.Badges != nil {
		out.Badges = make(map[string]string, len(s.Badges))
		for k, v := range s.Badges {
			out.Badges[k] = v
		}
	}
	return out
}

// Store reads and writes the session file. Layout: <dir>/session.json.
type Store struct {
	dir string
}

// NewStore resolves the state directory: an explicit dir wins, then
// TABDECK_STATE_DIR, then home + DefaultStateBase.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(StateDirEnv)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, DefaultStateBase)
	}
	return &Store{dir: dir}, nil
}

// Path returns the session file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, stateFile)
}

// Load reads the saved state. Missing or corrupt files yield (zero, false);
// restoring is always best-effort.
func (s *Store) Load() (State, bool) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		return State{}, false
	}
	var st State
	if err := jsonutil.UnmarshalWithContext(b, &st, "session state"); err != nil {
		return State{}, false
	}
	return st, true
}

// Save writes the state, creating the directory if needed. SavedAt is
// stamped when the caller left it zero.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir state dir: %w", err)
	}
	if st.SavedAt.IsZero() {
		st.SavedAt = time.Now()
	}
	b, err := jsonutil.MarshalIndentWithContext(st, "marshal session state")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(), b, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
