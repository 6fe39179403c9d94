package board

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ressharu/menu-bot/pkg/dateutil"
	"go.uber.org/zap"
)

// SavedBoard is the on-disk form of the last good board, stamped with the
// ISO week it was produced in
type SavedBoard struct {
	Year      int    `json:"year"`
	Week      int    `json:"week"`
	CreatedAt string `json:"created_at"`
	Board     Board  `json:"board"`
}

// StateManager persists the last good board to a JSON file
type StateManager struct {
	stateFile string
	saved     *SavedBoard
	logger    *zap.Logger
}

// NewStateManager creates a new state manager
func NewStateManager(stateFile string, logger *zap.Logger) *StateManager {
	return &StateManager{
		stateFile: stateFile,
		logger:    logger,
	}
}

// Load loads the saved board from file. A missing file is not an error:
// there simply is no previous board yet.
func (sm *StateManager) Load() error {
	data, err := os.ReadFile(sm.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			sm.saved = nil
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var saved SavedBoard
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	sm.saved = &saved
	sm.logger.Info("Saved board loaded",
		zap.Int("year", saved.Year),
		zap.Int("week", saved.Week))

	return nil
}

// Save persists the board, stamped with today's ISO week
func (sm *StateManager) Save(board Board, today time.Time) error {
	year, week := dateutil.GetWeekNumber(today)

	saved := &SavedBoard{
		Year:      year,
		Week:      week,
		CreatedAt: time.Now().Format(time.RFC3339),
		Board:     board,
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(sm.stateFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	sm.saved = saved
	sm.logger.Info("Board saved",
		zap.Int("year", year),
		zap.Int("week", week))

	return nil
}

// Last returns the last saved board, if any
func (sm *StateManager) Last() (Board, bool) {
	if sm.saved == nil {
		return Board{}, false
	}
	return sm.saved.Board, true
}

// Week returns the ISO week stamp of the saved board, if any
func (sm *StateManager) Week() (year int, week int, ok bool) {
	if sm.saved == nil {
		return 0, 0, false
	}
	return sm.saved.Year, sm.saved.Week, true
}
