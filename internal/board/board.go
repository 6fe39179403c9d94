package board

import (
	"context"
	"time"

	"github.com/ressharu/menu-bot/internal/menu"
	"go.uber.org/zap"
)

// Board is the displayable result of one fetch+classify cycle: the menus
// for the current ISO week and the menus for every other week. It replaces
// any notion of shared mutable display state; callers get a fresh value per
// refresh.
type Board struct {
	CurrentWeek []menu.WeeklyMenu `json:"current_week"`
	OtherWeek   []menu.WeeklyMenu `json:"other_week"`
	FetchedAt   time.Time         `json:"fetched_at"`
}

// Empty reports whether the board has no menus at all
func (b Board) Empty() bool {
	return len(b.CurrentWeek) == 0 && len(b.OtherWeek) == 0
}

// Manager runs the fetch → classify → persist cycle
type Manager struct {
	source     menu.Source
	classifier *menu.Classifier
	state      *StateManager
	logger     *zap.Logger
}

// NewManager creates a board manager
func NewManager(source menu.Source, classifier *menu.Classifier, state *StateManager, logger *zap.Logger) *Manager {
	return &Manager{
		source:     source,
		classifier: classifier,
		state:      state,
		logger:     logger,
	}
}

// Refresh fetches the feed, classifies the records against today and
// persists the result. On failure the last known board is returned instead:
// fetch problems never surface past this boundary, the display just keeps
// its previous (possibly empty) content.
func (m *Manager) Refresh(ctx context.Context, today time.Time) Board {
	menus, err := m.source.Fetch(ctx)
	if err != nil {
		m.logger.Error("Menu refresh failed, keeping previous board",
			zap.Error(err))
		return m.LastKnown()
	}

	currentWeek, otherWeek := m.classifier.Classify(menus, today)

	board := Board{
		CurrentWeek: currentWeek,
		OtherWeek:   otherWeek,
		FetchedAt:   time.Now(),
	}

	if err := m.state.Save(board, today); err != nil {
		m.logger.Warn("Failed to persist board", zap.Error(err))
	}

	m.logger.Info("Board refreshed",
		zap.Int("fetched_records", len(menus)),
		zap.Int("current_week", len(currentWeek)),
		zap.Int("other_week", len(otherWeek)))

	return board
}

// LastKnown returns the last persisted board, or an empty one
func (m *Manager) LastKnown() Board {
	if saved, ok := m.state.Last(); ok {
		return saved
	}
	return Board{}
}

// Classifier exposes the classifier for rendering weekday labels
func (m *Manager) Classifier() *menu.Classifier {
	return m.classifier
}
