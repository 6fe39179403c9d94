package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Source provides weekly-menu records
type Source interface {
	Fetch(ctx context.Context) ([]WeeklyMenu, error)
}

// FileSource implements Source from a local JSON snapshot. Used as the
// fallback when the remote feed is unreachable, so the display can keep
// showing the last menus it saw.
type FileSource struct {
	filePath string
	logger   *zap.Logger
}

// NewFileSource creates a FileSource reading the given snapshot file
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

// Fetch reads menu records from the snapshot file
func (fs *FileSource) Fetch(ctx context.Context) ([]WeeklyMenu, error) {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu snapshot: %w", err)
	}

	menus, err := DecodeMenus(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode menu snapshot: %w", err)
	}

	fs.logger.Debug("Menu snapshot loaded",
		zap.String("file", fs.filePath),
		zap.Int("records", len(menus)))

	return menus, nil
}

// Save writes menu records to the snapshot file
func (fs *FileSource) Save(menus []WeeklyMenu) error {
	data, err := json.MarshalIndent(menus, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal menu snapshot: %w", err)
	}

	if err := os.WriteFile(fs.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write menu snapshot: %w", err)
	}

	return nil
}

// CompositeSource implements Source with fallback strategy
// Primary: Client (remote feed)
// Fallback: FileSource (last saved snapshot)
// A successful primary fetch refreshes the snapshot.
type CompositeSource struct {
	primary  Source
	fallback *FileSource
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary Source, fallback *FileSource, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Fetch tries the remote feed first and falls back to the snapshot
func (cs *CompositeSource) Fetch(ctx context.Context) ([]WeeklyMenu, error) {
	menus, err := cs.primary.Fetch(ctx)
	if err == nil {
		if saveErr := cs.fallback.Save(menus); saveErr != nil {
			cs.logger.Warn("Failed to refresh menu snapshot", zap.Error(saveErr))
		}
		return menus, nil
	}

	cs.logger.Warn("Remote menu feed failed, falling back to snapshot",
		zap.Error(err))

	menus, fallbackErr := cs.fallback.Fetch(ctx)
	if fallbackErr != nil {
		return nil, fmt.Errorf("feed and snapshot both failed: feed=%w, snapshot=%v", err, fallbackErr)
	}

	return menus, nil
}
