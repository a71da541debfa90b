package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultMaxDimension = 100
)

var (
	ErrMissingRepo   = errors.New("maze service requires a layout repository")
	ErrMissingLogger = errors.New("maze service requires a logger")
)

var (
	defaultArena = maze.ArenaConfig{UnitWidth: 40, UnitHeight: 40, WallThickness: 5}
)

// Config holds the dependencies and settings of a MazeService.
type Config struct {
	Repo         i.LayoutRepo
	Cache        i.LayoutCache // Optional; nil disables caching and the generation lock
	Logger       i.Logger
	MaxDimension int
	Arena        maze.ArenaConfig
	Clock        func() time.Time
}

// MazeService generates mazes, stores them and serves them back.
type MazeService struct {
	repo         i.LayoutRepo
	cache        i.LayoutCache
	logger       i.Logger
	maxDimension int
	arena        maze.ArenaConfig
	now          func() time.Time
	inflight     singleflight.Group
}

var _ i.MazeService = &MazeService{}

// NewMazeService validates c and fills unset settings with defaults.
func NewMazeService(c *Config) (*MazeService, error) {
	if c.Repo == nil {
		return nil, ErrMissingRepo
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}

	ms := &MazeService{
		repo:         c.Repo,
		cache:        c.Cache,
		logger:       c.Logger,
		maxDimension: c.MaxDimension,
		arena:        c.Arena,
		now:          c.Clock,
	}

	if ms.maxDimension <= 0 {
		ms.maxDimension = defaultMaxDimension
	}
	if ms.arena == (maze.ArenaConfig{}) {
		ms.arena = defaultArena
	}
	if ms.now == nil {
		ms.now = time.Now
	}

	return ms, nil
}

// Generate returns the maze for rows x columns and seed. The same request
// always yields the same stored record; a nil seed picks a fresh one.
func (ms *MazeService) Generate(ctx context.Context, rows, columns int, seed *int64) (*domain.MazeRecord, error) {
	if rows < 1 || columns < 1 {
		return nil, maze.ErrInvalidDimension
	}
	if max(rows, columns) > ms.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d, maximum %d", domain.ErrDimensionTooLarge, rows, columns, ms.maxDimension)
	}

	s := ms.now().UnixNano()
	if seed != nil {
		s = *seed
	}

	// Concurrent requests for one seed share a single generation in this
	// process; the cache lock extends that across processes.
	key := fmt.Sprintf("%dx%d:%d", rows, columns, s)
	v, err, _ := ms.inflight.Do(key, func() (interface{}, error) {
		var record *domain.MazeRecord
		generate := func() error {
			var err error
			record, err = ms.generate(ctx, rows, columns, s)
			return err
		}

		var err error
		if ms.cache != nil {
			err = ms.cache.WithSeedLock(ctx, rows, columns, s, generate)
		} else {
			err = generate()
		}
		return record, err
	})
	if err != nil {
		ms.logger.Error(fmt.Sprintf("generating %dx%d maze with seed %d: %s", rows, columns, s, err))
		return nil, err
	}

	record := v.(*domain.MazeRecord)
	ms.cacheRecord(ctx, record)
	return record, nil
}

// generate returns the stored maze for the seed or builds and saves a new
// one. Losing a save race to another writer yields the winner's record.
func (ms *MazeService) generate(ctx context.Context, rows, columns int, seed int64) (*domain.MazeRecord, error) {
	existing, err := ms.repo.BySeed(ctx, rows, columns, seed)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrLayoutNotFound) {
		return nil, err
	}

	layout, err := maze.Generate(rows, columns, maze.NewSeededSource(seed))
	if err != nil {
		return nil, err
	}

	record := domain.NewMazeRecord(uuid.New(), seed, layout, ms.now())
	if err := ms.repo.Save(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateLayout) {
			return ms.repo.BySeed(ctx, rows, columns, seed)
		}
		return nil, err
	}
	ms.logger.Info(fmt.Sprintf("generated %dx%d maze %s with seed %d", rows, columns, record.ID, seed))
	return record, nil
}

// ByID retrieves a stored maze, consulting the cache first.
func (ms *MazeService) ByID(ctx context.Context, id uuid.UUID) (*domain.MazeRecord, error) {
	if ms.cache != nil {
		record, err := ms.cache.Get(ctx, id)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, domain.ErrLayoutNotFound) {
			ms.logger.Warning(fmt.Sprintf("reading maze %s from cache: %s", id, err))
		}
	}

	record, err := ms.repo.ByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrLayoutNotFound) {
			ms.logger.Error(fmt.Sprintf("loading maze %s: %s", id, err))
		}
		return nil, err
	}

	ms.cacheRecord(ctx, record)
	return record, nil
}

// Arena returns the wall geometry of a stored maze.
func (ms *MazeService) Arena(ctx context.Context, id uuid.UUID) (*maze.Arena, error) {
	layout, err := ms.layout(ctx, id)
	if err != nil {
		return nil, err
	}
	return maze.BuildArena(layout, ms.arena)
}

// Solve returns the path from the top left to the bottom right cell of a
// stored maze, where the ball starts and the goal sits.
func (ms *MazeService) Solve(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	layout, err := ms.layout(ctx, id)
	if err != nil {
		return nil, err
	}

	goal := maze.CellPosition{Row: layout.Rows() - 1, Col: layout.Columns() - 1}
	return maze.Solve(layout, maze.CellPosition{}, goal)
}

func (ms *MazeService) layout(ctx context.Context, id uuid.UUID) (*maze.Layout, error) {
	record, err := ms.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	layout, err := record.Layout()
	if err != nil {
		ms.logger.Error(fmt.Sprintf("stored maze %s is malformed: %s", id, err))
		return nil, err
	}
	return layout, nil
}

// cacheRecord stores record in the cache if one is configured. Failures
// only cost a future cache miss.
func (ms *MazeService) cacheRecord(ctx context.Context, record *domain.MazeRecord) {
	if ms.cache == nil {
		return
	}
	if err := ms.cache.Set(ctx, record); err != nil {
		ms.logger.Warning(fmt.Sprintf("caching maze %s: %s", record.ID, err))
	}
}
