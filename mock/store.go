package mock

import (
	"context"

	"github.com/musictechlab/ddexmap"
)

// Compile-time interface verification.
var (
	_ ddexmap.MapStore   = (*MapStore)(nil)
	_ ddexmap.RunService = (*RunService)(nil)
)

// MapStore is a mock implementation of ddexmap.MapStore.
type MapStore struct {
	LoadFn func(ctx context.Context, path string) (*ddexmap.TagMap, error)
	SaveFn func(ctx context.Context, path string, m *ddexmap.TagMap) (bool, error)
}

func (s *MapStore) Load(ctx context.Context, path string) (*ddexmap.TagMap, error) {
	return s.LoadFn(ctx, path)
}

func (s *MapStore) Save(ctx context.Context, path string, m *ddexmap.TagMap) (bool, error) {
	return s.SaveFn(ctx, path, m)
}

// RunService is a mock implementation of ddexmap.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *ddexmap.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*ddexmap.Run, error)
	FindRunsFn    func(ctx context.Context, filter ddexmap.RunFilter) ([]*ddexmap.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *ddexmap.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*ddexmap.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter ddexmap.RunFilter) ([]*ddexmap.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
