// Package storetest provides a testify mock of store.Store.
package storetest

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

type MockStore struct {
	mock.Mock
}

var _ store.Store = (*MockStore)(nil)

func (m *MockStore) CreateProject(ctx context.Context, p *store.Project, md *store.ProjectMetadata) error {
	args := m.Called(ctx, p, md)
	return args.Error(0)
}

func (m *MockStore) GetProject(ctx context.Context, id uuid.UUID) (*store.Project, *store.ProjectMetadata, error) {
	args := m.Called(ctx, id)
	var p *store.Project
	var md *store.ProjectMetadata
	if v := args.Get(0); v != nil {
		p = v.(*store.Project)
	}
	if v := args.Get(1); v != nil {
		md = v.(*store.ProjectMetadata)
	}
	return p, md, args.Error(2)
}

func (m *MockStore) ListProjects(ctx context.Context, filter store.ProjectFilter) ([]*store.Project, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*store.Project), args.Int(1), args.Error(2)
}

func (m *MockStore) UpdateProjectStatus(ctx context.Context, id uuid.UUID, status store.ProjectStatus) (*store.Project, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Project), args.Error(1)
}

func (m *MockStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) SaveScore(ctx context.Context, w *store.ScoreWrite) (*store.ScoreRecord, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ScoreRecord), args.Error(1)
}

func (m *MockStore) LatestScore(ctx context.Context, projectID uuid.UUID) (*store.ScoreRecord, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ScoreRecord), args.Error(1)
}

func (m *MockStore) ScoreHistory(ctx context.Context, projectID uuid.UUID, limit int) ([]*store.ScoreRecord, error) {
	args := m.Called(ctx, projectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.ScoreRecord), args.Error(1)
}

func (m *MockStore) GetLaunchConfig(ctx context.Context, projectID uuid.UUID) (*store.LaunchConfigRecord, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.LaunchConfigRecord), args.Error(1)
}

func (m *MockStore) GetAnalytics(ctx context.Context) (*store.Analytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Analytics), args.Error(1)
}

func (m *MockStore) GetFlagStats(ctx context.Context) (*store.FlagStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FlagStats), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return nil
}
