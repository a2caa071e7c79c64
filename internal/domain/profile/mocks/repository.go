// Package mocks holds testify mocks of the profile ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/profile-service/internal/domain/profile"
	"github.com/khoahotran/profile-service/pkg/schema"
)

// Repository is a mock implementation of profile.Repository.
type Repository struct {
	mock.Mock
}

var _ profile.Repository = (*Repository)(nil)

func (m *Repository) Create(ctx context.Context, p *profile.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *Repository) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *Repository) FindByEmail(ctx context.Context, email string, excludeID *string) (*profile.Profile, error) {
	args := m.Called(ctx, email, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *Repository) UpdateByID(ctx context.Context, id string, fields schema.Document) (*profile.Profile, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *Repository) AppendProject(ctx context.Context, id string, entry profile.Project) error {
	args := m.Called(ctx, id, entry)
	return args.Error(0)
}

func (m *Repository) FindProjects(ctx context.Context, id string) ([]profile.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]profile.Project), args.Error(1)
}

func (m *Repository) FindSkills(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *Repository) FindBySkillsAny(ctx context.Context, skills []string, page, limit int) ([]*profile.Profile, error) {
	args := m.Called(ctx, skills, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Profile), args.Error(1)
}

func (m *Repository) CountBySkillsAny(ctx context.Context, skills []string) (int64, error) {
	args := m.Called(ctx, skills)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Repository) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Profile), args.Error(1)
}

func (m *Repository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// EventPublisher is a mock of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishProfileEvent(ctx context.Context, event profile.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// ProfileCache is a mock of service.ProfileCache.
type ProfileCache struct {
	mock.Mock
}

func (m *ProfileCache) Evict(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}
