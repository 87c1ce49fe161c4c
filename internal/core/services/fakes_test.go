package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}

type MockWindowRepo struct {
	mock.Mock
}

func (m *MockWindowRepo) List(ctx context.Context, warehouseID, seasonID string) ([]*domain.Window, error) {
	args := m.Called(ctx, warehouseID, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Window), args.Error(1)
}

func (m *MockWindowRepo) GetOpen(ctx context.Context, warehouseID, seasonID string) (*domain.Window, error) {
	args := m.Called(ctx, warehouseID, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Window), args.Error(1)
}

func (m *MockWindowRepo) GetByID(ctx context.Context, id string) (*domain.Window, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Window), args.Error(1)
}

func (m *MockWindowRepo) Create(ctx context.Context, warehouseID, seasonID string, startDate time.Time) (*domain.Window, error) {
	args := m.Called(ctx, warehouseID, seasonID, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Window), args.Error(1)
}

func (m *MockWindowRepo) Close(ctx context.Context, windowID string, endDate time.Time) (*domain.Window, error) {
	args := m.Called(ctx, windowID, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Window), args.Error(1)
}

func (m *MockWindowRepo) FinalizeSeason(ctx context.Context, seasonID string, asOf, at time.Time) ([]*domain.Window, error) {
	args := m.Called(ctx, seasonID, asOf, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Window), args.Error(1)
}

type MockSeasonRepo struct {
	mock.Mock
}

func (m *MockSeasonRepo) IsFinalized(ctx context.Context, seasonID string) (bool, error) {
	args := m.Called(ctx, seasonID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeasonRepo) Get(ctx context.Context, seasonID string) (*domain.Season, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Season), args.Error(1)
}

func (m *MockSeasonRepo) Finalize(ctx context.Context, seasonID string, at time.Time) error {
	return m.Called(ctx, seasonID, at).Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
}

func (p *recordingPublisher) Publish(e domain.LifecycleEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
	decisions   map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{transitions: map[string]int{}, decisions: map[string]int{}}
}

func (m *recordingMetrics) RecordTransition(transition, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[transition+"/"+outcome]++
}

func (m *recordingMetrics) RecordDecision(d domain.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[d.ReasonText()]++
}
