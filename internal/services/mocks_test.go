package services

import (
	"context"
	"sync"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/4oBuko/mission-archive/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// fakeStore runs work without a database; repositories in these tests never
// touch the querier they receive.
type fakeStore struct {
	sessions int
	mu       sync.Mutex
}

func (f *fakeStore) WithSession(ctx context.Context, work func(q repositories.Querier) error) error {
	f.mu.Lock()
	f.sessions++
	f.mu.Unlock()
	return work(nil)
}

type MockMissionRepository struct {
	mock.Mock
}

func (m *MockMissionRepository) Add(ctx context.Context, q repositories.Querier, mission models.Mission) (models.Mission, error) {
	args := m.Called(ctx, q, mission)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetById(ctx context.Context, q repositories.Querier, id int64) (models.Mission, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetAll(ctx context.Context, q repositories.Querier) ([]models.Mission, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetByDateRange(ctx context.Context, q repositories.Querier, start, end models.Date) ([]models.Mission, error) {
	args := m.Called(ctx, q, start, end)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetByCountry(ctx context.Context, q repositories.Querier, countryName string) ([]models.Mission, error) {
	args := m.Called(ctx, q, countryName)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetByTargetIndustry(ctx context.Context, q repositories.Querier, industry string) ([]models.Mission, error) {
	args := m.Called(ctx, q, industry)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetByTargetType(ctx context.Context, q repositories.Querier, targetTypeName string) ([]models.Mission, error) {
	args := m.Called(ctx, q, targetTypeName)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionRepository) UpdateAttackResults(ctx context.Context, q repositories.Querier, mission models.Mission) error {
	args := m.Called(ctx, q, mission)
	return args.Error(0)
}

func (m *MockMissionRepository) Delete(ctx context.Context, q repositories.Querier, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockMissionRepository) MaxId(ctx context.Context, q repositories.Querier) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) Add(ctx context.Context, q repositories.Querier, target models.Target) (models.Target, error) {
	args := m.Called(ctx, q, target)
	return args.Get(0).(models.Target), args.Error(1)
}

func (m *MockTargetRepository) GetById(ctx context.Context, q repositories.Querier, id int64) (models.Target, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(models.Target), args.Error(1)
}

func (m *MockTargetRepository) GetByMissionId(ctx context.Context, q repositories.Querier, missionId int64) ([]models.Target, error) {
	args := m.Called(ctx, q, missionId)
	return args.Get(0).([]models.Target), args.Error(1)
}

// memoryMissionRepository keeps missions in a map and deliberately has no
// locking of its own, so any unsynchronized use shows up under -race.
type memoryMissionRepository struct {
	repositories.MissionRepository
	missions map[int64]models.Mission
	updates  int
}

func newMemoryMissionRepository(missions ...models.Mission) *memoryMissionRepository {
	r := &memoryMissionRepository{missions: map[int64]models.Mission{}}
	for _, m := range missions {
		r.missions[m.Id] = m
	}
	return r
}

func (r *memoryMissionRepository) MaxId(ctx context.Context, q repositories.Querier) (int64, error) {
	var maxId int64
	for id := range r.missions {
		if id > maxId {
			maxId = id
		}
	}
	return maxId, nil
}

func (r *memoryMissionRepository) Add(ctx context.Context, q repositories.Querier, mission models.Mission) (models.Mission, error) {
	if _, ok := r.missions[mission.Id]; ok {
		return models.Mission{}, myerrors.Conflict("mission id is already taken", nil)
	}
	r.missions[mission.Id] = mission
	return mission, nil
}

func (r *memoryMissionRepository) GetById(ctx context.Context, q repositories.Querier, id int64) (models.Mission, error) {
	m, ok := r.missions[id]
	if !ok {
		return models.Mission{}, myerrors.NotFound("Mission", id)
	}
	return m, nil
}

func (r *memoryMissionRepository) UpdateAttackResults(ctx context.Context, q repositories.Querier, mission models.Mission) error {
	r.updates++
	r.missions[mission.Id] = mission
	return nil
}

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) Add(ctx context.Context, q repositories.Querier, country models.Country) (models.Country, error) {
	args := m.Called(ctx, q, country)
	return args.Get(0).(models.Country), args.Error(1)
}

func (m *MockCountryRepository) GetById(ctx context.Context, q repositories.Querier, id int64) (models.Country, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(models.Country), args.Error(1)
}

func (m *MockCountryRepository) GetAll(ctx context.Context, q repositories.Querier) ([]models.Country, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockCountryRepository) Delete(ctx context.Context, q repositories.Querier, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) Add(ctx context.Context, q repositories.Querier, city models.City) (models.City, error) {
	args := m.Called(ctx, q, city)
	return args.Get(0).(models.City), args.Error(1)
}

func (m *MockCityRepository) GetById(ctx context.Context, q repositories.Querier, id int64) (models.City, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(models.City), args.Error(1)
}

func (m *MockCityRepository) GetAll(ctx context.Context, q repositories.Querier) ([]models.City, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.City), args.Error(1)
}

func (m *MockCityRepository) GetByCountryId(ctx context.Context, q repositories.Querier, countryId int64) ([]models.City, error) {
	args := m.Called(ctx, q, countryId)
	return args.Get(0).([]models.City), args.Error(1)
}
