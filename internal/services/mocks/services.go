// Package mocks holds testify mocks of the service interfaces for handler
// and resolver tests.
package mocks

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/stretchr/testify/mock"
)

type MissionService struct {
	mock.Mock
}

func (m *MissionService) GetAll(ctx context.Context) ([]models.Mission, error) {
	args := m.Called(ctx)
	return missions(args.Get(0)), args.Error(1)
}

func (m *MissionService) GetById(ctx context.Context, id int64) (models.Mission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MissionService) GetByDateRange(ctx context.Context, start, end models.Date) ([]models.Mission, error) {
	args := m.Called(ctx, start, end)
	return missions(args.Get(0)), args.Error(1)
}

func (m *MissionService) GetByCountry(ctx context.Context, countryName string) ([]models.Mission, error) {
	args := m.Called(ctx, countryName)
	return missions(args.Get(0)), args.Error(1)
}

func (m *MissionService) GetByTargetIndustry(ctx context.Context, industry string) ([]models.Mission, error) {
	args := m.Called(ctx, industry)
	return missions(args.Get(0)), args.Error(1)
}

func (m *MissionService) GetAttackResultsByTargetType(ctx context.Context, targetTypeName string) ([]models.Mission, error) {
	args := m.Called(ctx, targetTypeName)
	return missions(args.Get(0)), args.Error(1)
}

func (m *MissionService) GetTargets(ctx context.Context, missionId int64) ([]models.Target, error) {
	args := m.Called(ctx, missionId)
	targets, _ := args.Get(0).([]models.Target)
	return targets, args.Error(1)
}

func (m *MissionService) Add(ctx context.Context, mission models.NewMission) (models.Mission, error) {
	args := m.Called(ctx, mission)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MissionService) AddTarget(ctx context.Context, target models.NewTarget) (models.Target, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(models.Target), args.Error(1)
}

func (m *MissionService) UpdateAttackResults(ctx context.Context, id int64, update models.AttackResultsUpdate) (models.Mission, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(models.Mission), args.Error(1)
}

func (m *MissionService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type GeographyService struct {
	mock.Mock
}

func (m *GeographyService) AddCountry(ctx context.Context, country models.Country) (models.Country, error) {
	args := m.Called(ctx, country)
	return args.Get(0).(models.Country), args.Error(1)
}

func (m *GeographyService) GetCountryById(ctx context.Context, id int64) (models.Country, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Country), args.Error(1)
}

func (m *GeographyService) GetAllCountries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	countries, _ := args.Get(0).([]models.Country)
	return countries, args.Error(1)
}

func (m *GeographyService) DeleteCountry(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *GeographyService) AddCity(ctx context.Context, city models.City) (models.City, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(models.City), args.Error(1)
}

func (m *GeographyService) GetCityById(ctx context.Context, id int64) (models.City, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.City), args.Error(1)
}

func (m *GeographyService) GetCities(ctx context.Context, countryId *int64) ([]models.City, error) {
	args := m.Called(ctx, countryId)
	cities, _ := args.Get(0).([]models.City)
	return cities, args.Error(1)
}

func (m *GeographyService) AddTargetType(ctx context.Context, targetType models.TargetType) (models.TargetType, error) {
	args := m.Called(ctx, targetType)
	return args.Get(0).(models.TargetType), args.Error(1)
}

func (m *GeographyService) GetAllTargetTypes(ctx context.Context) ([]models.TargetType, error) {
	args := m.Called(ctx)
	targetTypes, _ := args.Get(0).([]models.TargetType)
	return targetTypes, args.Error(1)
}

func (m *GeographyService) AddAttackType(ctx context.Context, attackType models.AttackType) (models.AttackType, error) {
	args := m.Called(ctx, attackType)
	return args.Get(0).(models.AttackType), args.Error(1)
}

func (m *GeographyService) GetAllAttackTypes(ctx context.Context) ([]models.AttackType, error) {
	args := m.Called(ctx)
	attackTypes, _ := args.Get(0).([]models.AttackType)
	return attackTypes, args.Error(1)
}

func missions(v any) []models.Mission {
	result, _ := v.([]models.Mission)
	return result
}
