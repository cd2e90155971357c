package services

import (
	"context"
	"sync"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/4oBuko/mission-archive/internal/repositories"
	"go.uber.org/zap"
)

type MissionService interface {
	GetAll(ctx context.Context) ([]models.Mission, error)
	GetById(ctx context.Context, id int64) (models.Mission, error)
	GetByDateRange(ctx context.Context, start, end models.Date) ([]models.Mission, error)
	GetByCountry(ctx context.Context, countryName string) ([]models.Mission, error)
	GetByTargetIndustry(ctx context.Context, industry string) ([]models.Mission, error)
	GetAttackResultsByTargetType(ctx context.Context, targetTypeName string) ([]models.Mission, error)
	GetTargets(ctx context.Context, missionId int64) ([]models.Target, error)

	Add(ctx context.Context, mission models.NewMission) (models.Mission, error)
	AddTarget(ctx context.Context, target models.NewTarget) (models.Target, error)
	UpdateAttackResults(ctx context.Context, id int64, update models.AttackResultsUpdate) (models.Mission, error)
	Delete(ctx context.Context, id int64) error
}

type DefaultMissionService struct {
	store             repositories.Sessioner
	missionRepository repositories.MissionRepository
	targetRepository  repositories.TargetRepository
	logger            *zap.Logger

	// serializes mission id assignment inside this process
	idMu sync.Mutex
}

func NewDefaultMissionService(store repositories.Sessioner, missionRepo repositories.MissionRepository,
	targetRepo repositories.TargetRepository, logger *zap.Logger) *DefaultMissionService {
	return &DefaultMissionService{
		store:             store,
		missionRepository: missionRepo,
		targetRepository:  targetRepo,
		logger:            logger,
	}
}

func (d *DefaultMissionService) GetAll(ctx context.Context) ([]models.Mission, error) {
	var missions []models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		missions, err = d.missionRepository.GetAll(ctx, q)
		return err
	})
	return missions, err
}

func (d *DefaultMissionService) GetById(ctx context.Context, id int64) (models.Mission, error) {
	var mission models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		mission, err = d.missionRepository.GetById(ctx, q, id)
		return err
	})
	if err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (d *DefaultMissionService) GetByDateRange(ctx context.Context, start, end models.Date) ([]models.Mission, error) {
	var missions []models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		missions, err = d.missionRepository.GetByDateRange(ctx, q, start, end)
		return err
	})
	return missions, err
}

func (d *DefaultMissionService) GetByCountry(ctx context.Context, countryName string) ([]models.Mission, error) {
	var missions []models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		missions, err = d.missionRepository.GetByCountry(ctx, q, countryName)
		return err
	})
	return missions, err
}

func (d *DefaultMissionService) GetByTargetIndustry(ctx context.Context, industry string) ([]models.Mission, error) {
	var missions []models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		missions, err = d.missionRepository.GetByTargetIndustry(ctx, q, industry)
		return err
	})
	return missions, err
}

// GetAttackResultsByTargetType differs from the other filters: an empty
// result is reported as not found.
func (d *DefaultMissionService) GetAttackResultsByTargetType(ctx context.Context, targetTypeName string) ([]models.Mission, error) {
	var missions []models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		missions, err = d.missionRepository.GetByTargetType(ctx, q, targetTypeName)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(missions) == 0 {
		return nil, myerrors.NotFoundf("No missions found for target type %s", targetTypeName)
	}
	return missions, nil
}

func (d *DefaultMissionService) GetTargets(ctx context.Context, missionId int64) ([]models.Target, error) {
	var targets []models.Target
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		targets, err = d.targetRepository.GetByMissionId(ctx, q, missionId)
		return err
	})
	return targets, err
}

// Add stores a new mission under the id following the current maximum.
func (d *DefaultMissionService) Add(ctx context.Context, newMission models.NewMission) (models.Mission, error) {
	if newMission.Date == nil {
		return models.Mission{}, myerrors.Validation("missionDate is required")
	}

	d.idMu.Lock()
	defer d.idMu.Unlock()

	var saved models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		maxId, err := d.missionRepository.MaxId(ctx, q)
		if err != nil {
			return err
		}
		saved, err = d.missionRepository.Add(ctx, q, newMission.ToMission(maxId+1))
		return err
	})
	if err != nil {
		return models.Mission{}, err
	}
	d.logger.Info("mission created",
		zap.Int64("mission_id", saved.Id), zap.Stringer("mission_date", saved.Date))
	return saved, nil
}

// AddTarget checks the target fields only. Missing missions, cities and
// target types are reported by the foreign keys.
func (d *DefaultMissionService) AddTarget(ctx context.Context, newTarget models.NewTarget) (models.Target, error) {
	industry, err := requiredText("targetIndustry", newTarget.Industry, maxIndustryLength)
	if err != nil {
		return models.Target{}, err
	}
	newTarget.Industry = industry

	var saved models.Target
	err = d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		saved, err = d.targetRepository.Add(ctx, q, newTarget.ToTarget())
		return err
	})
	if err != nil {
		return models.Target{}, err
	}
	d.logger.Info("target added",
		zap.Int64("mission_id", saved.MissionId), zap.Int64("target_id", saved.Id))
	return saved, nil
}

func (d *DefaultMissionService) UpdateAttackResults(ctx context.Context, id int64, update models.AttackResultsUpdate) (models.Mission, error) {
	var mission models.Mission
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		mission, err = d.missionRepository.GetById(ctx, q, id)
		if err != nil {
			return err
		}
		if update.IsEmpty() {
			return nil
		}
		update.Apply(&mission)
		return d.missionRepository.UpdateAttackResults(ctx, q, mission)
	})
	if err != nil {
		return models.Mission{}, err
	}
	d.logger.Info("attack results updated", zap.Int64("mission_id", id))
	return mission, nil
}

func (d *DefaultMissionService) Delete(ctx context.Context, id int64) error {
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		if _, err := d.missionRepository.GetById(ctx, q, id); err != nil {
			return err
		}
		return d.missionRepository.Delete(ctx, q, id)
	})
	if err != nil {
		return err
	}
	d.logger.Info("mission deleted", zap.Int64("mission_id", id))
	return nil
}
