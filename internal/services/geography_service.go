package services

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/repositories"
	"go.uber.org/zap"
)

// GeographyService manages the reference data missions point at: countries,
// cities, target types and attack types.
type GeographyService interface {
	AddCountry(ctx context.Context, country models.Country) (models.Country, error)
	GetCountryById(ctx context.Context, id int64) (models.Country, error)
	GetAllCountries(ctx context.Context) ([]models.Country, error)
	DeleteCountry(ctx context.Context, id int64) error

	AddCity(ctx context.Context, city models.City) (models.City, error)
	GetCityById(ctx context.Context, id int64) (models.City, error)
	GetCities(ctx context.Context, countryId *int64) ([]models.City, error)

	AddTargetType(ctx context.Context, targetType models.TargetType) (models.TargetType, error)
	GetAllTargetTypes(ctx context.Context) ([]models.TargetType, error)

	AddAttackType(ctx context.Context, attackType models.AttackType) (models.AttackType, error)
	GetAllAttackTypes(ctx context.Context) ([]models.AttackType, error)
}

type DefaultGeographyService struct {
	store                repositories.Sessioner
	countryRepository    repositories.CountryRepository
	cityRepository       repositories.CityRepository
	targetTypeRepository repositories.TargetTypeRepository
	attackTypeRepository repositories.AttackTypeRepository
	logger               *zap.Logger
}

func NewDefaultGeographyService(store repositories.Sessioner, countryRepo repositories.CountryRepository,
	cityRepo repositories.CityRepository, targetTypeRepo repositories.TargetTypeRepository,
	attackTypeRepo repositories.AttackTypeRepository, logger *zap.Logger) *DefaultGeographyService {
	return &DefaultGeographyService{
		store:                store,
		countryRepository:    countryRepo,
		cityRepository:       cityRepo,
		targetTypeRepository: targetTypeRepo,
		attackTypeRepository: attackTypeRepo,
		logger:               logger,
	}
}

func (d *DefaultGeographyService) AddCountry(ctx context.Context, country models.Country) (models.Country, error) {
	name, err := requiredText("countryName", country.Name, maxCountryNameLength)
	if err != nil {
		return models.Country{}, err
	}
	country.Name = name
	var saved models.Country
	err = d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		saved, err = d.countryRepository.Add(ctx, q, country)
		return err
	})
	if err != nil {
		return models.Country{}, err
	}
	d.logger.Info("country created", zap.Int64("country_id", saved.Id), zap.String("country_name", saved.Name))
	return saved, nil
}

// GetCountryById returns the country with its cities.
func (d *DefaultGeographyService) GetCountryById(ctx context.Context, id int64) (models.Country, error) {
	var country models.Country
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		country, err = d.countryRepository.GetById(ctx, q, id)
		if err != nil {
			return err
		}
		country.Cities, err = d.cityRepository.GetByCountryId(ctx, q, id)
		return err
	})
	if err != nil {
		return models.Country{}, err
	}
	return country, nil
}

func (d *DefaultGeographyService) GetAllCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		countries, err = d.countryRepository.GetAll(ctx, q)
		return err
	})
	return countries, err
}

func (d *DefaultGeographyService) DeleteCountry(ctx context.Context, id int64) error {
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		return d.countryRepository.Delete(ctx, q, id)
	})
	if err != nil {
		return err
	}
	d.logger.Info("country deleted", zap.Int64("country_id", id))
	return nil
}

func (d *DefaultGeographyService) AddCity(ctx context.Context, city models.City) (models.City, error) {
	name, err := requiredText("cityName", city.Name, maxCityNameLength)
	if err != nil {
		return models.City{}, err
	}
	city.Name = name
	if err := inRange("latitude", city.Latitude, 90); err != nil {
		return models.City{}, err
	}
	if err := inRange("longitude", city.Longitude, 180); err != nil {
		return models.City{}, err
	}
	var saved models.City
	err = d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		saved, err = d.cityRepository.Add(ctx, q, city)
		return err
	})
	if err != nil {
		return models.City{}, err
	}
	d.logger.Info("city created", zap.Int64("city_id", saved.Id), zap.Int64("country_id", saved.CountryId))
	return saved, nil
}

func (d *DefaultGeographyService) GetCityById(ctx context.Context, id int64) (models.City, error) {
	var city models.City
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		city, err = d.cityRepository.GetById(ctx, q, id)
		return err
	})
	if err != nil {
		return models.City{}, err
	}
	return city, nil
}

// GetCities lists every city, or only those of one country when countryId is set.
func (d *DefaultGeographyService) GetCities(ctx context.Context, countryId *int64) ([]models.City, error) {
	var cities []models.City
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		if countryId != nil {
			cities, err = d.cityRepository.GetByCountryId(ctx, q, *countryId)
		} else {
			cities, err = d.cityRepository.GetAll(ctx, q)
		}
		return err
	})
	return cities, err
}

func (d *DefaultGeographyService) AddTargetType(ctx context.Context, targetType models.TargetType) (models.TargetType, error) {
	name, err := requiredText("targetTypeName", targetType.Name, maxTargetTypeNameLength)
	if err != nil {
		return models.TargetType{}, err
	}
	targetType.Name = name
	var saved models.TargetType
	err = d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		saved, err = d.targetTypeRepository.Add(ctx, q, targetType)
		return err
	})
	if err != nil {
		return models.TargetType{}, err
	}
	d.logger.Info("target type created", zap.Int64("target_type_id", saved.Id))
	return saved, nil
}

func (d *DefaultGeographyService) GetAllTargetTypes(ctx context.Context) ([]models.TargetType, error) {
	var targetTypes []models.TargetType
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		targetTypes, err = d.targetTypeRepository.GetAll(ctx, q)
		return err
	})
	return targetTypes, err
}

func (d *DefaultGeographyService) AddAttackType(ctx context.Context, attackType models.AttackType) (models.AttackType, error) {
	name, err := requiredText("attackTypeName", attackType.Name, maxAttackTypeNameLength)
	if err != nil {
		return models.AttackType{}, err
	}
	attackType.Name = name
	var saved models.AttackType
	err = d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		saved, err = d.attackTypeRepository.Add(ctx, q, attackType)
		return err
	})
	if err != nil {
		return models.AttackType{}, err
	}
	d.logger.Info("attack type created", zap.Int64("attack_type_id", saved.Id))
	return saved, nil
}

func (d *DefaultGeographyService) GetAllAttackTypes(ctx context.Context) ([]models.AttackType, error) {
	var attackTypes []models.AttackType
	err := d.store.WithSession(ctx, func(q repositories.Querier) error {
		var err error
		attackTypes, err = d.attackTypeRepository.GetAll(ctx, q)
		return err
	})
	return attackTypes, err
}
