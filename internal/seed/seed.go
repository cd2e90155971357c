// Package seed loads reference data and missions from a YAML fixture file
// into the archive through the service layer.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/services"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Fixtures struct {
	Countries   []models.Country
	TargetTypes []models.TargetType
	AttackTypes []models.AttackType
	Missions    []MissionFixture
}

// MissionFixture refers to cities, target types and attack types by name.
// The names are resolved to ids while seeding.
type MissionFixture struct {
	Mission    models.NewMission
	AttackType string
	Targets    []TargetFixture
}

type TargetFixture struct {
	Industry   string
	City       string
	TargetType string
	Priority   *int32
}

type Summary struct {
	Countries   int
	Cities      int
	TargetTypes int
	AttackTypes int
	Missions    int
	Targets     int
}

type yamlFixtures struct {
	Countries   []yamlCountry `yaml:"countries"`
	TargetTypes []string      `yaml:"target_types"`
	AttackTypes []string      `yaml:"attack_types"`
	Missions    []yamlMission `yaml:"missions"`
}

type yamlCountry struct {
	Name   string     `yaml:"name"`
	Cities []yamlCity `yaml:"cities"`
}

type yamlCity struct {
	Name      string   `yaml:"name"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

type yamlMission struct {
	Date              string       `yaml:"date"`
	AttackType        string       `yaml:"attack_type"`
	AirborneAircraft  *float64     `yaml:"airborne_aircraft"`
	AttackingAircraft *float64     `yaml:"attacking_aircraft"`
	BombingAircraft   *float64     `yaml:"bombing_aircraft"`
	AircraftReturned  *float64     `yaml:"aircraft_returned"`
	AircraftFailed    *float64     `yaml:"aircraft_failed"`
	AircraftDamaged   *float64     `yaml:"aircraft_damaged"`
	AircraftLost      *float64     `yaml:"aircraft_lost"`
	Targets           []yamlTarget `yaml:"targets"`
}

type yamlTarget struct {
	Industry   string `yaml:"industry"`
	City       string `yaml:"city"`
	TargetType string `yaml:"target_type"`
	Priority   *int32 `yaml:"priority"`
}

func LoadFile(path string) (Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, errors.Wrap(err, "read fixtures")
	}
	fixtures, err := Parse(b)
	if err != nil {
		return Fixtures{}, errors.Wrapf(err, "fixtures %s", path)
	}
	return fixtures, nil
}

func Parse(b []byte) (Fixtures, error) {
	var yf yamlFixtures
	if err := yaml.Unmarshal(b, &yf); err != nil {
		return Fixtures{}, errors.Wrap(err, "decode yaml")
	}
	return mapAndValidate(yf)
}

func mapAndValidate(yf yamlFixtures) (Fixtures, error) {
	f := Fixtures{
		Countries:   make([]models.Country, 0, len(yf.Countries)),
		TargetTypes: make([]models.TargetType, 0, len(yf.TargetTypes)),
		AttackTypes: make([]models.AttackType, 0, len(yf.AttackTypes)),
		Missions:    make([]MissionFixture, 0, len(yf.Missions)),
	}

	// targets refer to cities by name alone, so a name may appear once
	cityFields := map[string]string{}
	for i, c := range yf.Countries {
		field := fmt.Sprintf("countries[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			return Fixtures{}, invalidField(field+".name", "country name is required")
		}
		country := models.Country{Name: c.Name}
		for j, city := range c.Cities {
			cityField := fmt.Sprintf("%s.cities[%d].name", field, j)
			name := strings.TrimSpace(city.Name)
			if name == "" {
				return Fixtures{}, invalidField(cityField, "city name is required")
			}
			if first, ok := cityFields[name]; ok {
				return Fixtures{}, invalidField(cityField, fmt.Sprintf("city %q is already defined at %s", name, first))
			}
			cityFields[name] = cityField
			country.Cities = append(country.Cities, models.City{
				Name:      city.Name,
				Latitude:  city.Latitude,
				Longitude: city.Longitude,
			})
		}
		f.Countries = append(f.Countries, country)
	}
	for i, name := range yf.TargetTypes {
		if strings.TrimSpace(name) == "" {
			return Fixtures{}, invalidField(fmt.Sprintf("target_types[%d]", i), "target type name is required")
		}
		f.TargetTypes = append(f.TargetTypes, models.TargetType{Name: name})
	}
	for i, name := range yf.AttackTypes {
		if strings.TrimSpace(name) == "" {
			return Fixtures{}, invalidField(fmt.Sprintf("attack_types[%d]", i), "attack type name is required")
		}
		f.AttackTypes = append(f.AttackTypes, models.AttackType{Name: name})
	}

	for i, m := range yf.Missions {
		field := fmt.Sprintf("missions[%d]", i)
		date, err := models.ParseDate(m.Date)
		if err != nil {
			return Fixtures{}, invalidField(field+".date", err.Error())
		}
		mission := MissionFixture{
			Mission: models.NewMission{
				Date:              &date,
				AirborneAircraft:  m.AirborneAircraft,
				AttackingAircraft: m.AttackingAircraft,
				BombingAircraft:   m.BombingAircraft,
				AircraftReturned:  m.AircraftReturned,
				AircraftFailed:    m.AircraftFailed,
				AircraftDamaged:   m.AircraftDamaged,
				AircraftLost:      m.AircraftLost,
			},
			AttackType: m.AttackType,
		}
		for j, t := range m.Targets {
			targetField := fmt.Sprintf("%s.targets[%d]", field, j)
			if strings.TrimSpace(t.Industry) == "" {
				return Fixtures{}, invalidField(targetField+".industry", "target industry is required")
			}
			if strings.TrimSpace(t.City) == "" {
				return Fixtures{}, invalidField(targetField+".city", "target city is required")
			}
			if strings.TrimSpace(t.TargetType) == "" {
				return Fixtures{}, invalidField(targetField+".target_type", "target type is required")
			}
			mission.Targets = append(mission.Targets, TargetFixture{
				Industry:   t.Industry,
				City:       t.City,
				TargetType: t.TargetType,
				Priority:   t.Priority,
			})
		}
		f.Missions = append(f.Missions, mission)
	}
	return f, nil
}

func invalidField(field, msg string) error {
	return errors.Errorf("field %s: %s", field, msg)
}

type Seeder struct {
	geography services.GeographyService
	missions  services.MissionService
	logger    *zap.Logger
}

func NewSeeder(geography services.GeographyService, missions services.MissionService, logger *zap.Logger) *Seeder {
	return &Seeder{geography: geography, missions: missions, logger: logger}
}

// Apply stores the fixtures in dependency order. It stops at the first
// failure; whatever was stored before stays.
func (s *Seeder) Apply(ctx context.Context, f Fixtures) (Summary, error) {
	var summary Summary
	cityIds := map[string]int64{}
	targetTypeIds := map[string]int64{}
	attackTypeIds := map[string]int64{}

	for _, country := range f.Countries {
		saved, err := s.geography.AddCountry(ctx, models.Country{Name: country.Name})
		if err != nil {
			return summary, errors.Wrapf(err, "add country %q", country.Name)
		}
		summary.Countries++
		for _, city := range country.Cities {
			city.CountryId = saved.Id
			savedCity, err := s.geography.AddCity(ctx, city)
			if err != nil {
				return summary, errors.Wrapf(err, "add city %q", city.Name)
			}
			cityIds[strings.TrimSpace(savedCity.Name)] = savedCity.Id
			summary.Cities++
		}
	}
	for _, targetType := range f.TargetTypes {
		saved, err := s.geography.AddTargetType(ctx, targetType)
		if err != nil {
			return summary, errors.Wrapf(err, "add target type %q", targetType.Name)
		}
		targetTypeIds[saved.Name] = saved.Id
		summary.TargetTypes++
	}
	for _, attackType := range f.AttackTypes {
		saved, err := s.geography.AddAttackType(ctx, attackType)
		if err != nil {
			return summary, errors.Wrapf(err, "add attack type %q", attackType.Name)
		}
		attackTypeIds[saved.Name] = saved.Id
		summary.AttackTypes++
	}

	for i, fixture := range f.Missions {
		mission := fixture.Mission
		if fixture.AttackType != "" {
			id, ok := attackTypeIds[fixture.AttackType]
			if !ok {
				return summary, errors.Errorf("missions[%d]: unknown attack type %q", i, fixture.AttackType)
			}
			mission.AttackTypeId = &id
		}
		saved, err := s.missions.Add(ctx, mission)
		if err != nil {
			return summary, errors.Wrapf(err, "add missions[%d]", i)
		}
		summary.Missions++

		for _, target := range fixture.Targets {
			cityId, ok := cityIds[strings.TrimSpace(target.City)]
			if !ok {
				return summary, errors.Errorf("missions[%d]: unknown city %q", i, target.City)
			}
			targetTypeId, ok := targetTypeIds[target.TargetType]
			if !ok {
				return summary, errors.Errorf("missions[%d]: unknown target type %q", i, target.TargetType)
			}
			_, err := s.missions.AddTarget(ctx, models.NewTarget{
				MissionId:    saved.Id,
				Industry:     target.Industry,
				CityId:       cityId,
				TargetTypeId: &targetTypeId,
				Priority:     target.Priority,
			})
			if err != nil {
				return summary, errors.Wrapf(err, "add target %q to mission %d", target.Industry, saved.Id)
			}
			summary.Targets++
		}
	}

	s.logger.Info("fixtures seeded",
		zap.Int("countries", summary.Countries),
		zap.Int("cities", summary.Cities),
		zap.Int("target_types", summary.TargetTypes),
		zap.Int("attack_types", summary.AttackTypes),
		zap.Int("missions", summary.Missions),
		zap.Int("targets", summary.Targets))
	return summary, nil
}
