package graph

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/services"
)

type missionResolver struct {
	mission   models.Mission
	missions  services.MissionService
	geography services.GeographyService
}

func (r *missionResolver) MissionId() int32 {
	return int32(r.mission.Id)
}

func (r *missionResolver) MissionDate() models.Date {
	return r.mission.Date
}

func (r *missionResolver) AttackTypeId() *int32 {
	return int32Ptr(r.mission.AttackTypeId)
}

func (r *missionResolver) AirborneAircraft() *float64 {
	return r.mission.AirborneAircraft
}

func (r *missionResolver) AttackingAircraft() *float64 {
	return r.mission.AttackingAircraft
}

func (r *missionResolver) BombingAircraft() *float64 {
	return r.mission.BombingAircraft
}

func (r *missionResolver) AircraftReturned() *float64 {
	return r.mission.AircraftReturned
}

func (r *missionResolver) AircraftFailed() *float64 {
	return r.mission.AircraftFailed
}

func (r *missionResolver) AircraftDamaged() *float64 {
	return r.mission.AircraftDamaged
}

func (r *missionResolver) AircraftLost() *float64 {
	return r.mission.AircraftLost
}

func (r *missionResolver) Targets(ctx context.Context) ([]*targetResolver, error) {
	targets, err := r.missions.GetTargets(ctx, r.mission.Id)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*targetResolver, 0, len(targets))
	for _, t := range targets {
		resolvers = append(resolvers, &targetResolver{target: t, geography: r.geography})
	}
	return resolvers, nil
}

type targetResolver struct {
	target    models.Target
	geography services.GeographyService
}

func (r *targetResolver) TargetId() int32 {
	return int32(r.target.Id)
}

func (r *targetResolver) MissionId() int32 {
	return int32(r.target.MissionId)
}

func (r *targetResolver) TargetIndustry() string {
	return r.target.Industry
}

func (r *targetResolver) CityId() int32 {
	return int32(r.target.CityId)
}

func (r *targetResolver) TargetTypeId() *int32 {
	return int32Ptr(r.target.TargetTypeId)
}

func (r *targetResolver) TargetPriority() *int32 {
	return r.target.Priority
}

func (r *targetResolver) City(ctx context.Context) (*cityResolver, error) {
	city, err := r.geography.GetCityById(ctx, r.target.CityId)
	if err != nil {
		return nil, err
	}
	return &cityResolver{city: city}, nil
}

type countryResolver struct {
	country   models.Country
	geography services.GeographyService
}

func (r *countryResolver) CountryId() int32 {
	return int32(r.country.Id)
}

func (r *countryResolver) CountryName() string {
	return r.country.Name
}

// Cities reuses the cities loaded with the country when there are any.
func (r *countryResolver) Cities(ctx context.Context) ([]*cityResolver, error) {
	if r.country.Cities != nil {
		return wrapCities(r.country.Cities), nil
	}
	cities, err := r.geography.GetCities(ctx, &r.country.Id)
	if err != nil {
		return nil, err
	}
	return wrapCities(cities), nil
}

type cityResolver struct {
	city models.City
}

func (r *cityResolver) CityId() int32 {
	return int32(r.city.Id)
}

func (r *cityResolver) CityName() string {
	return r.city.Name
}

func (r *cityResolver) CountryId() int32 {
	return int32(r.city.CountryId)
}

func (r *cityResolver) Latitude() *float64 {
	return r.city.Latitude
}

func (r *cityResolver) Longitude() *float64 {
	return r.city.Longitude
}

type targetTypeResolver struct {
	targetType models.TargetType
}

func (r *targetTypeResolver) TargetTypeId() int32 {
	return int32(r.targetType.Id)
}

func (r *targetTypeResolver) TargetTypeName() string {
	return r.targetType.Name
}

type attackTypeResolver struct {
	attackType models.AttackType
}

func (r *attackTypeResolver) AttackTypeId() int32 {
	return int32(r.attackType.Id)
}

func (r *attackTypeResolver) AttackTypeName() string {
	return r.attackType.Name
}

type deleteResultResolver struct {
	success bool
}

func (r *deleteResultResolver) Success() bool {
	return r.success
}

func wrapCities(cities []models.City) []*cityResolver {
	resolvers := make([]*cityResolver, 0, len(cities))
	for _, c := range cities {
		resolvers = append(resolvers, &cityResolver{city: c})
	}
	return resolvers
}

func int32Ptr(v *int64) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}

func int64Ptr(v *int32) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}
