package graph

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/services"
)

// Resolver is the root of both the Query and the Mutation type.
type Resolver struct {
	missions  services.MissionService
	geography services.GeographyService
}

func (r *Resolver) AllMissions(ctx context.Context) ([]*missionResolver, error) {
	missions, err := r.missions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return r.wrapMissions(missions), nil
}

func (r *Resolver) MissionById(ctx context.Context, args struct{ MissionId int32 }) (*missionResolver, error) {
	mission, err := r.missions.GetById(ctx, int64(args.MissionId))
	if err != nil {
		return nil, err
	}
	return r.wrapMission(mission), nil
}

func (r *Resolver) MissionsByDateRange(ctx context.Context, args struct {
	StartDate models.Date
	EndDate   models.Date
}) ([]*missionResolver, error) {
	missions, err := r.missions.GetByDateRange(ctx, args.StartDate, args.EndDate)
	if err != nil {
		return nil, err
	}
	return r.wrapMissions(missions), nil
}

func (r *Resolver) MissionsByCountry(ctx context.Context, args struct{ CountryName string }) ([]*missionResolver, error) {
	missions, err := r.missions.GetByCountry(ctx, args.CountryName)
	if err != nil {
		return nil, err
	}
	return r.wrapMissions(missions), nil
}

func (r *Resolver) MissionsByTargetIndustry(ctx context.Context, args struct{ Industry string }) ([]*missionResolver, error) {
	missions, err := r.missions.GetByTargetIndustry(ctx, args.Industry)
	if err != nil {
		return nil, err
	}
	return r.wrapMissions(missions), nil
}

func (r *Resolver) AttackResultsByTargetType(ctx context.Context, args struct{ TargetTypeName string }) ([]*missionResolver, error) {
	missions, err := r.missions.GetAttackResultsByTargetType(ctx, args.TargetTypeName)
	if err != nil {
		return nil, err
	}
	return r.wrapMissions(missions), nil
}

func (r *Resolver) AircraftByMission(ctx context.Context, args struct{ MissionId int32 }) (*missionResolver, error) {
	return r.MissionById(ctx, args)
}

func (r *Resolver) AttackResultsByMission(ctx context.Context, args struct{ MissionId int32 }) (*missionResolver, error) {
	return r.MissionById(ctx, args)
}

func (r *Resolver) Countries(ctx context.Context) ([]*countryResolver, error) {
	countries, err := r.geography.GetAllCountries(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*countryResolver, 0, len(countries))
	for _, c := range countries {
		resolvers = append(resolvers, &countryResolver{country: c, geography: r.geography})
	}
	return resolvers, nil
}

func (r *Resolver) Country(ctx context.Context, args struct{ CountryId int32 }) (*countryResolver, error) {
	country, err := r.geography.GetCountryById(ctx, int64(args.CountryId))
	if err != nil {
		return nil, err
	}
	return &countryResolver{country: country, geography: r.geography}, nil
}

func (r *Resolver) Cities(ctx context.Context, args struct{ CountryId *int32 }) ([]*cityResolver, error) {
	cities, err := r.geography.GetCities(ctx, int64Ptr(args.CountryId))
	if err != nil {
		return nil, err
	}
	return wrapCities(cities), nil
}

func (r *Resolver) City(ctx context.Context, args struct{ CityId int32 }) (*cityResolver, error) {
	city, err := r.geography.GetCityById(ctx, int64(args.CityId))
	if err != nil {
		return nil, err
	}
	return &cityResolver{city: city}, nil
}

func (r *Resolver) TargetTypes(ctx context.Context) ([]*targetTypeResolver, error) {
	targetTypes, err := r.geography.GetAllTargetTypes(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*targetTypeResolver, 0, len(targetTypes))
	for _, tt := range targetTypes {
		resolvers = append(resolvers, &targetTypeResolver{targetType: tt})
	}
	return resolvers, nil
}

func (r *Resolver) AttackTypes(ctx context.Context) ([]*attackTypeResolver, error) {
	attackTypes, err := r.geography.GetAllAttackTypes(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*attackTypeResolver, 0, len(attackTypes))
	for _, at := range attackTypes {
		resolvers = append(resolvers, &attackTypeResolver{attackType: at})
	}
	return resolvers, nil
}

type createMissionArgs struct {
	MissionDate       models.Date
	AttackTypeId      *int32
	AirborneAircraft  *float64
	AttackingAircraft *float64
	BombingAircraft   *float64
	AircraftReturned  *float64
	AircraftFailed    *float64
	AircraftDamaged   *float64
	AircraftLost      *float64
}

func (r *Resolver) CreateMission(ctx context.Context, args createMissionArgs) (*missionResolver, error) {
	mission, err := r.missions.Add(ctx, models.NewMission{
		Date:              &args.MissionDate,
		AttackTypeId:      int64Ptr(args.AttackTypeId),
		AirborneAircraft:  args.AirborneAircraft,
		AttackingAircraft: args.AttackingAircraft,
		BombingAircraft:   args.BombingAircraft,
		AircraftReturned:  args.AircraftReturned,
		AircraftFailed:    args.AircraftFailed,
		AircraftDamaged:   args.AircraftDamaged,
		AircraftLost:      args.AircraftLost,
	})
	if err != nil {
		return nil, err
	}
	return r.wrapMission(mission), nil
}

type addTargetArgs struct {
	MissionId      int32
	TargetIndustry string
	CityId         int32
	TargetTypeId   int32
	TargetPriority *int32
}

func (r *Resolver) AddTarget(ctx context.Context, args addTargetArgs) (*targetResolver, error) {
	targetTypeId := int64(args.TargetTypeId)
	target, err := r.missions.AddTarget(ctx, models.NewTarget{
		MissionId:    int64(args.MissionId),
		Industry:     args.TargetIndustry,
		CityId:       int64(args.CityId),
		TargetTypeId: &targetTypeId,
		Priority:     args.TargetPriority,
	})
	if err != nil {
		return nil, err
	}
	return &targetResolver{target: target, geography: r.geography}, nil
}

type updateAttackResultsArgs struct {
	MissionId        int32
	AircraftReturned *float64
	AircraftFailed   *float64
	AircraftDamaged  *float64
	AircraftLost     *float64
}

func (r *Resolver) UpdateAttackResults(ctx context.Context, args updateAttackResultsArgs) (*missionResolver, error) {
	mission, err := r.missions.UpdateAttackResults(ctx, int64(args.MissionId), models.AttackResultsUpdate{
		AircraftReturned: args.AircraftReturned,
		AircraftFailed:   args.AircraftFailed,
		AircraftDamaged:  args.AircraftDamaged,
		AircraftLost:     args.AircraftLost,
	})
	if err != nil {
		return nil, err
	}
	return r.wrapMission(mission), nil
}

func (r *Resolver) DeleteMission(ctx context.Context, args struct{ MissionId int32 }) (*deleteResultResolver, error) {
	if err := r.missions.Delete(ctx, int64(args.MissionId)); err != nil {
		return nil, err
	}
	return &deleteResultResolver{success: true}, nil
}

func (r *Resolver) CreateCountry(ctx context.Context, args struct{ CountryName string }) (*countryResolver, error) {
	country, err := r.geography.AddCountry(ctx, models.Country{Name: args.CountryName})
	if err != nil {
		return nil, err
	}
	return &countryResolver{country: country, geography: r.geography}, nil
}

func (r *Resolver) DeleteCountry(ctx context.Context, args struct{ CountryId int32 }) (*deleteResultResolver, error) {
	if err := r.geography.DeleteCountry(ctx, int64(args.CountryId)); err != nil {
		return nil, err
	}
	return &deleteResultResolver{success: true}, nil
}

func (r *Resolver) CreateCity(ctx context.Context, args struct {
	CityName  string
	CountryId int32
	Latitude  *float64
	Longitude *float64
}) (*cityResolver, error) {
	city, err := r.geography.AddCity(ctx, models.City{
		Name:      args.CityName,
		CountryId: int64(args.CountryId),
		Latitude:  args.Latitude,
		Longitude: args.Longitude,
	})
	if err != nil {
		return nil, err
	}
	return &cityResolver{city: city}, nil
}

func (r *Resolver) CreateTargetType(ctx context.Context, args struct{ TargetTypeName string }) (*targetTypeResolver, error) {
	targetType, err := r.geography.AddTargetType(ctx, models.TargetType{Name: args.TargetTypeName})
	if err != nil {
		return nil, err
	}
	return &targetTypeResolver{targetType: targetType}, nil
}

func (r *Resolver) CreateAttackType(ctx context.Context, args struct{ AttackTypeName string }) (*attackTypeResolver, error) {
	attackType, err := r.geography.AddAttackType(ctx, models.AttackType{Name: args.AttackTypeName})
	if err != nil {
		return nil, err
	}
	return &attackTypeResolver{attackType: attackType}, nil
}

func (r *Resolver) wrapMission(m models.Mission) *missionResolver {
	return &missionResolver{mission: m, missions: r.missions, geography: r.geography}
}

func (r *Resolver) wrapMissions(missions []models.Mission) []*missionResolver {
	resolvers := make([]*missionResolver, 0, len(missions))
	for _, m := range missions {
		resolvers = append(resolvers, r.wrapMission(m))
	}
	return resolvers
}
