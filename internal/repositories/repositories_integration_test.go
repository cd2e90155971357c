package repositories

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

var store *Store

func TestMain(m *testing.M) {
	os.Exit(runWithDatabase(m))
}

func runWithDatabase(m *testing.M) int {
	ctx := context.Background()
	pwd, _ := os.Getwd()
	mysqlContainer, err := mysql.Run(ctx,
		"mysql:9.4.0",
		mysql.WithDatabase("missions"),
		mysql.WithUsername("root"),
		mysql.WithPassword("password"),
		mysql.WithScripts(filepath.Join(pwd, "schema.sql")),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(mysqlContainer); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()
	if err != nil {
		log.Printf("failed to start container, skipping database tests: %s", err)
		return 0
	}

	connectionString, err := mysqlContainer.ConnectionString(ctx)
	if err != nil {
		log.Printf("failed to get connection string: %s", err)
		return 1
	}
	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		log.Printf("failed to open database: %s", err)
		return 1
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(10)
	defer db.Close()

	store = NewStore(db)
	return m.Run()
}

func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"targets", "missions", "cities", "countries", "targettypes", "attack_types"} {
		_, err := store.db.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func inSession(t *testing.T, work func(q Querier) error) {
	t.Helper()
	require.NoError(t, store.WithSession(context.Background(), work))
}

type fixture struct {
	germany     models.Country
	france      models.Country
	bremen      models.City
	lorient     models.City
	naval       models.TargetType
	industrial  models.TargetType
	attackType  models.AttackType
	missionRepo *MySQLMissionRepository
	targetRepo  *MySQLTargetRepository
}

// newFixture stores two countries with one city each, two target types and
// an attack type.
func newFixture(t *testing.T) fixture {
	t.Helper()
	resetTables(t)
	ctx := context.Background()
	f := fixture{
		missionRepo: NewMySQLMissionRepository(),
		targetRepo:  NewMySQLTargetRepository(),
	}
	countries := NewMySQLCountryRepository()
	cities := NewMySQLCityRepository()
	targetTypes := NewMySQLTargetTypeRepository()
	attackTypes := NewMySQLAttackTypeRepository()

	inSession(t, func(q Querier) error {
		var err error
		if f.germany, err = countries.Add(ctx, q, models.Country{Name: "Germany"}); err != nil {
			return err
		}
		if f.france, err = countries.Add(ctx, q, models.Country{Name: "France"}); err != nil {
			return err
		}
		if f.bremen, err = cities.Add(ctx, q, models.City{Name: "Bremen", CountryId: f.germany.Id,
			Latitude: ptr(53.0793), Longitude: ptr(8.8017)}); err != nil {
			return err
		}
		if f.lorient, err = cities.Add(ctx, q, models.City{Name: "Lorient", CountryId: f.france.Id}); err != nil {
			return err
		}
		if f.naval, err = targetTypes.Add(ctx, q, models.TargetType{Name: "Naval base"}); err != nil {
			return err
		}
		if f.industrial, err = targetTypes.Add(ctx, q, models.TargetType{Name: "Industrial"}); err != nil {
			return err
		}
		f.attackType, err = attackTypes.Add(ctx, q, models.AttackType{Name: "Daylight precision"})
		return err
	})
	return f
}

func (f fixture) addMission(t *testing.T, mission models.Mission) models.Mission {
	t.Helper()
	var saved models.Mission
	inSession(t, func(q Querier) error {
		var err error
		saved, err = f.missionRepo.Add(context.Background(), q, mission)
		return err
	})
	return saved
}

func (f fixture) addTarget(t *testing.T, target models.Target) models.Target {
	t.Helper()
	var saved models.Target
	inSession(t, func(q Querier) error {
		var err error
		saved, err = f.targetRepo.Add(context.Background(), q, target)
		return err
	})
	return saved
}

func TestMissionRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mission := models.Mission{
		Id:                1,
		Date:              models.NewDate(1943, time.January, 27),
		AttackTypeId:      &f.attackType.Id,
		AirborneAircraft:  ptr(91.0),
		AttackingAircraft: ptr(64.0),
		AircraftLost:      ptr(0.0),
	}
	f.addMission(t, mission)

	inSession(t, func(q Querier) error {
		got, err := f.missionRepo.GetById(ctx, q, 1)
		require.NoError(t, err)
		assert.Equal(t, mission, got)
		assert.Nil(t, got.BombingAircraft, "NULL counts stay NULL")
		assert.Equal(t, 0.0, *got.AircraftLost, "zero is not NULL")
		return nil
	})
}

func TestMissionNotFound(t *testing.T) {
	newFixture(t)
	repo := NewMySQLMissionRepository()
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		_, err := repo.GetById(ctx, q, 999)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
		assert.EqualError(t, err, "Mission with id 999 not found")

		err = repo.Delete(ctx, q, 999)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
		return nil
	})
}

func TestMaxId(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		maxId, err := f.missionRepo.MaxId(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(0), maxId)
		return nil
	})

	f.addMission(t, models.Mission{Id: 7, Date: models.NewDate(1943, time.March, 4)})

	inSession(t, func(q Querier) error {
		maxId, err := f.missionRepo.MaxId(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(7), maxId)
		return nil
	})
}

func TestDuplicateMissionId(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.March, 4)})

	err := store.WithSession(context.Background(), func(q Querier) error {
		_, err := f.missionRepo.Add(context.Background(), q, models.Mission{Id: 1, Date: models.NewDate(1943, time.March, 5)})
		return err
	})
	assert.True(t, myerrors.IsKind(err, myerrors.KindConflict))
}

func TestGetByDateRangeIsInclusive(t *testing.T) {
	f := newFixture(t)
	for i, day := range []int{1, 15, 31} {
		f.addMission(t, models.Mission{Id: int64(i + 1), Date: models.NewDate(1943, time.March, day)})
	}
	f.addMission(t, models.Mission{Id: 4, Date: models.NewDate(1943, time.April, 1)})

	inSession(t, func(q Querier) error {
		missions, err := f.missionRepo.GetByDateRange(context.Background(), q,
			models.NewDate(1943, time.March, 1), models.NewDate(1943, time.March, 31))
		require.NoError(t, err)
		require.Len(t, missions, 3)
		assert.Equal(t, []int64{1, 2, 3}, missionIds(missions))

		missions, err = f.missionRepo.GetByDateRange(context.Background(), q,
			models.NewDate(1944, time.January, 1), models.NewDate(1944, time.December, 31))
		require.NoError(t, err)
		assert.Empty(t, missions)
		assert.NotNil(t, missions)
		return nil
	})
}

func TestJoinQueriesKeepOneRowPerTarget(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)})
	f.addMission(t, models.Mission{Id: 2, Date: models.NewDate(1943, time.February, 2)})
	f.addMission(t, models.Mission{Id: 3, Date: models.NewDate(1943, time.February, 16)})

	f.addTarget(t, models.Target{MissionId: 1, Industry: "Shipyard", CityId: f.bremen.Id, TargetTypeId: &f.naval.Id})
	f.addTarget(t, models.Target{MissionId: 1, Industry: "Aircraft factory", CityId: f.bremen.Id, TargetTypeId: &f.industrial.Id})
	f.addTarget(t, models.Target{MissionId: 2, Industry: "Shipyard", CityId: f.lorient.Id, TargetTypeId: &f.naval.Id})
	f.addTarget(t, models.Target{MissionId: 3, Industry: "U-boat pens", CityId: f.lorient.Id})
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		missions, err := f.missionRepo.GetByCountry(ctx, q, "Germany")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 1}, missionIds(missions))

		missions, err = f.missionRepo.GetByCountry(ctx, q, "Italy")
		require.NoError(t, err)
		assert.Empty(t, missions)

		missions, err = f.missionRepo.GetByTargetIndustry(ctx, q, "Shipyard")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, missionIds(missions))

		missions, err = f.missionRepo.GetByTargetType(ctx, q, "Naval base")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, missionIds(missions))

		missions, err = f.missionRepo.GetByTargetType(ctx, q, "Airfield")
		require.NoError(t, err)
		assert.Empty(t, missions)
		return nil
	})
}

func TestUpdateAttackResults(t *testing.T) {
	f := newFixture(t)
	mission := f.addMission(t, models.Mission{
		Id:               1,
		Date:             models.NewDate(1943, time.January, 27),
		AircraftReturned: ptr(60.0),
		AircraftLost:     ptr(3.0),
	})
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		mission.AircraftLost = ptr(4.0)
		mission.AircraftDamaged = ptr(12.5)
		return f.missionRepo.UpdateAttackResults(ctx, q, mission)
	})

	inSession(t, func(q Querier) error {
		got, err := f.missionRepo.GetById(ctx, q, 1)
		require.NoError(t, err)
		assert.Equal(t, 60.0, *got.AircraftReturned)
		assert.Equal(t, 4.0, *got.AircraftLost)
		assert.Equal(t, 12.5, *got.AircraftDamaged)
		assert.Nil(t, got.AircraftFailed)
		return nil
	})
}

func TestDeleteMissionCascadesToTargets(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)})
	f.addMission(t, models.Mission{Id: 2, Date: models.NewDate(1943, time.February, 2)})
	for range 3 {
		f.addTarget(t, models.Target{MissionId: 1, Industry: "Shipyard", CityId: f.bremen.Id})
	}
	f.addTarget(t, models.Target{MissionId: 2, Industry: "Shipyard", CityId: f.bremen.Id})
	ctx := context.Background()

	before := countRows(t, "targets")
	inSession(t, func(q Querier) error {
		return f.missionRepo.Delete(ctx, q, 1)
	})

	assert.Equal(t, before-3, countRows(t, "targets"))
	assert.Equal(t, 1, countRows(t, "missions"))
	inSession(t, func(q Querier) error {
		targets, err := f.targetRepo.GetByMissionId(ctx, q, 1)
		require.NoError(t, err)
		assert.Empty(t, targets)
		return nil
	})
}

func TestAddTargetReferentialViolation(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)})

	tests := []struct {
		name   string
		target models.Target
	}{
		{name: "missing mission", target: models.Target{MissionId: 42, Industry: "Oil", CityId: f.bremen.Id}},
		{name: "missing city", target: models.Target{MissionId: 1, Industry: "Oil", CityId: 9999}},
		{name: "missing target type", target: models.Target{MissionId: 1, Industry: "Oil", CityId: f.bremen.Id, TargetTypeId: ptr(int64(9999))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.WithSession(context.Background(), func(q Querier) error {
				_, err := f.targetRepo.Add(context.Background(), q, tt.target)
				return err
			})
			assert.True(t, myerrors.IsKind(err, myerrors.KindReferentialViolation), "got %v", err)
		})
	}
	assert.Equal(t, 0, countRows(t, "targets"))
}

func TestTargetRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)})
	saved := f.addTarget(t, models.Target{
		MissionId:    1,
		Industry:     "Shipyard",
		CityId:       f.bremen.Id,
		TargetTypeId: &f.naval.Id,
		Priority:     ptr(int32(2)),
	})
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		got, err := f.targetRepo.GetById(ctx, q, saved.Id)
		require.NoError(t, err)
		assert.Equal(t, saved, got)

		_, err = f.targetRepo.GetById(ctx, q, saved.Id+100)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
		return nil
	})
}

func TestCountryDeleteCascadesToCities(t *testing.T) {
	f := newFixture(t)
	countries := NewMySQLCountryRepository()
	cities := NewMySQLCityRepository()
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		return countries.Delete(ctx, q, f.germany.Id)
	})

	inSession(t, func(q Querier) error {
		_, err := cities.GetById(ctx, q, f.bremen.Id)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))

		remaining, err := cities.GetAll(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, []models.City{f.lorient}, remaining)
		return nil
	})
}

func TestCountryDeleteBlockedByTargets(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)})
	f.addTarget(t, models.Target{MissionId: 1, Industry: "Shipyard", CityId: f.bremen.Id})

	err := store.WithSession(context.Background(), func(q Querier) error {
		return NewMySQLCountryRepository().Delete(context.Background(), q, f.germany.Id)
	})

	assert.True(t, myerrors.IsKind(err, myerrors.KindReferentialViolation), "got %v", err)
	assert.Equal(t, 2, countRows(t, "countries"))
}

func TestGeographyUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := store.WithSession(ctx, func(q Querier) error {
		_, err := NewMySQLCountryRepository().Add(ctx, q, models.Country{Name: f.germany.Name})
		return err
	})
	assert.True(t, myerrors.IsKind(err, myerrors.KindConflict))

	err = store.WithSession(ctx, func(q Querier) error {
		_, err := NewMySQLTargetTypeRepository().Add(ctx, q, models.TargetType{Name: "Industrial"})
		return err
	})
	assert.True(t, myerrors.IsKind(err, myerrors.KindConflict))

	err = store.WithSession(ctx, func(q Querier) error {
		_, err := NewMySQLCityRepository().Add(ctx, q, models.City{Name: "Atlantis", CountryId: 9999})
		return err
	})
	assert.True(t, myerrors.IsKind(err, myerrors.KindReferentialViolation))
}

func TestColumnLimitsAreValidationErrors(t *testing.T) {
	f := newFixture(t)
	f.addMission(t, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)})
	ctx := context.Background()

	err := store.WithSession(ctx, func(q Querier) error {
		_, err := f.targetRepo.Add(ctx, q, models.Target{MissionId: 1, Industry: strings.Repeat("x", 256), CityId: f.bremen.Id})
		return err
	})
	assert.True(t, myerrors.IsKind(err, myerrors.KindValidation), "got %v", err)

	for _, city := range []models.City{
		{Name: "Nowhere", CountryId: f.germany.Id, Latitude: ptr(500.0)},
		{Name: "Nowhere", CountryId: f.germany.Id, Longitude: ptr(-180.5)},
		{Name: "Nowhere", CountryId: f.germany.Id, Latitude: ptr(1500.0)},
	} {
		err = store.WithSession(ctx, func(q Querier) error {
			_, err := NewMySQLCityRepository().Add(ctx, q, city)
			return err
		})
		assert.True(t, myerrors.IsKind(err, myerrors.KindValidation), "got %v", err)
	}
	assert.Equal(t, 0, countRows(t, "targets"))
	assert.Equal(t, 2, countRows(t, "cities"))
}

func TestCitiesByCountry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inSession(t, func(q Querier) error {
		cities, err := NewMySQLCityRepository().GetByCountryId(ctx, q, f.germany.Id)
		require.NoError(t, err)
		require.Len(t, cities, 1)
		assert.Equal(t, f.bremen, cities[0])
		assert.Equal(t, 53.0793, *cities[0].Latitude)

		all, err := NewMySQLTargetTypeRepository().GetAll(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, []models.TargetType{f.naval, f.industrial}, all)

		attackTypes, err := NewMySQLAttackTypeRepository().GetAll(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, []models.AttackType{f.attackType}, attackTypes)
		return nil
	})
}

func TestSessionRollsBackOnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := store.WithSession(ctx, func(q Querier) error {
		if _, err := f.missionRepo.Add(ctx, q, models.Mission{Id: 1, Date: models.NewDate(1943, time.January, 27)}); err != nil {
			return err
		}
		_, err := f.targetRepo.Add(ctx, q, models.Target{MissionId: 1, Industry: "Oil", CityId: 9999})
		return err
	})

	require.Error(t, err)
	assert.Equal(t, 0, countRows(t, "missions"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

func missionIds(missions []models.Mission) []int64 {
	ids := make([]int64, 0, len(missions))
	for _, m := range missions {
		ids = append(ids, m.Id)
	}
	return ids
}
