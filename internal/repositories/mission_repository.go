package repositories

import (
	"context"
	"database/sql"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/pkg/errors"
)

type MissionRepository interface {
	Add(ctx context.Context, q Querier, mission models.Mission) (models.Mission, error)
	GetById(ctx context.Context, q Querier, id int64) (models.Mission, error)
	GetAll(ctx context.Context, q Querier) ([]models.Mission, error)
	GetByDateRange(ctx context.Context, q Querier, start, end models.Date) ([]models.Mission, error)
	GetByCountry(ctx context.Context, q Querier, countryName string) ([]models.Mission, error)
	GetByTargetIndustry(ctx context.Context, q Querier, industry string) ([]models.Mission, error)
	GetByTargetType(ctx context.Context, q Querier, targetTypeName string) ([]models.Mission, error)
	UpdateAttackResults(ctx context.Context, q Querier, mission models.Mission) error
	Delete(ctx context.Context, q Querier, id int64) error
	MaxId(ctx context.Context, q Querier) (int64, error)
}

const missionColumns = `m.mission_id, m.mission_date, m.attack_type_id, m.airborne_aircraft,
	m.attacking_aircraft, m.bombing_aircraft, m.aircraft_returned, m.aircraft_failed,
	m.aircraft_damaged, m.aircraft_lost`

type MySQLMissionRepository struct{}

func NewMySQLMissionRepository() *MySQLMissionRepository {
	return &MySQLMissionRepository{}
}

func (m *MySQLMissionRepository) Add(ctx context.Context, q Querier, mission models.Mission) (models.Mission, error) {
	newMissionQuery := `INSERT INTO missions (mission_id, mission_date, attack_type_id, airborne_aircraft,
		attacking_aircraft, bombing_aircraft, aircraft_returned, aircraft_failed, aircraft_damaged, aircraft_lost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := q.ExecContext(ctx, newMissionQuery,
		mission.Id, mission.Date, mission.AttackTypeId, mission.AirborneAircraft,
		mission.AttackingAircraft, mission.BombingAircraft, mission.AircraftReturned,
		mission.AircraftFailed, mission.AircraftDamaged, mission.AircraftLost)
	if err != nil {
		return models.Mission{}, translate(err, "failed to add new mission",
			"mission references an attack type that does not exist",
			"mission id is already taken")
	}
	return mission, nil
}

func (m *MySQLMissionRepository) GetById(ctx context.Context, q Querier, id int64) (models.Mission, error) {
	getByIdQuery := `SELECT ` + missionColumns + ` FROM missions m WHERE m.mission_id = ?`
	mission, err := scanMission(q.QueryRowContext(ctx, getByIdQuery, id))
	if err != nil {
		if isNoRows(err) {
			return models.Mission{}, myerrors.NotFound("Mission", id)
		}
		return models.Mission{}, errors.Wrap(err, "failed to get mission by id")
	}
	return mission, nil
}

func (m *MySQLMissionRepository) GetAll(ctx context.Context, q Querier) ([]models.Mission, error) {
	getAllQuery := `SELECT ` + missionColumns + ` FROM missions m ORDER BY m.mission_id`
	return queryMissions(ctx, q, getAllQuery)
}

func (m *MySQLMissionRepository) GetByDateRange(ctx context.Context, q Querier, start, end models.Date) ([]models.Mission, error) {
	byDateQuery := `SELECT ` + missionColumns + ` FROM missions m
		WHERE m.mission_date BETWEEN ? AND ? ORDER BY m.mission_id`
	return queryMissions(ctx, q, byDateQuery, start, end)
}

// The join queries below return one row per matching target, so a mission
// with several matching targets is listed several times.

func (m *MySQLMissionRepository) GetByCountry(ctx context.Context, q Querier, countryName string) ([]models.Mission, error) {
	byCountryQuery := `SELECT ` + missionColumns + ` FROM missions m
		JOIN targets t ON t.mission_id = m.mission_id
		JOIN cities c ON c.city_id = t.city_id
		JOIN countries co ON co.country_id = c.country_id
		WHERE co.country_name = ?
		ORDER BY m.mission_id, t.target_id`
	return queryMissions(ctx, q, byCountryQuery, countryName)
}

func (m *MySQLMissionRepository) GetByTargetIndustry(ctx context.Context, q Querier, industry string) ([]models.Mission, error) {
	byIndustryQuery := `SELECT ` + missionColumns + ` FROM missions m
		JOIN targets t ON t.mission_id = m.mission_id
		WHERE t.target_industry = ?
		ORDER BY m.mission_id, t.target_id`
	return queryMissions(ctx, q, byIndustryQuery, industry)
}

func (m *MySQLMissionRepository) GetByTargetType(ctx context.Context, q Querier, targetTypeName string) ([]models.Mission, error) {
	byTargetTypeQuery := `SELECT ` + missionColumns + ` FROM missions m
		JOIN targets t ON t.mission_id = m.mission_id
		JOIN targettypes tt ON tt.target_type_id = t.target_type_id
		WHERE tt.target_type_name = ?
		ORDER BY m.mission_id, t.target_id`
	return queryMissions(ctx, q, byTargetTypeQuery, targetTypeName)
}

func (m *MySQLMissionRepository) UpdateAttackResults(ctx context.Context, q Querier, mission models.Mission) error {
	updateQuery := `UPDATE missions SET aircraft_returned = ?, aircraft_failed = ?,
		aircraft_damaged = ?, aircraft_lost = ? WHERE mission_id = ?`
	_, err := q.ExecContext(ctx, updateQuery, mission.AircraftReturned, mission.AircraftFailed,
		mission.AircraftDamaged, mission.AircraftLost, mission.Id)
	if err != nil {
		return errors.Wrap(err, "failed to update attack results")
	}
	return nil
}

func (m *MySQLMissionRepository) Delete(ctx context.Context, q Querier, id int64) error {
	deleteQuery := `DELETE FROM missions WHERE mission_id = ?`
	res, err := q.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete mission")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return myerrors.NotFound("Mission", id)
	}
	return nil
}

// MaxId returns the highest mission id, or 0 for an empty table. The scanned
// rows stay locked until the session ends so concurrent creators queue up.
func (m *MySQLMissionRepository) MaxId(ctx context.Context, q Querier) (int64, error) {
	var maxId int64
	maxIdQuery := `SELECT COALESCE(MAX(mission_id), 0) FROM missions FOR UPDATE`
	if err := q.QueryRowContext(ctx, maxIdQuery).Scan(&maxId); err != nil {
		return 0, errors.Wrap(err, "failed to get max mission id")
	}
	return maxId, nil
}

func queryMissions(ctx context.Context, q Querier, query string, args ...any) ([]models.Mission, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query missions")
	}
	defer rows.Close()

	missions := []models.Mission{}
	for rows.Next() {
		mission, err := scanMission(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		missions = append(missions, mission)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration failed")
	}
	return missions, nil
}

func scanMission(row rowScanner) (models.Mission, error) {
	var (
		mission      models.Mission
		attackTypeId sql.NullInt64
		counts       [7]sql.NullFloat64
	)
	err := row.Scan(&mission.Id, &mission.Date, &attackTypeId,
		&counts[0], &counts[1], &counts[2], &counts[3], &counts[4], &counts[5], &counts[6])
	if err != nil {
		return models.Mission{}, err
	}
	mission.AttackTypeId = nullInt64(attackTypeId)
	mission.AirborneAircraft = nullFloat(counts[0])
	mission.AttackingAircraft = nullFloat(counts[1])
	mission.BombingAircraft = nullFloat(counts[2])
	mission.AircraftReturned = nullFloat(counts[3])
	mission.AircraftFailed = nullFloat(counts[4])
	mission.AircraftDamaged = nullFloat(counts[5])
	mission.AircraftLost = nullFloat(counts[6])
	return mission, nil
}
