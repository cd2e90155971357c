package repositories

import (
	"context"
	"database/sql"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/pkg/errors"
)

type TargetRepository interface {
	Add(ctx context.Context, q Querier, target models.Target) (models.Target, error)
	GetById(ctx context.Context, q Querier, id int64) (models.Target, error)
	GetByMissionId(ctx context.Context, q Querier, missionId int64) ([]models.Target, error)
}

const targetColumns = `target_id, mission_id, target_industry, city_id, target_type_id, target_priority`

type MySQLTargetRepository struct{}

func NewMySQLTargetRepository() *MySQLTargetRepository {
	return &MySQLTargetRepository{}
}

// Add relies on the foreign keys of the targets table to reject unknown
// missions, cities and target types.
func (m *MySQLTargetRepository) Add(ctx context.Context, q Querier, target models.Target) (models.Target, error) {
	createTargetQuery := `INSERT INTO targets (mission_id, target_industry, city_id, target_type_id, target_priority)
		VALUES (?, ?, ?, ?, ?)`
	result, err := q.ExecContext(ctx, createTargetQuery,
		target.MissionId, target.Industry, target.CityId, target.TargetTypeId, target.Priority)
	if err != nil {
		return models.Target{}, translate(err, "failed to add new target",
			"target references a mission, city or target type that does not exist",
			"target already exists")
	}
	target.Id, err = result.LastInsertId()
	if err != nil {
		return models.Target{}, errors.Wrap(err, "failed to get last insert id")
	}
	return target, nil
}

func (m *MySQLTargetRepository) GetById(ctx context.Context, q Querier, id int64) (models.Target, error) {
	getByIdQuery := `SELECT ` + targetColumns + ` FROM targets WHERE target_id = ?`
	target, err := scanTarget(q.QueryRowContext(ctx, getByIdQuery, id))
	if err != nil {
		if isNoRows(err) {
			return models.Target{}, myerrors.NotFound("Target", id)
		}
		return models.Target{}, errors.Wrap(err, "failed to get target by id")
	}
	return target, nil
}

func (m *MySQLTargetRepository) GetByMissionId(ctx context.Context, q Querier, missionId int64) ([]models.Target, error) {
	getByMissionIdQuery := `SELECT ` + targetColumns + ` FROM targets WHERE mission_id = ? ORDER BY target_id`
	rows, err := q.QueryContext(ctx, getByMissionIdQuery, missionId)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get targets by mission id")
	}
	defer rows.Close()

	targets := []models.Target{}
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration failed")
	}
	return targets, nil
}

func scanTarget(row rowScanner) (models.Target, error) {
	var (
		t            models.Target
		targetTypeId sql.NullInt64
		priority     sql.NullInt32
	)
	if err := row.Scan(&t.Id, &t.MissionId, &t.Industry, &t.CityId, &targetTypeId, &priority); err != nil {
		return models.Target{}, err
	}
	t.TargetTypeId = nullInt64(targetTypeId)
	t.Priority = nullInt32(priority)
	return t, nil
}
