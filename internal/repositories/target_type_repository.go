package repositories

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/pkg/errors"
)

type TargetTypeRepository interface {
	Add(ctx context.Context, q Querier, targetType models.TargetType) (models.TargetType, error)
	GetById(ctx context.Context, q Querier, id int64) (models.TargetType, error)
	GetAll(ctx context.Context, q Querier) ([]models.TargetType, error)
}

type MySQLTargetTypeRepository struct{}

func NewMySQLTargetTypeRepository() *MySQLTargetTypeRepository {
	return &MySQLTargetTypeRepository{}
}

func (m *MySQLTargetTypeRepository) Add(ctx context.Context, q Querier, targetType models.TargetType) (models.TargetType, error) {
	newTargetTypeQuery := `INSERT INTO targettypes (target_type_name) VALUES (?)`
	result, err := q.ExecContext(ctx, newTargetTypeQuery, targetType.Name)
	if err != nil {
		return models.TargetType{}, translate(err, "failed to add new target type",
			"target type references a missing entity",
			"target type "+targetType.Name+" already exists")
	}
	targetType.Id, err = result.LastInsertId()
	if err != nil {
		return models.TargetType{}, errors.Wrap(err, "failed to get last insert id")
	}
	return targetType, nil
}

func (m *MySQLTargetTypeRepository) GetById(ctx context.Context, q Querier, id int64) (models.TargetType, error) {
	var tt models.TargetType
	getByIdQuery := `SELECT target_type_id, target_type_name FROM targettypes WHERE target_type_id = ?`
	err := q.QueryRowContext(ctx, getByIdQuery, id).Scan(&tt.Id, &tt.Name)
	if err != nil {
		if isNoRows(err) {
			return models.TargetType{}, myerrors.NotFound("TargetType", id)
		}
		return models.TargetType{}, errors.Wrap(err, "failed to get target type by id")
	}
	return tt, nil
}

func (m *MySQLTargetTypeRepository) GetAll(ctx context.Context, q Querier) ([]models.TargetType, error) {
	getAllQuery := `SELECT target_type_id, target_type_name FROM targettypes ORDER BY target_type_id`
	rows, err := q.QueryContext(ctx, getAllQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all target types")
	}
	defer rows.Close()

	targetTypes := []models.TargetType{}
	for rows.Next() {
		var tt models.TargetType
		if err := rows.Scan(&tt.Id, &tt.Name); err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		targetTypes = append(targetTypes, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration failed")
	}
	return targetTypes, nil
}
