package repositories

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/pkg/errors"
)

type AttackTypeRepository interface {
	Add(ctx context.Context, q Querier, attackType models.AttackType) (models.AttackType, error)
	GetAll(ctx context.Context, q Querier) ([]models.AttackType, error)
}

type MySQLAttackTypeRepository struct{}

func NewMySQLAttackTypeRepository() *MySQLAttackTypeRepository {
	return &MySQLAttackTypeRepository{}
}

func (m *MySQLAttackTypeRepository) Add(ctx context.Context, q Querier, attackType models.AttackType) (models.AttackType, error) {
	newAttackTypeQuery := `INSERT INTO attack_types (attack_type_name) VALUES (?)`
	result, err := q.ExecContext(ctx, newAttackTypeQuery, attackType.Name)
	if err != nil {
		return models.AttackType{}, errors.Wrap(err, "failed to add new attack type")
	}
	attackType.Id, err = result.LastInsertId()
	if err != nil {
		return models.AttackType{}, errors.Wrap(err, "failed to get last insert id")
	}
	return attackType, nil
}

func (m *MySQLAttackTypeRepository) GetAll(ctx context.Context, q Querier) ([]models.AttackType, error) {
	getAllQuery := `SELECT attack_type_id, attack_type_name FROM attack_types ORDER BY attack_type_id`
	rows, err := q.QueryContext(ctx, getAllQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all attack types")
	}
	defer rows.Close()

	attackTypes := []models.AttackType{}
	for rows.Next() {
		var at models.AttackType
		if err := rows.Scan(&at.Id, &at.Name); err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		attackTypes = append(attackTypes, at)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration failed")
	}
	return attackTypes, nil
}
