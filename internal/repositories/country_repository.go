package repositories

import (
	"context"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/pkg/errors"
)

type CountryRepository interface {
	Add(ctx context.Context, q Querier, country models.Country) (models.Country, error)
	GetById(ctx context.Context, q Querier, id int64) (models.Country, error)
	GetAll(ctx context.Context, q Querier) ([]models.Country, error)
	Delete(ctx context.Context, q Querier, id int64) error
}

type MySQLCountryRepository struct{}

func NewMySQLCountryRepository() *MySQLCountryRepository {
	return &MySQLCountryRepository{}
}

func (m *MySQLCountryRepository) Add(ctx context.Context, q Querier, country models.Country) (models.Country, error) {
	newCountryQuery := `INSERT INTO countries (country_name) VALUES (?)`
	result, err := q.ExecContext(ctx, newCountryQuery, country.Name)
	if err != nil {
		return models.Country{}, translate(err, "failed to add new country",
			"country references a missing entity",
			"country "+country.Name+" already exists")
	}
	country.Id, err = result.LastInsertId()
	if err != nil {
		return models.Country{}, errors.Wrap(err, "failed to get last insert id")
	}
	return country, nil
}

func (m *MySQLCountryRepository) GetById(ctx context.Context, q Querier, id int64) (models.Country, error) {
	var c models.Country
	getByIdQuery := `SELECT country_id, country_name FROM countries WHERE country_id = ?`
	err := q.QueryRowContext(ctx, getByIdQuery, id).Scan(&c.Id, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return models.Country{}, myerrors.NotFound("Country", id)
		}
		return models.Country{}, errors.Wrap(err, "failed to get country by id")
	}
	return c, nil
}

func (m *MySQLCountryRepository) GetAll(ctx context.Context, q Querier) ([]models.Country, error) {
	getAllQuery := `SELECT country_id, country_name FROM countries ORDER BY country_id`
	rows, err := q.QueryContext(ctx, getAllQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all countries")
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.Id, &c.Name); err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration failed")
	}
	return countries, nil
}

// Delete removes the country together with its cities. It fails while any
// of those cities is still the location of a target.
func (m *MySQLCountryRepository) Delete(ctx context.Context, q Querier, id int64) error {
	deleteQuery := `DELETE FROM countries WHERE country_id = ?`
	res, err := q.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return translate(err, "failed to delete country",
			"country has cities that are still referenced by targets",
			"country cannot be deleted")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return myerrors.NotFound("Country", id)
	}
	return nil
}
