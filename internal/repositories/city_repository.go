package repositories

import (
	"context"
	"database/sql"

	"github.com/4oBuko/mission-archive/internal/models"
	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/pkg/errors"
)

type CityRepository interface {
	Add(ctx context.Context, q Querier, city models.City) (models.City, error)
	GetById(ctx context.Context, q Querier, id int64) (models.City, error)
	GetAll(ctx context.Context, q Querier) ([]models.City, error)
	GetByCountryId(ctx context.Context, q Querier, countryId int64) ([]models.City, error)
}

const cityColumns = `city_id, city_name, country_id, latitude, longitude`

type MySQLCityRepository struct{}

func NewMySQLCityRepository() *MySQLCityRepository {
	return &MySQLCityRepository{}
}

func (m *MySQLCityRepository) Add(ctx context.Context, q Querier, city models.City) (models.City, error) {
	newCityQuery := `INSERT INTO cities (city_name, country_id, latitude, longitude) VALUES (?, ?, ?, ?)`
	result, err := q.ExecContext(ctx, newCityQuery, city.Name, city.CountryId, city.Latitude, city.Longitude)
	if err != nil {
		return models.City{}, translate(err, "failed to add new city",
			"city references a country that does not exist",
			"city already exists")
	}
	city.Id, err = result.LastInsertId()
	if err != nil {
		return models.City{}, errors.Wrap(err, "failed to get last insert id")
	}
	return city, nil
}

func (m *MySQLCityRepository) GetById(ctx context.Context, q Querier, id int64) (models.City, error) {
	getByIdQuery := `SELECT ` + cityColumns + ` FROM cities WHERE city_id = ?`
	city, err := scanCity(q.QueryRowContext(ctx, getByIdQuery, id))
	if err != nil {
		if isNoRows(err) {
			return models.City{}, myerrors.NotFound("City", id)
		}
		return models.City{}, errors.Wrap(err, "failed to get city by id")
	}
	return city, nil
}

func (m *MySQLCityRepository) GetAll(ctx context.Context, q Querier) ([]models.City, error) {
	getAllQuery := `SELECT ` + cityColumns + ` FROM cities ORDER BY city_id`
	return queryCities(ctx, q, getAllQuery)
}

func (m *MySQLCityRepository) GetByCountryId(ctx context.Context, q Querier, countryId int64) ([]models.City, error) {
	byCountryQuery := `SELECT ` + cityColumns + ` FROM cities WHERE country_id = ? ORDER BY city_id`
	return queryCities(ctx, q, byCountryQuery, countryId)
}

func queryCities(ctx context.Context, q Querier, query string, args ...any) ([]models.City, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query cities")
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan failed")
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration failed")
	}
	return cities, nil
}

func scanCity(row rowScanner) (models.City, error) {
	var (
		c        models.City
		lat, lon sql.NullFloat64
	)
	if err := row.Scan(&c.Id, &c.Name, &c.CountryId, &lat, &lon); err != nil {
		return models.City{}, err
	}
	c.Latitude = nullFloat(lat)
	c.Longitude = nullFloat(lon)
	return c, nil
}
