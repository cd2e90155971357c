package services

import (
	"strings"
	"unicode/utf8"

	"github.com/4oBuko/mission-archive/internal/myerrors"
)

// Column widths of schema.sql.
const (
	maxCountryNameLength    = 100
	maxCityNameLength       = 100
	maxTargetTypeNameLength = 255
	maxAttackTypeNameLength = 100
	maxIndustryLength       = 255
)

// requiredText trims value and checks it is neither blank nor wider than its
// column.
func requiredText(field, value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", myerrors.Validation("%s must not be empty", field)
	}
	if utf8.RuneCountInString(value) > maxLength {
		return "", myerrors.Validation("%s must be at most %d characters", field, maxLength)
	}
	return value, nil
}

func inRange(field string, value *float64, limit float64) error {
	if value != nil && (*value < -limit || *value > limit) {
		return myerrors.Validation("%s must be between %g and %g", field, -limit, limit)
	}
	return nil
}
