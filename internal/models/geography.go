package models

type Country struct {
	Id     int64  `json:"countryId" db:"country_id"`
	Name   string `json:"countryName" db:"country_name" binding:"required,min=1,max=100"`
	Cities []City `json:"cities,omitempty"`
}

type City struct {
	Id        int64    `json:"cityId" db:"city_id"`
	Name      string   `json:"cityName" db:"city_name" binding:"required,min=1,max=100"`
	CountryId int64    `json:"countryId" db:"country_id" binding:"required,gt=0"`
	Latitude  *float64 `json:"latitude" db:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" db:"longitude" binding:"omitempty,longitude"`
}

type TargetType struct {
	Id   int64  `json:"targetTypeId" db:"target_type_id"`
	Name string `json:"targetTypeName" db:"target_type_name" binding:"required,min=1,max=255"`
}

type AttackType struct {
	Id   int64  `json:"attackTypeId" db:"attack_type_id"`
	Name string `json:"attackTypeName" db:"attack_type_name" binding:"required,min=1,max=100"`
}
