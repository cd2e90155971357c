package models

type Mission struct {
	Id                int64    `json:"missionId" db:"mission_id"`
	Date              Date     `json:"missionDate" db:"mission_date"`
	AttackTypeId      *int64   `json:"attackTypeId" db:"attack_type_id"`
	AirborneAircraft  *float64 `json:"airborneAircraft" db:"airborne_aircraft"`
	AttackingAircraft *float64 `json:"attackingAircraft" db:"attacking_aircraft"`
	BombingAircraft   *float64 `json:"bombingAircraft" db:"bombing_aircraft"`
	AircraftReturned  *float64 `json:"aircraftReturned" db:"aircraft_returned"`
	AircraftFailed    *float64 `json:"aircraftFailed" db:"aircraft_failed"`
	AircraftDamaged   *float64 `json:"aircraftDamaged" db:"aircraft_damaged"`
	AircraftLost      *float64 `json:"aircraftLost" db:"aircraft_lost"`
	Targets           []Target `json:"targets,omitempty"`
}

// NewMission is the input of mission creation. Aircraft counts left nil are
// stored as NULL, not zero.
type NewMission struct {
	Date              *Date    `json:"missionDate" binding:"required"`
	AttackTypeId      *int64   `json:"attackTypeId" binding:"omitempty,gt=0"`
	AirborneAircraft  *float64 `json:"airborneAircraft"`
	AttackingAircraft *float64 `json:"attackingAircraft"`
	BombingAircraft   *float64 `json:"bombingAircraft"`
	AircraftReturned  *float64 `json:"aircraftReturned"`
	AircraftFailed    *float64 `json:"aircraftFailed"`
	AircraftDamaged   *float64 `json:"aircraftDamaged"`
	AircraftLost      *float64 `json:"aircraftLost"`
}

func (n NewMission) ToMission(id int64) Mission {
	m := Mission{
		Id:                id,
		AttackTypeId:      n.AttackTypeId,
		AirborneAircraft:  n.AirborneAircraft,
		AttackingAircraft: n.AttackingAircraft,
		BombingAircraft:   n.BombingAircraft,
		AircraftReturned:  n.AircraftReturned,
		AircraftFailed:    n.AircraftFailed,
		AircraftDamaged:   n.AircraftDamaged,
		AircraftLost:      n.AircraftLost,
	}
	if n.Date != nil {
		m.Date = *n.Date
	}
	return m
}

// AttackResultsUpdate lists the mission fields that may change after
// creation. Nil fields keep their stored value.
type AttackResultsUpdate struct {
	AircraftReturned *float64 `json:"aircraftReturned"`
	AircraftFailed   *float64 `json:"aircraftFailed"`
	AircraftDamaged  *float64 `json:"aircraftDamaged"`
	AircraftLost     *float64 `json:"aircraftLost"`
}

func (u AttackResultsUpdate) Apply(m *Mission) {
	if u.AircraftReturned != nil {
		m.AircraftReturned = u.AircraftReturned
	}
	if u.AircraftFailed != nil {
		m.AircraftFailed = u.AircraftFailed
	}
	if u.AircraftDamaged != nil {
		m.AircraftDamaged = u.AircraftDamaged
	}
	if u.AircraftLost != nil {
		m.AircraftLost = u.AircraftLost
	}
}

func (u AttackResultsUpdate) IsEmpty() bool {
	return u.AircraftReturned == nil && u.AircraftFailed == nil &&
		u.AircraftDamaged == nil && u.AircraftLost == nil
}

type DeleteResult struct {
	Success bool `json:"success"`
}
