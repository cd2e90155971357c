package models

type Target struct {
	Id           int64  `json:"targetId" db:"target_id"`
	MissionId    int64  `json:"missionId" db:"mission_id"`
	Industry     string `json:"targetIndustry" db:"target_industry"`
	CityId       int64  `json:"cityId" db:"city_id"`
	TargetTypeId *int64 `json:"targetTypeId" db:"target_type_id"`
	Priority     *int32 `json:"targetPriority" db:"target_priority"`
}

type NewTarget struct {
	MissionId    int64  `json:"missionId"`
	Industry     string `json:"targetIndustry" binding:"required,min=1,max=255"`
	CityId       int64  `json:"cityId" binding:"required,gt=0"`
	TargetTypeId *int64 `json:"targetTypeId" binding:"required,gt=0"`
	Priority     *int32 `json:"targetPriority"`
}

func (n NewTarget) ToTarget() Target {
	return Target{
		MissionId:    n.MissionId,
		Industry:     n.Industry,
		CityId:       n.CityId,
		TargetTypeId: n.TargetTypeId,
		Priority:     n.Priority,
	}
}
