package employee

import (
	"time"

	"go-hr-ticketing/internal/department"

	"github.com/google/uuid"
)

// GenderProfile holds the yearly day allowance per leave type. Every
// employee references one; the balance ledger reads it as entitlement.
type GenderProfile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Gender         string    `gorm:"size:20;not null;uniqueIndex:uq_gender_profile_gender"`
	PlannedLeave   int       `gorm:"not null"`
	SickLeave      int       `gorm:"not null"`
	EmergencyLeave int       `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (GenderProfile) TableName() string {
	return "genders"
}

type Employee struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"size:100;not null"`
	Email           string     `gorm:"uniqueIndex:uq_employee_email;not null"`
	Role            string     `gorm:"size:50;not null;index"`
	DepartmentID    *uuid.UUID `gorm:"type:uuid"`
	GenderProfileID uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Department    *department.Department `gorm:"foreignKey:DepartmentID"`
	GenderProfile *GenderProfile         `gorm:"foreignKey:GenderProfileID"`
}
