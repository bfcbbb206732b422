package balance

import (
	"time"

	"go-hr-ticketing/internal/domain"

	"github.com/google/uuid"
)

// CountedStatus is the only leave request status that consumes balance.
const CountedStatus = "final-approved"

// LeaveTaken and LeaveRemaining are derived rows, one per employee,
// rewritten in full on every recompute.
type LeaveTaken struct {
	EmployeeID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ApprovedSick      int       `gorm:"not null"`
	ApprovedPlanned   int       `gorm:"not null"`
	ApprovedEmergency int       `gorm:"not null"`
	UpdatedAt         time.Time
}

func (LeaveTaken) TableName() string {
	return "leave_taken"
}

type LeaveRemaining struct {
	EmployeeID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RemainingSick      int       `gorm:"not null"`
	RemainingPlanned   int       `gorm:"not null"`
	RemainingEmergency int       `gorm:"not null"`
	UpdatedAt          time.Time
}

func (LeaveRemaining) TableName() string {
	return "leave_remaining"
}

// Counts is a per leave type tally of days or requests.
type Counts struct {
	Sick      int `json:"sick"`
	Planned   int `json:"planned"`
	Emergency int `json:"emergency"`
}

func (c Counts) Of(t domain.LeaveType) int {
	switch t {
	case domain.LeaveSick:
		return c.Sick
	case domain.LeavePlanned:
		return c.Planned
	case domain.LeaveEmergency:
		return c.Emergency
	}
	return 0
}

func (c *Counts) Add(t domain.LeaveType, n int) {
	switch t {
	case domain.LeaveSick:
		c.Sick += n
	case domain.LeavePlanned:
		c.Planned += n
	case domain.LeaveEmergency:
		c.Emergency += n
	}
}

func (c Counts) Minus(o Counts) Counts {
	return Counts{
		Sick:      c.Sick - o.Sick,
		Planned:   c.Planned - o.Planned,
		Emergency: c.Emergency - o.Emergency,
	}
}

type Balance struct {
	EmployeeID  uuid.UUID `json:"employee_id"`
	Entitlement Counts    `json:"entitlement"`
	Taken       Counts    `json:"taken"`
	Remaining   Counts    `json:"remaining"`
}
