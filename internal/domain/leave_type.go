package domain

import (
	"fmt"
	"strings"
)

// LeaveType is fixed reference data; the numeric values are stored.
type LeaveType int

const (
	LeaveEmergency LeaveType = 1
	LeaveSick      LeaveType = 2
	LeavePlanned   LeaveType = 3
)

var LeaveTypes = []LeaveType{LeaveEmergency, LeaveSick, LeavePlanned}

func (t LeaveType) Valid() bool {
	return t == LeaveEmergency || t == LeaveSick || t == LeavePlanned
}

func (t LeaveType) String() string {
	switch t {
	case LeaveEmergency:
		return "EmergencyLeave"
	case LeaveSick:
		return "SickLeave"
	case LeavePlanned:
		return "PlannedLeave"
	default:
		return fmt.Sprintf("LeaveType(%d)", int(t))
	}
}

// ParseLeaveType accepts the stored number or a name such as "sick",
// "SickLeave" or "planned".
func ParseLeaveType(s string) (LeaveType, error) {
	switch strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "leave")) {
	case "1", "emergency":
		return LeaveEmergency, nil
	case "2", "sick":
		return LeaveSick, nil
	case "3", "planned":
		return LeavePlanned, nil
	}
	return 0, fmt.Errorf("unknown leave type %q", s)
}
