package employee

type CreateEmployeeRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Role            string `json:"role" binding:"required"`
	DepartmentID    string `json:"department_id" binding:"omitempty,uuid"`
	GenderProfileID string `json:"gender_profile_id" binding:"required,uuid"`
}

type UpdateEmployeeRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Role            string `json:"role" binding:"required"`
	DepartmentID    string `json:"department_id" binding:"omitempty,uuid"`
	GenderProfileID string `json:"gender_profile_id" binding:"required,uuid"`
}

type UpsertGenderProfileRequest struct {
	Gender         string `json:"gender" binding:"required,oneof=Male Female"`
	PlannedLeave   *int   `json:"planned_leave" binding:"required,min=0"`
	SickLeave      *int   `json:"sick_leave" binding:"required,min=0"`
	EmergencyLeave *int   `json:"emergency_leave" binding:"required,min=0"`
}

type EmployeeDepartmentResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TLMail string `json:"tl_mail"`
}

type EmployeeResponse struct {
	ID              string                      `json:"id"`
	Name            string                      `json:"name"`
	Email           string                      `json:"email"`
	Role            string                      `json:"role"`
	DepartmentID    string                      `json:"department_id,omitempty"`
	GenderProfileID string                      `json:"gender_profile_id"`
	Gender          string                      `json:"gender,omitempty"`
	Department      *EmployeeDepartmentResponse `json:"department,omitempty"`
}

type EmployeeOptionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type GenderProfileResponse struct {
	ID             string `json:"id"`
	Gender         string `json:"gender"`
	PlannedLeave   int    `json:"planned_leave"`
	SickLeave      int    `json:"sick_leave"`
	EmergencyLeave int    `json:"emergency_leave"`
}
