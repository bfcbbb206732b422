package department

type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	HeadName string `json:"head_name"`
	TLMail   string `json:"tl_mail" binding:"required,email"`
}

type UpdateDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	HeadName string `json:"head_name"`
	TLMail   string `json:"tl_mail" binding:"required,email"`
}

type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HeadName  string `json:"head_name"`
	TLMail    string `json:"tl_mail"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
