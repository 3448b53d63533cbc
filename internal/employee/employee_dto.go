package employee

type CreateEmployeeRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Designation string `json:"designation" binding:"required"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	JoiningDate string `json:"joining_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Designation string `json:"designation" binding:"required"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Department  string `json:"department,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	JoiningDate string `json:"joining_date,omitempty"`
}
