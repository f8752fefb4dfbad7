package model

type Role string

const (
	RoleManager  Role = "Manager"
	RoleChef     Role = "Chef"
	RoleWaiter   Role = "Waiter"
	RoleCashier  Role = "Cashier"
	RoleDelivery Role = "Delivery"
)

var Roles = []Role{RoleManager, RoleChef, RoleWaiter, RoleCashier, RoleDelivery}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type Employee struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name" validate:"required"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email" validate:"omitempty,email"`
	Role     Role           `json:"role" validate:"oneof=Manager Chef Waiter Cashier Delivery"`
	Status   EmployeeStatus `json:"status" validate:"oneof=active inactive"`
	JoinDate Date           `json:"joinDate"`
}

// Toggled flips the employee between active and inactive.
func (e Employee) Toggled() Employee {
	if e.Status == EmployeeActive {
		e.Status = EmployeeInactive
	} else {
		e.Status = EmployeeActive
	}
	return e
}
