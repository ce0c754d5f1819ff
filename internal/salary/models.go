package salary

import (
	"time"

	"daycare/internal/dates"
)

// Salary is one pay slip for a staff member.
type Salary struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	UserName      string     `json:"user_name,omitempty" db:"-"`
	SalaryDate    dates.Date `json:"salary_date" db:"salary_date"`
	BasicSalary   float64    `json:"basic_salary" db:"basic_salary"`
	OverTime      float64    `json:"over_time" db:"over_time"`
	FuelAllowance float64    `json:"fuel_allowance" db:"fuel_allowance"`
	NetSalary     float64    `json:"net_salary" db:"net_salary"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
