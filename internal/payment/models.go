package payment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Course is one billed line of a payment.
type Course struct {
	CourseName string  `json:"course_name"`
	Amount     float64 `json:"amount"`
}

// Courses is stored as a JSON array.
type Courses []Course

func (c Courses) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Course(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Courses) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*c = Courses{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("payment: cannot scan %T into Courses", src)
	}
	var out []Course
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*c = out
	return nil
}

// Payment is a parent's payment for one or more courses.
type Payment struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	UserName    string    `json:"user_name,omitempty" db:"-"`
	Courses     Courses   `json:"courses" db:"courses"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
