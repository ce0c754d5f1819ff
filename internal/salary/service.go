package salary

import (
	"context"

	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/dates"
	"daycare/internal/metrics"
	"daycare/internal/user"
)

// Amounts are the monetary fields of a salary. A nil field is absent.
type Amounts struct {
	BasicSalary   *float64
	OverTime      *float64
	FuelAllowance *float64
	NetSalary     *float64
}

// CreateInput carries a new salary; every field is required.
type CreateInput struct {
	UserID     int64
	SalaryDate string
	Amounts
}

// UpdateInput carries the fields present in a partial update.
type UpdateInput struct {
	UserID     *int64
	SalaryDate *string
	Amounts
}

// Service manages salaries.
type Service struct {
	repo  Repository
	users user.Repository
}

// NewService creates a service.
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Salary, error) {
	fields, err := s.checkUser(ctx, in.UserID)
	if err != nil {
		return Salary{}, err
	}
	var sal Salary
	if in.SalaryDate == "" {
		fields = append(fields, apperr.Field("salary_date", "The salary date field is required."))
	} else {
		var dateFields []apperr.FieldError
		sal.SalaryDate, dateFields = parseDate(in.SalaryDate)
		fields = append(fields, dateFields...)
	}
	for _, a := range in.Amounts.fields() {
		if a.v == nil {
			fields = append(fields, apperr.Field(a.name, "The %s field is required.", a.label))
			continue
		}
		fields = append(fields, checkAmount(a)...)
	}
	if len(fields) > 0 {
		return Salary{}, apperr.Validation("", fields...)
	}

	sal.UserID = in.UserID
	in.Amounts.apply(&sal)
	created, err := s.repo.Create(ctx, sal)
	if err != nil {
		return Salary{}, err
	}
	metrics.RecordsWritten.WithLabelValues("salary", "create").Inc()
	return s.withName(ctx, created)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Salary, error) {
	sal, err := s.repo.Get(ctx, id)
	if err != nil {
		return Salary{}, err
	}

	var fields []apperr.FieldError
	if in.UserID != nil {
		userFields, err := s.checkUser(ctx, *in.UserID)
		if err != nil {
			return Salary{}, err
		}
		fields = append(fields, userFields...)
		sal.UserID = *in.UserID
	}
	if in.SalaryDate != nil {
		var dateFields []apperr.FieldError
		sal.SalaryDate, dateFields = parseDate(*in.SalaryDate)
		fields = append(fields, dateFields...)
	}
	for _, a := range in.Amounts.fields() {
		if a.v != nil {
			fields = append(fields, checkAmount(a)...)
		}
	}
	if len(fields) > 0 {
		return Salary{}, apperr.Validation("", fields...)
	}

	in.Amounts.apply(&sal)
	updated, err := s.repo.Update(ctx, sal)
	if err != nil {
		return Salary{}, err
	}
	metrics.RecordsWritten.WithLabelValues("salary", "update").Inc()
	return s.withName(ctx, updated)
}

func (s *Service) Get(ctx context.Context, id int64) (Salary, error) {
	sal, err := s.repo.Get(ctx, id)
	if err != nil {
		return Salary{}, err
	}
	return s.withName(ctx, sal)
}

func (s *Service) List(ctx context.Context) ([]Salary, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, list...)
}

// ForUser lists the salaries of one staff member.
func (s *Service) ForUser(ctx context.Context, userID int64) ([]Salary, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, list...)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordsWritten.WithLabelValues("salary", "delete").Inc()
	return nil
}

func (s *Service) withName(ctx context.Context, sal Salary) (Salary, error) {
	list, err := s.withNames(ctx, sal)
	if err != nil {
		return Salary{}, err
	}
	return list[0], nil
}

func (s *Service) withNames(ctx context.Context, list ...Salary) ([]Salary, error) {
	ids := make([]int64, 0, len(list))
	for _, sal := range list {
		ids = append(ids, sal.UserID)
	}
	owners, err := s.users.Lookup(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "lookup salary owners")
	}
	for i := range list {
		list[i].UserName = owners[list[i].UserID].Name
	}
	return list, nil
}

func (s *Service) checkUser(ctx context.Context, id int64) ([]apperr.FieldError, error) {
	if id <= 0 {
		return []apperr.FieldError{apperr.Field("user_id", "The user id field is required.")}, nil
	}
	found, err := s.users.Lookup(ctx, []int64{id})
	if err != nil {
		return nil, errors.Wrap(err, "lookup user")
	}
	if _, ok := found[id]; !ok {
		return []apperr.FieldError{apperr.Field("user_id", "The selected user id is invalid.")}, nil
	}
	return nil, nil
}

type amountField struct {
	name, label string
	v           *float64
}

func (a Amounts) fields() []amountField {
	return []amountField{
		{"basic_salary", "basic salary", a.BasicSalary},
		{"over_time", "over time", a.OverTime},
		{"fuel_allowance", "fuel allowance", a.FuelAllowance},
		{"net_salary", "net salary", a.NetSalary},
	}
}

func (a Amounts) apply(sal *Salary) {
	if a.BasicSalary != nil {
		sal.BasicSalary = *a.BasicSalary
	}
	if a.OverTime != nil {
		sal.OverTime = *a.OverTime
	}
	if a.FuelAllowance != nil {
		sal.FuelAllowance = *a.FuelAllowance
	}
	if a.NetSalary != nil {
		sal.NetSalary = *a.NetSalary
	}
}

func checkAmount(a amountField) []apperr.FieldError {
	if *a.v < 0 {
		return []apperr.FieldError{apperr.Field(a.name, "The %s must be at least 0.", a.label)}
	}
	return nil
}

func parseDate(raw string) (dates.Date, []apperr.FieldError) {
	d, err := dates.Parse(raw)
	if err != nil {
		return dates.Date{}, []apperr.FieldError{apperr.Field("salary_date", "The salary date is not a valid date.")}
	}
	return d, nil
}
