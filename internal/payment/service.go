package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/metrics"
	"daycare/internal/user"
)

// CreateInput carries a new payment.
type CreateInput struct {
	UserID      int64
	Courses     []Course
	TotalAmount *float64
	Status      string
}

// UpdateInput carries the fields present in a partial update.
type UpdateInput struct {
	UserID      *int64
	Courses     *[]Course
	TotalAmount *float64
	Status      *string
}

// Service manages payments.
type Service struct {
	repo  Repository
	users user.Repository
}

// NewService creates a service.
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Payment, error) {
	fields, err := s.checkUser(ctx, in.UserID)
	if err != nil {
		return Payment{}, err
	}
	fields = append(fields, checkCourses(in.Courses)...)
	if in.TotalAmount == nil {
		fields = append(fields, apperr.Field("total_amount", "The total amount field is required."))
	} else {
		fields = append(fields, checkAmount(*in.TotalAmount)...)
	}
	if in.Status == "" {
		fields = append(fields, apperr.Field("status", "The status field is required."))
	} else {
		fields = append(fields, checkStatus(in.Status)...)
	}
	if len(fields) > 0 {
		return Payment{}, apperr.Validation("", fields...)
	}

	p, err := s.repo.Create(ctx, Payment{
		UserID:      in.UserID,
		Courses:     in.Courses,
		TotalAmount: *in.TotalAmount,
		Status:      Status(in.Status),
	})
	if err != nil {
		return Payment{}, err
	}
	metrics.RecordsWritten.WithLabelValues("payment", "create").Inc()
	return s.withName(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Payment, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Payment{}, err
	}

	var fields []apperr.FieldError
	if in.UserID != nil {
		userFields, err := s.checkUser(ctx, *in.UserID)
		if err != nil {
			return Payment{}, err
		}
		fields = append(fields, userFields...)
		p.UserID = *in.UserID
	}
	if in.Courses != nil {
		fields = append(fields, checkCourses(*in.Courses)...)
		p.Courses = *in.Courses
	}
	if in.TotalAmount != nil {
		fields = append(fields, checkAmount(*in.TotalAmount)...)
		p.TotalAmount = *in.TotalAmount
	}
	if in.Status != nil {
		fields = append(fields, checkStatus(*in.Status)...)
		p.Status = Status(*in.Status)
	}
	if len(fields) > 0 {
		return Payment{}, apperr.Validation("", fields...)
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return Payment{}, err
	}
	metrics.RecordsWritten.WithLabelValues("payment", "update").Inc()
	return s.withName(ctx, updated)
}

func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Payment{}, err
	}
	return s.withName(ctx, p)
}

// List returns every payment labelled with its owner's name.
func (s *Service) List(ctx context.Context) ([]Payment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.UserID)
	}
	owners, err := s.users.Lookup(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "lookup payment owners")
	}
	for i := range payments {
		payments[i].UserName = owners[payments[i].UserID].Name
	}
	return payments, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordsWritten.WithLabelValues("payment", "delete").Inc()
	return nil
}

func (s *Service) withName(ctx context.Context, p Payment) (Payment, error) {
	owners, err := s.users.Lookup(ctx, []int64{p.UserID})
	if err != nil {
		return Payment{}, errors.Wrap(err, "lookup payment owner")
	}
	p.UserName = owners[p.UserID].Name
	return p, nil
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

func checkCourses(courses []Course) []apperr.FieldError {
	if len(courses) == 0 {
		return []apperr.FieldError{apperr.Field("courses", "The courses field is required.")}
	}
	var fields []apperr.FieldError
	for i, c := range courses {
		nameField := fmt.Sprintf("courses.%d.course_name", i)
		switch {
		case strings.TrimSpace(c.CourseName) == "":
			fields = append(fields, apperr.Field(nameField, "The %s field is required.", nameField))
		case len(c.CourseName) > 255:
			fields = append(fields, apperr.Field(nameField, "The %s may not be greater than 255 characters.", nameField))
		}
		if c.Amount < 0 {
			amountField := fmt.Sprintf("courses.%d.amount", i)
			fields = append(fields, apperr.Field(amountField, "The %s must be at least 0.", amountField))
		}
	}
	return fields
}

func checkAmount(v float64) []apperr.FieldError {
	if v < 0 {
		return []apperr.FieldError{apperr.Field("total_amount", "The total amount must be at least 0.")}
	}
	return nil
}

func checkStatus(v string) []apperr.FieldError {
	if !Status(v).Valid() {
		return []apperr.FieldError{apperr.Field("status", "The selected status is invalid.")}
	}
	return nil
}
