package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/child"
	"daycare/internal/dates"
	"daycare/internal/metrics"
	"daycare/internal/user"
)

// EntryInput is one submitted subject/status pair before validation.
type EntryInput struct {
	SubjectID int64
	Status    string
}

// CreateInput carries a full submission for one date.
type CreateInput struct {
	Date    string
	Entries []EntryInput
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Date    *string
	Entries *[]EntryInput
}

// DetailEntry is an entry expanded with the subject's current name.
type DetailEntry struct {
	SubjectID int64
	Name      string
	Status    Status
}

// Detail is a record with its entries expanded for display.
type Detail struct {
	ID        int64
	Date      dates.Date
	Entries   []DetailEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service validates and stores attendance submissions for one variant.
type Service struct {
	variant  Variant
	repo     Repository
	subjects Directory
}

// NewService creates a service for variant v.
func NewService(v Variant, repo Repository, subjects Directory) *Service {
	return &Service{variant: v, repo: repo, subjects: subjects}
}

// NewStaffService creates the teacher attendance service.
func NewStaffService(repo Repository, users user.Repository) *Service {
	return NewService(Staff, repo, Users(users))
}

// NewChildService creates the child attendance service.
func NewChildService(repo Repository, children child.Repository) *Service {
	return NewService(Child, repo, Children(children))
}

// Variant returns the variant the service handles.
func (s *Service) Variant() Variant { return s.variant }

// Create validates a submission and stores it as one record.
func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	date, fields, err := s.checkDate(ctx, in.Date, 0)
	if err != nil {
		return Record{}, err
	}
	entries, subjects, entryFields, err := s.checkEntries(ctx, in.Entries)
	if err != nil {
		return Record{}, err
	}
	if fields = append(fields, entryFields...); len(fields) > 0 {
		return Record{}, apperr.Validation("", fields...)
	}
	if err := s.checkRole(subjects); err != nil {
		return Record{}, err
	}

	rec, err := s.repo.Create(ctx, Record{Date: date, Entries: entries})
	if errors.Is(err, ErrDateTaken) {
		return Record{}, dateTaken()
	}
	if err != nil {
		return Record{}, err
	}
	metrics.RecordsWritten.WithLabelValues(s.variant.Kind, "create").Inc()
	return rec, nil
}

// Update applies the fields present in in to record id, validating only those.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	var (
		fields   []apperr.FieldError
		subjects map[int64]Subject
	)
	if in.Date != nil {
		date, dateFields, err := s.checkDate(ctx, *in.Date, id)
		if err != nil {
			return Record{}, err
		}
		fields = append(fields, dateFields...)
		rec.Date = date
	}
	if in.Entries != nil {
		entries, found, entryFields, err := s.checkEntries(ctx, *in.Entries)
		if err != nil {
			return Record{}, err
		}
		fields = append(fields, entryFields...)
		rec.Entries, subjects = entries, found
	}
	if len(fields) > 0 {
		return Record{}, apperr.Validation("", fields...)
	}
	if err := s.checkRole(subjects); err != nil {
		return Record{}, err
	}

	updated, err := s.repo.Update(ctx, rec)
	if errors.Is(err, ErrDateTaken) {
		return Record{}, dateTaken()
	}
	if err != nil {
		return Record{}, err
	}
	metrics.RecordsWritten.WithLabelValues(s.variant.Kind, "update").Inc()
	return updated, nil
}

// Get returns record id with each entry labelled by its subject's name.
// Subjects deleted since the record was written are labelled UnknownName.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	subjects, err := s.subjects.Lookup(ctx, rec.Entries.SubjectIDs())
	if err != nil {
		return Detail{}, errors.Wrap(err, "lookup subjects")
	}

	d := Detail{ID: rec.ID, Date: rec.Date, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	for _, e := range rec.Entries.List() {
		name := UnknownName
		if sub, ok := subjects[e.SubjectID]; ok {
			name = sub.Name
		}
		d.Entries = append(d.Entries, DetailEntry{SubjectID: e.SubjectID, Name: name, Status: e.Status})
	}
	return d, nil
}

// List returns every record, newest date first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// Delete removes record id permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordsWritten.WithLabelValues(s.variant.Kind, "delete").Inc()
	return nil
}

func (s *Service) checkDate(ctx context.Context, raw string, exceptID int64) (dates.Date, []apperr.FieldError, error) {
	if raw == "" {
		return dates.Date{}, []apperr.FieldError{apperr.Field("date", "The date field is required.")}, nil
	}
	date, err := dates.Parse(raw)
	if err != nil {
		return dates.Date{}, []apperr.FieldError{apperr.Field("date", "The date is not a valid date.")}, nil
	}
	taken, err := s.repo.DateTaken(ctx, date, exceptID)
	if err != nil {
		return dates.Date{}, nil, err
	}
	if taken {
		return date, []apperr.FieldError{dateTakenField}, nil
	}
	return date, nil, nil
}

// checkEntries validates each pair and then that every subject exists.
func (s *Service) checkEntries(ctx context.Context, in []EntryInput) (Entries, map[int64]Subject, []apperr.FieldError, error) {
	if len(in) == 0 {
		return nil, nil, []apperr.FieldError{apperr.Field("attendance", "The attendance field is required.")}, nil
	}

	var (
		fields []apperr.FieldError
		ids    []int64
		list   = make([]Entry, 0, len(in))
	)
	for i, e := range in {
		idField := fmt.Sprintf("attendance.%d.%s", i, s.variant.SubjectField)
		statusField := fmt.Sprintf("attendance.%d.status", i)
		if e.SubjectID <= 0 {
			fields = append(fields, apperr.Field(idField, "The %s field is required.", idField))
		} else {
			ids = append(ids, e.SubjectID)
		}
		switch st := Status(e.Status); {
		case e.Status == "":
			fields = append(fields, apperr.Field(statusField, "The %s field is required.", statusField))
		case !st.Valid():
			fields = append(fields, apperr.Field(statusField, "The selected %s is invalid.", statusField))
		}
		list = append(list, Entry{SubjectID: e.SubjectID, Status: Status(e.Status)})
	}

	subjects, err := s.subjects.Lookup(ctx, ids)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "lookup subjects")
	}
	for i, e := range in {
		if e.SubjectID <= 0 {
			continue
		}
		if _, ok := subjects[e.SubjectID]; !ok {
			idField := fmt.Sprintf("attendance.%d.%s", i, s.variant.SubjectField)
			fields = append(fields, apperr.Field(idField, "The selected %s is invalid.", idField))
		}
	}
	if len(fields) > 0 {
		return nil, nil, fields, nil
	}
	return Keyed(list), subjects, nil, nil
}

// checkRole fails the whole submission if any subject lacks the variant's role.
func (s *Service) checkRole(subjects map[int64]Subject) error {
	if s.variant.Role == "" {
		return nil
	}
	for _, sub := range subjects {
		if sub.Role != s.variant.Role {
			return apperr.Validation(s.variant.RoleMsg)
		}
	}
	return nil
}

var dateTakenField = apperr.Field("date", "The date has already been taken.")

func dateTaken() error {
	return apperr.Validation("", dateTakenField)
}
