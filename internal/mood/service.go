package mood

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/child"
	"daycare/internal/dates"
	"daycare/internal/metrics"
	"daycare/internal/queue"
)

// EntryInput is one submitted child/mood pair before validation.
type EntryInput struct {
	ChildProfileID int64
	Mood           string
}

// CreateInput carries a full mood submission.
type CreateInput struct {
	Date    string
	Entries []EntryInput
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Date    *string
	Entries *[]EntryInput
}

// Service validates and stores mood records. After each write it publishes
// a TypeMoodRecorded message so profile labels can be brought up to date.
type Service struct {
	repo     Repository
	children child.Repository
	events   queue.Queue
	logger   log.Logger
}

// NewService creates a service. events may be nil.
func NewService(repo Repository, children child.Repository, events queue.Queue, logger log.Logger) *Service {
	return &Service{repo: repo, children: children, events: events, logger: logger}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	date, fields := checkDate(in.Date)
	entries, entryFields, err := s.checkEntries(ctx, in.Entries)
	if err != nil {
		return Record{}, err
	}
	if fields = append(fields, entryFields...); len(fields) > 0 {
		return Record{}, apperr.Validation("", fields...)
	}

	rec, err := s.repo.Create(ctx, Record{Date: date, Entries: entries})
	if err != nil {
		return Record{}, err
	}
	metrics.RecordsWritten.WithLabelValues("mood", "create").Inc()
	s.publish(ctx, rec.ID)
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	var fields []apperr.FieldError
	if in.Date != nil {
		var dateFields []apperr.FieldError
		rec.Date, dateFields = checkDate(*in.Date)
		fields = append(fields, dateFields...)
	}
	if in.Entries != nil {
		entries, entryFields, err := s.checkEntries(ctx, *in.Entries)
		if err != nil {
			return Record{}, err
		}
		fields = append(fields, entryFields...)
		rec.Entries = entries
	}
	if len(fields) > 0 {
		return Record{}, apperr.Validation("", fields...)
	}

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	metrics.RecordsWritten.WithLabelValues("mood", "update").Inc()
	s.publish(ctx, updated.ID)
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.repo.Get(ctx, id)
}

// List returns every record, newest date first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordsWritten.WithLabelValues("mood", "delete").Inc()
	return nil
}

func (s *Service) publish(ctx context.Context, id int64) {
	if s.events == nil {
		return
	}
	msg := queue.Message{Type: queue.TypeMoodRecorded, Body: []byte(strconv.FormatInt(id, 10))}
	if err := s.events.Publish(ctx, msg); err != nil {
		metrics.QueueEvents.WithLabelValues(msg.Type, "publish_failed").Inc()
		level.Warn(s.logger).Log("msg", "queue publish failed", "type", msg.Type, "record", id, "err", err)
		return
	}
	metrics.QueueEvents.WithLabelValues(msg.Type, "published").Inc()
}

func checkDate(raw string) (dates.Date, []apperr.FieldError) {
	if raw == "" {
		return dates.Date{}, []apperr.FieldError{apperr.Field("date", "The date field is required.")}
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return dates.Date{}, []apperr.FieldError{apperr.Field("date", "The date is not a valid date.")}
	}
	return d, nil
}

func (s *Service) checkEntries(ctx context.Context, in []EntryInput) (Entries, []apperr.FieldError, error) {
	if len(in) == 0 {
		return nil, []apperr.FieldError{apperr.Field("mood", "The mood field is required.")}, nil
	}

	var (
		fields []apperr.FieldError
		ids    []int64
		out    = make(Entries, 0, len(in))
	)
	for i, e := range in {
		idField := fmt.Sprintf("mood.%d.child_profile_id", i)
		moodField := fmt.Sprintf("mood.%d.mood", i)
		if e.ChildProfileID <= 0 {
			fields = append(fields, apperr.Field(idField, "The %s field is required.", idField))
		} else {
			ids = append(ids, e.ChildProfileID)
		}
		switch {
		case e.Mood == "":
			fields = append(fields, apperr.Field(moodField, "The %s field is required.", moodField))
		case !Mood(e.Mood).Valid():
			fields = append(fields, apperr.Field(moodField, "The selected %s is invalid.", moodField))
		}
		out = append(out, Entry{ChildProfileID: e.ChildProfileID, Mood: Mood(e.Mood)})
	}

	found, err := s.children.Lookup(ctx, ids)
	if err != nil {
		return nil, nil, errors.Wrap(err, "lookup child profiles")
	}
	for i, e := range in {
		if e.ChildProfileID <= 0 {
			continue
		}
		if _, ok := found[e.ChildProfileID]; !ok {
			idField := fmt.Sprintf("mood.%d.child_profile_id", i)
			fields = append(fields, apperr.Field(idField, "The selected %s is invalid.", idField))
		}
	}
	if len(fields) > 0 {
		return nil, fields, nil
	}
	return out, nil, nil
}
