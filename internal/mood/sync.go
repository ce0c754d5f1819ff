package mood

import (
	"context"
	"strconv"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/metrics"
	"daycare/internal/queue"
)

// ApplyToProfiles copies the moods of record id onto the profiles it
// mentions. When a child appears more than once the last entry wins.
// Children also named by a newer record (later date, or same date and
// higher id) keep their label. Profiles deleted since the record was
// written are skipped.
func (s *Service) ApplyToProfiles(ctx context.Context, id int64) (int, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	superseded, err := s.supersededChildren(ctx, rec)
	if err != nil {
		return 0, err
	}

	latest := make(map[int64]Mood, len(rec.Entries))
	order := make([]int64, 0, len(rec.Entries))
	for _, e := range rec.Entries {
		if _, seen := latest[e.ChildProfileID]; !seen {
			order = append(order, e.ChildProfileID)
		}
		latest[e.ChildProfileID] = e.Mood
	}

	applied := 0
	for _, childID := range order {
		if superseded[childID] {
			level.Debug(s.logger).Log("msg", "skip child with newer mood record", "record", id, "child", childID)
			continue
		}
		err := s.children.SetMood(ctx, childID, string(latest[childID]))
		switch {
		case apperr.IsNotFound(err):
			level.Debug(s.logger).Log("msg", "skip missing child profile", "record", id, "child", childID)
		case err != nil:
			return applied, errors.Wrapf(err, "set mood of child %d", childID)
		default:
			applied++
		}
	}
	return applied, nil
}

// supersededChildren lists the children of rec that a newer record names.
func (s *Service) supersededChildren(ctx context.Context, rec Record) (map[int64]bool, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list mood records")
	}
	out := make(map[int64]bool)
	for _, other := range all {
		if !newer(other, rec) {
			continue
		}
		for _, e := range other.Entries {
			out[e.ChildProfileID] = true
		}
	}
	return out, nil
}

func newer(a, b Record) bool {
	if a.Date.Equal(b.Date) {
		return a.ID > b.ID
	}
	return b.Date.Before(a.Date)
}

// RunProfileSync consumes q until ctx is done, applying every
// TypeMoodRecorded message. Other message types are ignored.
func (s *Service) RunProfileSync(ctx context.Context, q queue.Queue) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return errors.Wrap(err, "queue consume")
	}

	level.Info(s.logger).Log("msg", "mood profile sync started")
	for msg := range messages {
		if msg.Type != queue.TypeMoodRecorded {
			metrics.QueueEvents.WithLabelValues(msg.Type, "ignored").Inc()
			continue
		}
		id, err := strconv.ParseInt(string(msg.Body), 10, 64)
		if err != nil {
			metrics.QueueEvents.WithLabelValues(msg.Type, "malformed").Inc()
			level.Warn(s.logger).Log("msg", "malformed message body", "type", msg.Type, "body", string(msg.Body))
			continue
		}
		n, err := s.ApplyToProfiles(ctx, id)
		if err != nil {
			metrics.QueueEvents.WithLabelValues(msg.Type, "failed").Inc()
			level.Error(s.logger).Log("msg", "apply moods failed", "record", id, "err", err)
			continue
		}
		metrics.QueueEvents.WithLabelValues(msg.Type, "processed").Inc()
		level.Info(s.logger).Log("msg", "moods applied", "record", id, "profiles", n)
	}
	level.Info(s.logger).Log("msg", "mood profile sync stopped")
	return nil
}
