// Package stats derives per-child statistics by scanning stored attendance
// and mood records. Every call reads the full record set; nothing is cached.
package stats

import (
	"context"
	"math"
	"time"

	"daycare/internal/apperr"
	"daycare/internal/attendance"
	"daycare/internal/child"
	"daycare/internal/dates"
	"daycare/internal/metrics"
	"daycare/internal/mood"
)

// Resolver maps a user to the child profile statistics are computed for.
type Resolver interface {
	ResolveChildByUser(ctx context.Context, userID int64) (child.Profile, error)
}

// AttendanceRate summarizes one child's attendance history.
type AttendanceRate struct {
	ChildProfileID int64   `json:"child_profile_id"`
	TotalDays      int     `json:"total_days"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Rate           float64 `json:"attendance_rate"`
}

// TodayMood is the mood recorded for a child on the current date.
type TodayMood struct {
	Date           dates.Date `json:"date"`
	ChildProfileID int64      `json:"child_profile_id"`
	Mood           mood.Mood  `json:"mood"`
}

// Histogram holds mood counts aligned with Labels.
type Histogram struct {
	Labels []mood.Mood `json:"labels"`
	Data   []int       `json:"data"`
}

// Service computes statistics.
type Service struct {
	resolver   Resolver
	attendance attendance.Repository
	moods      mood.Repository
	now        func() time.Time
}

// NewService creates a service. attendance should be the child attendance
// repository.
func NewService(resolver Resolver, attendance attendance.Repository, moods mood.Repository) *Service {
	return &Service{resolver: resolver, attendance: attendance, moods: moods, now: time.Now}
}

// AttendanceRate counts present and absent days for the user's current child.
// The rate is a percentage rounded to two decimals, or 0 with no history.
func (s *Service) AttendanceRate(ctx context.Context, userID int64) (AttendanceRate, error) {
	p, err := s.resolver.ResolveChildByUser(ctx, userID)
	if err != nil {
		return AttendanceRate{}, err
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return AttendanceRate{}, err
	}
	metrics.RecordsScanned.WithLabelValues(attendance.Child.Kind).Add(float64(len(records)))

	out := AttendanceRate{ChildProfileID: p.ID}
	for _, rec := range records {
		switch rec.Entries[p.ID] {
		case attendance.StatusPresent:
			out.Present++
		case attendance.StatusAbsent:
			out.Absent++
		}
	}
	out.TotalDays = out.Present + out.Absent
	out.Rate = Rate(out.Present, out.TotalDays)
	return out, nil
}

// Rate returns present/total as a percentage rounded to two decimals.
func Rate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*100*100) / 100
}

// TodayMood returns the user's current child's mood from the first record
// created for today. Later records of the same day are not consulted.
func (s *Service) TodayMood(ctx context.Context, userID int64) (TodayMood, error) {
	p, err := s.resolver.ResolveChildByUser(ctx, userID)
	if err != nil {
		return TodayMood{}, err
	}
	today := dates.Of(s.now())
	records, err := s.moods.ListByDate(ctx, today)
	if err != nil {
		return TodayMood{}, err
	}
	metrics.RecordsScanned.WithLabelValues("mood").Add(float64(len(records)))
	if len(records) == 0 {
		return TodayMood{}, apperr.NotFound("No mood records found for today")
	}
	for _, e := range records[0].Entries {
		if e.ChildProfileID == p.ID {
			return TodayMood{Date: today, ChildProfileID: p.ID, Mood: e.Mood}, nil
		}
	}
	return TodayMood{}, apperr.NotFound("No mood found for this child today")
}

// MoodHistogram counts every recorded mood of the user's current child
// across all records. Labels always lists every mood in display order.
func (s *Service) MoodHistogram(ctx context.Context, userID int64) (Histogram, error) {
	p, err := s.resolver.ResolveChildByUser(ctx, userID)
	if err != nil {
		return Histogram{}, err
	}
	records, err := s.moods.List(ctx)
	if err != nil {
		return Histogram{}, err
	}
	metrics.RecordsScanned.WithLabelValues("mood").Add(float64(len(records)))

	labels := mood.Values()
	index := make(map[mood.Mood]int, len(labels))
	for i, m := range labels {
		index[m] = i
	}
	h := Histogram{Labels: labels, Data: make([]int, len(labels))}
	for _, rec := range records {
		for _, e := range rec.Entries {
			if e.ChildProfileID != p.ID {
				continue
			}
			if i, ok := index[e.Mood]; ok {
				h.Data[i]++
			}
		}
	}
	return h, nil
}
