package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"daycare/internal/dates"
)

// Status is the attendance outcome for one subject on one day.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

var statuses = [...]Status{StatusPresent, StatusAbsent}

// Statuses returns every valid status.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses[:])
	return out
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Entries maps a subject id to its status for the record's date. It is
// stored as a JSON object keyed by the decimal subject id.
type Entries map[int64]Status

// Entry is one subject/status pair as it appears in request and response
// payloads.
type Entry struct {
	SubjectID int64
	Status    Status
}

// Keyed converts a list of pairs into Entries. A later pair for the same
// subject replaces an earlier one.
func Keyed(list []Entry) Entries {
	out := make(Entries, len(list))
	for _, e := range list {
		out[e.SubjectID] = e.Status
	}
	return out
}

// List expands e into pairs ordered by subject id.
func (e Entries) List() []Entry {
	out := make([]Entry, 0, len(e))
	for id, st := range e {
		out = append(out, Entry{SubjectID: id, Status: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out
}

// SubjectIDs returns the keys of e in ascending order.
func (e Entries) SubjectIDs() []int64 {
	ids := make([]int64, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (e Entries) Value() (driver.Value, error) {
	if e == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[int64]Status(e))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *Entries) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*e = Entries{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("attendance: cannot scan %T into Entries", src)
	}
	m := map[int64]Status{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*e = m
	return nil
}

// Record is one day of attendance for one variant.
type Record struct {
	ID        int64      `json:"id" db:"id"`
	Date      dates.Date `json:"date" db:"date"`
	Entries   Entries    `json:"attendance" db:"attendance"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
