package mood

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"daycare/internal/dates"
)

// Mood is one of a fixed set of labels a teacher records for a child.
type Mood string

const (
	Happy      Mood = "happy"
	Sad        Mood = "sad"
	Angry      Mood = "angry"
	Excited    Mood = "excited"
	Calm       Mood = "calm"
	Anxious    Mood = "anxious"
	Frustrated Mood = "frustrated"
	Content    Mood = "content"
	Tired      Mood = "tired"
	Energetic  Mood = "energetic"
)

// values is the single source of the enumeration and its display order.
// Validation and the histogram both read it.
var values = [...]Mood{Happy, Sad, Angry, Excited, Calm, Anxious, Frustrated, Content, Tired, Energetic}

// Values returns every mood in display order.
func Values() []Mood {
	out := make([]Mood, len(values))
	copy(out, values[:])
	return out
}

// Valid reports whether m is one of Values.
func (m Mood) Valid() bool {
	for _, v := range values {
		if m == v {
			return true
		}
	}
	return false
}

// Entry is the mood recorded for one child.
type Entry struct {
	ChildProfileID int64 `json:"child_profile_id"`
	Mood           Mood  `json:"mood"`
}

// Entries keeps submission order; a child may appear more than once.
type Entries []Entry

func (e Entries) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Entry(e))
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
		return fmt.Errorf("mood: cannot scan %T into Entries", src)
	}
	var out []Entry
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*e = out
	return nil
}

// Record is one mood check-in. Several records may share a date.
type Record struct {
	ID        int64      `json:"id" db:"id"`
	Date      dates.Date `json:"date" db:"date"`
	Entries   Entries    `json:"mood" db:"mood"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
