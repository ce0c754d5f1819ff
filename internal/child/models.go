package child

import "time"

const (
	DefaultMood                = "happy"
	DefaultBehaviouralOverview = "No issues reported"
	DefaultLearningProgress    = "On track"
)

// Profile describes one child. A user may own several profiles over time;
// the most recently created one is the current profile.
type Profile struct {
	ID                  int64     `json:"id" db:"id"`
	UserID              int64     `json:"user_id" db:"user_id"`
	Name                string    `json:"name" db:"name"`
	ProfilePic          string    `json:"profile_pic" db:"profile_pic"`
	ProfilePicID        string    `json:"-" db:"profile_pic_id"`
	Age                 int       `json:"age" db:"age"`
	Mood                string    `json:"mood" db:"mood"`
	BehaviouralOverview string    `json:"behavioural_overview" db:"behavioural_overview"`
	LearningProgress    string    `json:"learning_progress" db:"learning_progress"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
