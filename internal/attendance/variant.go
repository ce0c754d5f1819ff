package attendance

// Variant describes one attendance table: who its subjects are, what role
// they must hold and how they are named in payloads.
type Variant struct {
	Kind           string
	Table          string
	DateConstraint string
	SubjectField   string
	NameField      string
	// Role, when set, is required of every referenced subject.
	Role    string
	Noun    string
	RoleMsg string
}

var (
	Staff = Variant{
		Kind:           "attendance",
		Table:          "attendances",
		DateConstraint: "attendances_date_key",
		SubjectField:   "user_id",
		NameField:      "teacher_name",
		Role:           "teacher",
		Noun:           "Attendance",
		RoleMsg:        "All users must have teacher role",
	}
	Child = Variant{
		Kind:           "child_attendance",
		Table:          "child_attendances",
		DateConstraint: "child_attendances_date_key",
		SubjectField:   "child_profile_id",
		NameField:      "child_name",
		Noun:           "Child attendance",
	}
)
