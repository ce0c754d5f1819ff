package payment

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare/internal/apperr"
	"daycare/internal/user"
)

func setup(t *testing.T) (*Service, user.User) {
	t.Helper()
	users := user.NewMemoryRepository()
	owner, err := users.Create(context.Background(), user.User{Name: "Abena", Email: "abena@example.com", Role: user.RoleParent})
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), users), owner
}

func amount(v float64) *float64 { return &v }

func TestCreateAndList(t *testing.T) {
	svc, owner := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{
		UserID:      owner.ID,
		Courses:     []Course{{CourseName: "Swimming", Amount: 40}, {CourseName: "Art", Amount: 25.5}},
		TotalAmount: amount(65.5),
		Status:      "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "Abena", p.UserName)
	assert.Equal(t, StatusPending, p.Status)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Abena", list[0].UserName)
	assert.Len(t, list[0].Courses, 2)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Create(context.Background(), CreateInput{
		UserID:      77,
		Courses:     []Course{{CourseName: "", Amount: -1}},
		TotalAmount: amount(-3),
		Status:      "lost",
	})
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	got := verr.ByField()
	for _, f := range []string{"user_id", "courses.0.course_name", "courses.0.amount", "total_amount", "status"} {
		assert.Contains(t, got, f)
	}

	_, err = svc.Create(context.Background(), CreateInput{})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.ByField(), "courses")
}

func TestUpdateAndDelete(t *testing.T) {
	svc, owner := setup(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, CreateInput{
		UserID:      owner.ID,
		Courses:     []Course{{CourseName: "Music", Amount: 10}},
		TotalAmount: amount(10),
		Status:      "pending",
	})
	require.NoError(t, err)

	status := "completed"
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, p.Courses, updated.Courses)

	bad := "unknown"
	_, err = svc.Update(ctx, p.ID, UpdateInput{Status: &bad})
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
}
