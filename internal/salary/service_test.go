package salary

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
	teacher, err := users.Create(context.Background(), user.User{Name: "Ama", Email: "ama@example.com", Role: user.RoleTeacher})
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), users), teacher
}

func f(v float64) *float64 { return &v }

func amounts() Amounts {
	return Amounts{BasicSalary: f(1200), OverTime: f(80), FuelAllowance: f(50), NetSalary: f(1330)}
}

func TestCreateAndForUser(t *testing.T) {
	svc, teacher := setup(t)
	ctx := context.Background()

	for _, d := range []string{"2025-09-30", "2025-10-31"} {
		_, err := svc.Create(ctx, CreateInput{UserID: teacher.ID, SalaryDate: d, Amounts: amounts()})
		require.NoError(t, err)
	}

	list, err := svc.ForUser(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-10-31", list[0].SalaryDate.String())
	assert.Equal(t, "Ama", list[0].UserName)
	assert.Equal(t, 1330.0, list[0].NetSalary)

	_, err = svc.ForUser(ctx, 999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Create(context.Background(), CreateInput{
		UserID:     42,
		SalaryDate: "someday",
		Amounts:    Amounts{BasicSalary: f(-1)},
	})
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	got := verr.ByField()
	assert.Equal(t, []string{"The selected user id is invalid."}, got["user_id"])
	assert.Equal(t, []string{"The salary date is not a valid date."}, got["salary_date"])
	assert.Equal(t, []string{"The basic salary must be at least 0."}, got["basic_salary"])
	assert.Equal(t, []string{"The net salary field is required."}, got["net_salary"])
}

func TestUpdatePartialAndDelete(t *testing.T) {
	svc, teacher := setup(t)
	ctx := context.Background()
	sal, err := svc.Create(ctx, CreateInput{UserID: teacher.ID, SalaryDate: "2025-10-31", Amounts: amounts()})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, sal.ID, UpdateInput{Amounts: Amounts{OverTime: f(120)}})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.OverTime)
	assert.Equal(t, 1200.0, updated.BasicSalary)
	assert.Equal(t, sal.SalaryDate, updated.SalaryDate)

	_, err = svc.Update(ctx, sal.ID, UpdateInput{Amounts: Amounts{NetSalary: f(-5)}})
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, svc.Delete(ctx, sal.ID))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
