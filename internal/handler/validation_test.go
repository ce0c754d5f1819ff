package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moodForm struct {
	Entries []moodFormEntry `json:"mood" validate:"required,dive"`
}

type moodFormEntry struct {
	Mood   string `json:"mood" validate:"required,mood"`
	Status string `json:"status" validate:"omitempty,attendance_status"`
}

func TestConfigureValidator(t *testing.T) {
	v := validator.New()
	trans, err := configureValidator(v)
	require.NoError(t, err)

	err = v.Struct(moodForm{Entries: []moodFormEntry{{Mood: "happy"}, {Mood: "grumpy", Status: "late"}}})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	assert.Equal(t, "mood.1.mood", fieldKey(verrs[0]))
	assert.Equal(t, "The selected mood.1.mood is invalid.", verrs[0].Translate(trans))
	assert.Equal(t, "mood.1.status", fieldKey(verrs[1]))

	err = v.Struct(moodForm{})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "The mood field is required.", verrs[0].Translate(trans))
}

func TestRegisterTagReportsFailure(t *testing.T) {
	err := registerTag(validator.New(), "", func(validator.FieldLevel) bool { return true })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `register tag ""`)
}
