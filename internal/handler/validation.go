package handler

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/attendance"
	"daycare/internal/mood"
)

var (
	translator ut.Translator
	setupOnce  sync.Once

	moodTag             = "mood"
	attendanceStatusTag = "attendance_status"

	indexRe = regexp.MustCompile(`\[(\d+)\]`)
)

// setupValidator configures gin's validator once: JSON field names, English
// messages and the enumeration tags. A registration failure is a programming
// error and panics.
func setupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		trans, err := configureValidator(v)
		if err != nil {
			panic(err)
		}
		translator = trans
	})
}

func configureValidator(v *validator.Validate) (ut.Translator, error) {
	_en := en.New()
	uni := ut.New(_en, _en)
	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("validator: english translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, errors.Wrap(err, "validator: default translations")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := registerTag(v, moodTag, func(fl validator.FieldLevel) bool {
		return mood.Mood(fl.Field().String()).Valid()
	}); err != nil {
		return nil, err
	}
	if err := registerTag(v, attendanceStatusTag, func(fl validator.FieldLevel) bool {
		return attendance.Status(fl.Field().String()).Valid()
	}); err != nil {
		return nil, err
	}

	for _, m := range messages {
		if err := registerMessage(v, trans, m.tag, m.text); err != nil {
			return nil, err
		}
	}
	return trans, nil
}

var messages = []struct{ tag, text string }{
	{"required", "The {0} field is required."},
	{moodTag, "The selected {0} is invalid."},
	{attendanceStatusTag, "The selected {0} is invalid."},
	{"oneof", "The selected {0} is invalid."},
	{"email", "The {0} must be a valid email address."},
	{"gte", "The {0} must be at least {1}."},
	{"min", "The {0} must have at least {1} items."},
	{"max", "The {0} may not be greater than {1} characters."},
}

func registerTag(v *validator.Validate, tag string, fn validator.Func) error {
	return errors.Wrapf(v.RegisterValidation(tag, fn), "validator: register tag %q", tag)
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) error {
	err := v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fieldKey(fe), fe.Param())
			return s
		},
	)
	return errors.Wrapf(err, "validator: register message for %q", tag)
}

// fieldKey turns "createAttendance.attendance[0].status" into
// "attendance.0.status".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return indexRe.ReplaceAllString(ns, ".$1")
}

// bindError converts a binding failure into a ValidationError.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("The given data was invalid.", apperr.Field("body", "%s", err.Error()))
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		fields = append(fields, apperr.FieldError{Field: fieldKey(fe), Message: msg})
	}
	return apperr.Validation("", fields...)
}
