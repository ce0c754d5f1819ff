package child

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/metrics"
	"daycare/internal/storage"
	"daycare/internal/user"
)

// MaxPictureBytes bounds uploaded profile pictures.
const MaxPictureBytes = 2048 * 1024

var pictureExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}

// ImageStore hosts profile pictures.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, filename string) (storage.Image, error)
	Delete(ctx context.Context, id string) error
}

// Picture is an uploaded file.
type Picture struct {
	Filename string
	Data     []byte
}

// CreateInput carries the fields of a new profile.
type CreateInput struct {
	UserID              int64
	Name                string
	Age                 *int
	Mood                *string
	BehaviouralOverview *string
	LearningProgress    *string
	Picture             *Picture
}

// UpdateInput carries the fields present in a partial update.
type UpdateInput struct {
	UserID              *int64
	Name                *string
	Age                 *int
	Mood                *string
	BehaviouralOverview *string
	LearningProgress    *string
	Picture             *Picture
}

// Service manages child profiles.
type Service struct {
	repo   Repository
	users  user.Repository
	images ImageStore
	logger log.Logger
}

// NewService creates a service.
func NewService(repo Repository, users user.Repository, images ImageStore, logger log.Logger) *Service {
	return &Service{repo: repo, users: users, images: images, logger: logger}
}

// Create validates input, stores the picture and persists the profile.
func (s *Service) Create(ctx context.Context, in CreateInput) (Profile, error) {
	var fields []apperr.FieldError
	fields = append(fields, s.checkOwner(ctx, in.UserID)...)
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperr.Field("name", "The name field is required."))
	}
	fields = append(fields, checkName(in.Name)...)
	if in.Age == nil {
		fields = append(fields, apperr.Field("age", "The age field is required."))
	}
	if in.Picture == nil {
		fields = append(fields, apperr.Field("profile_pic", "The profile pic field is required."))
	} else {
		fields = append(fields, checkPicture(*in.Picture)...)
	}
	fields = append(fields, checkText("mood", in.Mood)...)
	if len(fields) > 0 {
		return Profile{}, apperr.Validation("", fields...)
	}

	img, err := s.images.Upload(ctx, in.Picture.Data, in.Picture.Filename)
	if err != nil {
		return Profile{}, errors.Wrap(err, "upload profile picture")
	}

	p := Profile{
		UserID:              in.UserID,
		Name:                strings.TrimSpace(in.Name),
		ProfilePic:          img.URL,
		ProfilePicID:        img.ID,
		Age:                 *in.Age,
		Mood:                valueOr(in.Mood, DefaultMood),
		BehaviouralOverview: valueOr(in.BehaviouralOverview, DefaultBehaviouralOverview),
		LearningProgress:    valueOr(in.LearningProgress, DefaultLearningProgress),
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.discard(ctx, img.ID)
		return Profile{}, err
	}
	metrics.RecordsWritten.WithLabelValues("child_profile", "create").Inc()
	return created, nil
}

// Update applies the fields present in in. A new picture replaces the old one.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Profile, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	var fields []apperr.FieldError
	if in.UserID != nil {
		fields = append(fields, s.checkOwner(ctx, *in.UserID)...)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			fields = append(fields, apperr.Field("name", "The name field is required."))
		}
		fields = append(fields, checkName(*in.Name)...)
	}
	if in.Picture != nil {
		fields = append(fields, checkPicture(*in.Picture)...)
	}
	fields = append(fields, checkText("mood", in.Mood)...)
	if len(fields) > 0 {
		return Profile{}, apperr.Validation("", fields...)
	}

	if in.UserID != nil {
		p.UserID = *in.UserID
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Mood != nil {
		p.Mood = *in.Mood
	}
	if in.BehaviouralOverview != nil {
		p.BehaviouralOverview = *in.BehaviouralOverview
	}
	if in.LearningProgress != nil {
		p.LearningProgress = *in.LearningProgress
	}

	oldPicID := ""
	if in.Picture != nil {
		img, err := s.images.Upload(ctx, in.Picture.Data, in.Picture.Filename)
		if err != nil {
			return Profile{}, errors.Wrap(err, "upload profile picture")
		}
		oldPicID = p.ProfilePicID
		p.ProfilePic, p.ProfilePicID = img.URL, img.ID
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if in.Picture != nil {
			s.discard(ctx, p.ProfilePicID)
		}
		return Profile{}, err
	}
	s.discard(ctx, oldPicID)
	metrics.RecordsWritten.WithLabelValues("child_profile", "update").Inc()
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Profile, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

// Delete removes the profile. Its picture is left in place, as other records
// may still show it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordsWritten.WithLabelValues("child_profile", "delete").Inc()
	return nil
}

func (s *Service) checkOwner(ctx context.Context, userID int64) []apperr.FieldError {
	if userID <= 0 {
		return []apperr.FieldError{apperr.Field("user_id", "The user id field is required.")}
	}
	found, err := s.users.Lookup(ctx, []int64{userID})
	if err != nil || len(found) == 0 {
		return []apperr.FieldError{apperr.Field("user_id", "The selected user id is invalid.")}
	}
	return nil
}

func (s *Service) discard(ctx context.Context, imageID string) {
	if imageID == "" {
		return
	}
	if err := s.images.Delete(ctx, imageID); err != nil {
		level.Warn(s.logger).Log("msg", "delete profile picture failed", "image", imageID, "err", err)
	}
}

func checkName(name string) []apperr.FieldError {
	if len(name) > 255 {
		return []apperr.FieldError{apperr.Field("name", "The name may not be greater than 255 characters.")}
	}
	return nil
}

func checkText(field string, v *string) []apperr.FieldError {
	if v != nil && len(*v) > 255 {
		return []apperr.FieldError{apperr.Field(field, "The %s may not be greater than 255 characters.", field)}
	}
	return nil
}

func checkPicture(p Picture) []apperr.FieldError {
	var fields []apperr.FieldError
	if !pictureExtensions[strings.ToLower(filepath.Ext(p.Filename))] {
		fields = append(fields, apperr.Field("profile_pic", "The profile pic must be a file of type: jpeg, png, jpg, gif."))
	} else if !strings.HasPrefix(http.DetectContentType(p.Data), "image/") {
		fields = append(fields, apperr.Field("profile_pic", "The profile pic must be an image."))
	}
	if len(p.Data) > MaxPictureBytes {
		fields = append(fields, apperr.Field("profile_pic", "The profile pic may not be greater than 2048 kilobytes."))
	}
	return fields
}

func valueOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
