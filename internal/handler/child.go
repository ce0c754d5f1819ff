package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/child"
)

type childHandler struct {
	svc      *child.Service
	resolver *child.Resolver
	logger   log.Logger
}

// childProfileForm is the multipart body of create and update. Absent fields
// stay nil.
type childProfileForm struct {
	UserID              *int64                `form:"user_id"`
	Name                *string               `form:"name"`
	Age                 *int                  `form:"age" binding:"omitempty,gte=0"`
	Mood                *string               `form:"mood"`
	BehaviouralOverview *string               `form:"behavioural_overview"`
	LearningProgress    *string               `form:"learning_progress"`
	ProfilePic          *multipart.FileHeader `form:"profile_pic"`
}

func (f childProfileForm) picture() (*child.Picture, error) {
	if f.ProfilePic == nil {
		return nil, nil
	}
	if f.ProfilePic.Size > child.MaxPictureBytes {
		return nil, apperr.Validation("", apperr.Field("profile_pic", "The profile pic may not be greater than 2048 kilobytes."))
	}
	file, err := f.ProfilePic.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	return &child.Picture{Filename: f.ProfilePic.Filename, Data: data}, nil
}

func (h *childHandler) bind(c *gin.Context) (childProfileForm, *child.Picture, error) {
	var form childProfileForm
	if err := c.ShouldBind(&form); err != nil {
		return form, nil, bindError(err)
	}
	pic, err := form.picture()
	return form, pic, err
}

func (h *childHandler) create(c *gin.Context) {
	form, pic, err := h.bind(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	in := child.CreateInput{
		Age:                 form.Age,
		Mood:                form.Mood,
		BehaviouralOverview: form.BehaviouralOverview,
		LearningProgress:    form.LearningProgress,
		Picture:             pic,
	}
	if form.UserID != nil {
		in.UserID = *form.UserID
	}
	if form.Name != nil {
		in.Name = *form.Name
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusCreated, "Child profile created successfully", p)
}

func (h *childHandler) update(c *gin.Context) {
	id, err := idParam(c, "id", "Child profile")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	form, pic, err := h.bind(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, child.UpdateInput{
		UserID:              form.UserID,
		Name:                form.Name,
		Age:                 form.Age,
		Mood:                form.Mood,
		BehaviouralOverview: form.BehaviouralOverview,
		LearningProgress:    form.LearningProgress,
		Picture:             pic,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Child profile updated successfully", p)
}

func (h *childHandler) get(c *gin.Context) {
	id, err := idParam(c, "id", "Child profile")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", p)
}

func (h *childHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", list)
}

func (h *childHandler) delete(c *gin.Context) {
	id, err := idParam(c, "id", "Child profile")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Child profile deleted successfully", nil)
}

func (h *childHandler) byUser(c *gin.Context) {
	userID, err := idParam(c, "user", "User")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	p, err := h.resolver.ResolveChildByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", p)
}
