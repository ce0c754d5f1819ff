package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/mood"
)

type moodHandler struct {
	svc    *mood.Service
	logger log.Logger
}

type moodEntry struct {
	ChildProfileID int64  `json:"child_profile_id" binding:"required"`
	Mood           string `json:"mood" binding:"required,mood"`
}

type createMood struct {
	Date string      `json:"date" binding:"required"`
	Mood []moodEntry `json:"mood" binding:"required,min=1,dive"`
}

type updateMood struct {
	Date *string      `json:"date"`
	Mood *[]moodEntry `json:"mood" binding:"omitempty,min=1,dive"`
}

func moodEntries(in []moodEntry) []mood.EntryInput {
	out := make([]mood.EntryInput, 0, len(in))
	for _, e := range in {
		out = append(out, mood.EntryInput{ChildProfileID: e.ChildProfileID, Mood: e.Mood})
	}
	return out
}

func (h *moodHandler) create(c *gin.Context) {
	var req createMood
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), mood.CreateInput{Date: req.Date, Entries: moodEntries(req.Mood)})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusCreated, "Mood recorded successfully", rec)
}

func (h *moodHandler) update(c *gin.Context) {
	id, err := idParam(c, "id", "Mood record")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var req updateMood
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	in := mood.UpdateInput{Date: req.Date}
	if req.Mood != nil {
		entries := moodEntries(*req.Mood)
		in.Entries = &entries
	}
	rec, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Mood updated successfully", rec)
}

func (h *moodHandler) get(c *gin.Context) {
	id, err := idParam(c, "id", "Mood record")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", rec)
}

func (h *moodHandler) list(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", records)
}

func (h *moodHandler) delete(c *gin.Context) {
	id, err := idParam(c, "id", "Mood record")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Mood deleted successfully", nil)
}
