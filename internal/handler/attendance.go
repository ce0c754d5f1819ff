package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/attendance"
)

type attendanceHandler struct {
	svc    *attendance.Service
	logger log.Logger
}

// attendanceEntry accepts either subject key; the variant decides which one
// is read.
type attendanceEntry struct {
	UserID         int64  `json:"user_id"`
	ChildProfileID int64  `json:"child_profile_id"`
	Status         string `json:"status" binding:"required,attendance_status"`
}

type createAttendance struct {
	Date       string            `json:"date" binding:"required"`
	Attendance []attendanceEntry `json:"attendance" binding:"required,min=1,dive"`
}

type updateAttendance struct {
	Date       *string            `json:"date"`
	Attendance *[]attendanceEntry `json:"attendance" binding:"omitempty,min=1,dive"`
}

func (h *attendanceHandler) entries(in []attendanceEntry) []attendance.EntryInput {
	out := make([]attendance.EntryInput, 0, len(in))
	for _, e := range in {
		id := e.UserID
		if h.svc.Variant().SubjectField == attendance.Child.SubjectField {
			id = e.ChildProfileID
		}
		out = append(out, attendance.EntryInput{SubjectID: id, Status: e.Status})
	}
	return out
}

func (h *attendanceHandler) create(c *gin.Context) {
	var req createAttendance
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), attendance.CreateInput{Date: req.Date, Entries: h.entries(req.Attendance)})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusCreated, h.svc.Variant().Noun+" recorded successfully", rec)
}

func (h *attendanceHandler) update(c *gin.Context) {
	id, err := idParam(c, "id", h.svc.Variant().Noun+" record")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var req updateAttendance
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	in := attendance.UpdateInput{Date: req.Date}
	if req.Attendance != nil {
		entries := h.entries(*req.Attendance)
		in.Entries = &entries
	}
	rec, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, h.svc.Variant().Noun+" updated successfully", rec)
}

func (h *attendanceHandler) get(c *gin.Context) {
	id, err := idParam(c, "id", h.svc.Variant().Noun+" record")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	v := h.svc.Variant()
	entries := make([]gin.H, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, gin.H{v.SubjectField: e.SubjectID, v.NameField: e.Name, "status": e.Status})
	}
	ok(c, http.StatusOK, "", gin.H{
		"id":         d.ID,
		"date":       d.Date,
		"attendance": entries,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	})
}

func (h *attendanceHandler) list(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", records)
}

func (h *attendanceHandler) delete(c *gin.Context) {
	id, err := idParam(c, "id", h.svc.Variant().Noun+" record")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, h.svc.Variant().Noun+" deleted successfully", nil)
}
