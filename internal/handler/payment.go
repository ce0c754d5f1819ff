package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/payment"
)

type paymentHandler struct {
	svc    *payment.Service
	logger log.Logger
}

type courseRequest struct {
	CourseName string  `json:"course_name" binding:"required,max=255"`
	Amount     float64 `json:"amount" binding:"gte=0"`
}

type createPayment struct {
	UserID      int64           `json:"user_id" binding:"required"`
	Courses     []courseRequest `json:"courses" binding:"required,min=1,dive"`
	TotalAmount *float64        `json:"total_amount" binding:"required,gte=0"`
	Status      string          `json:"status" binding:"required,oneof=pending completed failed refunded"`
}

type updatePayment struct {
	UserID      *int64           `json:"user_id"`
	Courses     *[]courseRequest `json:"courses" binding:"omitempty,min=1,dive"`
	TotalAmount *float64         `json:"total_amount" binding:"omitempty,gte=0"`
	Status      *string          `json:"status" binding:"omitempty,oneof=pending completed failed refunded"`
}

func courses(in []courseRequest) []payment.Course {
	out := make([]payment.Course, 0, len(in))
	for _, c := range in {
		out = append(out, payment.Course{CourseName: c.CourseName, Amount: c.Amount})
	}
	return out
}

func (h *paymentHandler) create(c *gin.Context) {
	var req createPayment
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	p, err := h.svc.Create(c.Request.Context(), payment.CreateInput{
		UserID:      req.UserID,
		Courses:     courses(req.Courses),
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusCreated, "Payment created successfully", p)
}

func (h *paymentHandler) update(c *gin.Context) {
	id, err := idParam(c, "id", "Payment")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var req updatePayment
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	in := payment.UpdateInput{UserID: req.UserID, TotalAmount: req.TotalAmount, Status: req.Status}
	if req.Courses != nil {
		list := courses(*req.Courses)
		in.Courses = &list
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Payment updated successfully", p)
}

func (h *paymentHandler) get(c *gin.Context) {
	id, err := idParam(c, "id", "Payment")
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

func (h *paymentHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", list)
}

func (h *paymentHandler) delete(c *gin.Context) {
	id, err := idParam(c, "id", "Payment")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Payment deleted successfully", nil)
}
