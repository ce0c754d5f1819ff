// Package handler exposes the services over HTTP with gin.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/attendance"
	"daycare/internal/auth"
	"daycare/internal/child"
	"daycare/internal/mood"
	"daycare/internal/payment"
	"daycare/internal/salary"
	"daycare/internal/stats"
	"daycare/internal/user"
)

// Deps are the services behind the API.
type Deps struct {
	Signer          *auth.Signer
	Users           *user.Service
	Staff           *attendance.Service
	ChildAttendance *attendance.Service
	Moods           *mood.Service
	Stats           *stats.Service
	Children        *child.Service
	Resolver        *child.Resolver
	Payments        *payment.Service
	Salaries        *salary.Service
	Logger          log.Logger
}

// Register mounts every route under r, typically the /api group.
func Register(r gin.IRouter, d Deps) {
	setupValidator()

	users := &userHandler{svc: d.Users, logger: d.Logger}
	r.POST("/register", users.register)
	r.POST("/login", users.login)

	api := r.Group("", auth.Bearer(d.Signer))
	admin := auth.RequireRole(string(user.RoleAdmin))

	api.POST("/logout", users.logout)
	api.GET("/user", users.me)
	api.GET("/teachers", users.teachers)

	staff := &attendanceHandler{svc: d.Staff, logger: d.Logger}
	api.GET("/attendances", staff.list)
	api.GET("/attendances/:id", staff.get)
	api.POST("/attendances", admin, staff.create)
	api.PUT("/attendances/:id", admin, staff.update)
	api.DELETE("/attendances/:id", admin, staff.delete)

	st := &statsHandler{svc: d.Stats, logger: d.Logger}
	children := &attendanceHandler{svc: d.ChildAttendance, logger: d.Logger}
	api.GET("/child-attendances", children.list)
	api.GET("/child-attendances/statistics/:user", st.attendanceRate)
	api.GET("/child-attendances/:id", children.get)
	api.POST("/child-attendances", children.create)
	api.PUT("/child-attendances/:id", children.update)
	api.DELETE("/child-attendances/:id", children.delete)

	moods := &moodHandler{svc: d.Moods, logger: d.Logger}
	api.GET("/moods", moods.list)
	api.GET("/moods/today/:user", st.todayMood)
	api.GET("/moods/statistics/:user", st.moodHistogram)
	api.GET("/moods/:id", moods.get)
	api.POST("/moods", moods.create)
	api.PUT("/moods/:id", moods.update)
	api.DELETE("/moods/:id", moods.delete)

	profiles := &childHandler{svc: d.Children, resolver: d.Resolver, logger: d.Logger}
	api.GET("/child-profiles", profiles.list)
	api.GET("/child-profiles/:id", profiles.get)
	api.POST("/child-profiles", profiles.create)
	api.PUT("/child-profiles/:id", profiles.update)
	api.DELETE("/child-profiles/:id", profiles.delete)
	api.GET("/child/profile/:user", profiles.byUser)

	payments := &paymentHandler{svc: d.Payments, logger: d.Logger}
	api.GET("/payments", payments.list)
	api.GET("/payments/:id", payments.get)
	api.POST("/payments", payments.create)
	api.PUT("/payments/:id", payments.update)
	api.DELETE("/payments/:id", payments.delete)

	salaries := &salaryHandler{svc: d.Salaries, logger: d.Logger}
	api.GET("/salaries", salaries.list)
	api.GET("/salaries/:id", salaries.get)
	api.POST("/salaries", admin, salaries.create)
	api.PUT("/salaries/:id", admin, salaries.update)
	api.DELETE("/salaries/:id", admin, salaries.delete)
	api.GET("/teacher/salary/:user", salaries.forUser)
}
