package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/harentsoaR/homecare-scheduler/internal/middleware"
	"github.com/harentsoaR/homecare-scheduler/internal/models"
	"github.com/harentsoaR/homecare-scheduler/internal/scheduler"
)

type NameRequest struct {
	Name string `json:"name"`
}

type RescheduleRequest struct {
	Patient string `json:"patient" binding:"required"`
	Day     string `json:"day" binding:"required"`
}

// --- PATIENTS ---

func (h *Handler) ListPatients(c *gin.Context) {
	var patients []string
	h.session(c, func(s *scheduler.Scheduler) { patients = s.Patients() })
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// AddPatient ignores empty and duplicate names; the response says whether
// the name was added.
func (h *Handler) AddPatient(c *gin.Context) {
	h.changeNames(c, "patient.add", (*scheduler.Scheduler).AddPatient, (*scheduler.Scheduler).Patients, "patients", "added")
}

func (h *Handler) RemovePatient(c *gin.Context) {
	h.changeNames(c, "patient.remove", (*scheduler.Scheduler).RemovePatient, (*scheduler.Scheduler).Patients, "patients", "removed")
}

// --- DOCTORS ---

func (h *Handler) ListDoctors(c *gin.Context) {
	var doctors []string
	h.session(c, func(s *scheduler.Scheduler) { doctors = s.Doctors() })
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (h *Handler) AddDoctor(c *gin.Context) {
	h.changeNames(c, "doctor.add", (*scheduler.Scheduler).AddDoctor, (*scheduler.Scheduler).Doctors, "doctors", "added")
}

func (h *Handler) RemoveDoctor(c *gin.Context) {
	h.changeNames(c, "doctor.remove", (*scheduler.Scheduler).RemoveDoctor, (*scheduler.Scheduler).Doctors, "doctors", "removed")
}

// --- SCHEDULE ---

func (h *Handler) GetSchedule(c *gin.Context) {
	var schedule []models.ScheduleEntry
	h.session(c, func(s *scheduler.Scheduler) { schedule = s.Schedule() })
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// GenerateSchedule replaces the team's schedule. No patients or no doctors
// gives an empty schedule, not an error.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var schedule []models.ScheduleEntry
	h.session(c, func(s *scheduler.Scheduler) { schedule = s.Generate() })
	h.record(c, "schedule.generate", strconv.Itoa(len(schedule)))

	resp := gin.H{"schedule": schedule}
	if len(schedule) > 0 {
		resp["message"] = "Schedule generated successfully"
	} else {
		resp["message"] = "Add at least one patient and one doctor to generate a schedule"
	}
	c.JSON(http.StatusOK, resp)
}

// Reschedule moves one patient's visit to another day of the week.
func (h *Handler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must contain patient and day"})
		return
	}
	day, err := scheduler.ParseDay(req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "days": scheduler.Days})
		return
	}

	var entry models.ScheduleEntry
	err = h.Sessions.With(teamOf(c), func(s *scheduler.Scheduler) error {
		var err error
		entry, err = s.Reschedule(req.Patient, day)
		return err
	})
	if errors.Is(err, scheduler.ErrNotScheduled) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("reschedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule"})
		return
	}
	h.record(c, "schedule.reschedule", req.Patient+" -> "+entry.Day)

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// ResetSession throws away the team's patients, doctors and schedule.
func (h *Handler) ResetSession(c *gin.Context) {
	existed := h.Sessions.Reset(teamOf(c))
	if existed {
		h.record(c, "session.reset", "")
	}
	c.JSON(http.StatusOK, gin.H{"reset": existed})
}

// --- helpers ---

// teamOf is the session key of the caller. Coordinators and the viewers
// they added share it.
func teamOf(c *gin.Context) string {
	return c.GetString(middleware.TeamIDKey)
}

func (h *Handler) session(c *gin.Context, fn func(*scheduler.Scheduler)) {
	h.Sessions.Do(teamOf(c), fn)
}

func (h *Handler) record(c *gin.Context, action, target string) {
	if h.Activity != nil {
		h.Activity.Record(c.GetString(middleware.UserIDKey), teamOf(c), action, target)
	}
}

// changeNames applies an add or remove to one of the session's name
// collections and answers with the resulting list.
func (h *Handler) changeNames(
	c *gin.Context,
	action string,
	change func(*scheduler.Scheduler, string) bool,
	list func(*scheduler.Scheduler) []string,
	listKey, flagKey string,
) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var changed bool
	var names []string
	h.session(c, func(s *scheduler.Scheduler) {
		changed = change(s, req.Name)
		names = list(s)
	})
	if changed {
		h.record(c, action, req.Name)
	}
	c.JSON(http.StatusOK, gin.H{flagKey: changed, listKey: names})
}
