package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ebi50/training28-sub000/internal/adapter"
	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/phase"
	"github.com/Ebi50/training28-sub000/internal/readiness"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
	"github.com/Ebi50/training28-sub000/internal/slots"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

type generateRequest struct {
	UserID    string                    `json:"user_id"`
	WeekStart string                    `json:"week_start" binding:"required"`
	Today     string                    `json:"today"`
	Params    models.PlanningParameters `json:"params"`
	History   []models.DailyLoad        `json:"history"`
	Profile   models.Athlete            `json:"profile"`
	Goals     []models.SeasonGoal       `json:"goals"`
	Camp      *models.TrainingCamp      `json:"camp"`
	EventDate string                    `json:"event_date"`
	WeekIndex int                       `json:"week_index"`

	AfterRecoveryWeek bool `json:"after_recovery_week"`
}

type adaptRequest struct {
	Sessions     []models.TrainingSession `json:"sessions"`
	Check        models.MorningCheck      `json:"check"`
	RecentChecks []models.MorningCheck    `json:"recent_checks"`
	RecentLoad   []models.DailyLoad       `json:"recent_load"`
}

// loadRequest either advances one day from Previous or, when Entries is set,
// rebuilds a chain from sparse entries.
type loadRequest struct {
	Previous models.DailyLoad  `json:"previous"`
	Date     string            `json:"date"`
	TSS      float64           `json:"tss"`
	Entries  []load.DayTSS     `json:"entries"`
	Seed     *models.DailyLoad `json:"seed"`
	Through  string            `json:"through"`
}

type slotsRequest struct {
	Slots []models.TimeSlot `json:"slots"`
}

func (s *Server) handleGeneratePlan(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	weekStart, err := utils.ParseDate(req.WeekStart)
	if err != nil {
		badRequest(c, err)
		return
	}
	today := utils.Midnight(s.now())
	if req.Today != "" {
		if today, err = utils.ParseDate(req.Today); err != nil {
			badRequest(c, err)
			return
		}
	}
	var eventDate *time.Time
	if req.EventDate != "" {
		d, err := utils.ParseDate(req.EventDate)
		if err != nil {
			badRequest(c, err)
			return
		}
		eventDate = &d
	}

	plan, err := scheduler.GenerateWeeklyPlan(c.Request.Context(), s.planning, scheduler.PlanRequest{
		UserID:    req.UserID,
		WeekStart: weekStart,
		Today:     today,
		Params:    req.Params,
		History:   req.History,
		Profile:   req.Profile,
		Goals:     req.Goals,
		Camp:      req.Camp,
		EventDate: eventDate,
		WeekIndex: req.WeekIndex,

		AfterRecoveryWeek: req.AfterRecoveryWeek,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleAdaptSessions(c *gin.Context) {
	var req adaptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := readiness.Validate(req.Check); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, adapter.AdaptDailySessions(req.Sessions, req.Check, req.RecentChecks, req.RecentLoad))
}

func (s *Server) handlePhase(c *gin.Context) {
	today := utils.Midnight(s.now())
	if v := c.Query("today"); v != "" {
		d, err := utils.ParseDate(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		today = d
	}

	var eventDate *time.Time
	if v := c.Query("event_date"); v != "" {
		d, err := utils.ParseDate(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		eventDate = &d
	}

	baseline := s.planning.BaseWeeklyTSS
	if v := c.Query("baseline"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil || b <= 0 {
			badRequest(c, fmt.Errorf("baseline must be a positive number, got %q", v))
			return
		}
		baseline = b
	}
	if baseline <= 0 {
		c.JSON(http.StatusOK, phase.Calculate(eventDate, today))
		return
	}
	c.JSON(http.StatusOK, phase.CalculateWithBaseline(eventDate, today, baseline))
}

func (s *Server) handleLoadUpdate(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if len(req.Entries) > 0 || req.Seed != nil {
		history, err := load.BuildHistory(req.Entries, req.Seed, req.Through)
		if err != nil {
			badRequest(c, err)
			return
		}
		if history == nil {
			history = []models.DailyLoad{}
		}
		c.JSON(http.StatusOK, gin.H{"history": history, "current": load.Current(history)})
		return
	}

	if _, err := utils.ParseDate(req.Date); err != nil {
		badRequest(c, err)
		return
	}
	if req.TSS < 0 {
		badRequest(c, errors.New("tss cannot be negative"))
		return
	}
	next := load.Update(req.Previous, req.Date, req.TSS)
	c.JSON(http.StatusOK, gin.H{"current": next, "form": load.InterpretTSB(next.TSB())})
}

func (s *Server) handleValidateSlots(c *gin.Context) {
	var req slotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res := slots.New().Validate(req.Slots)
	c.JSON(http.StatusOK, gin.H{
		"valid":         !res.HasConflicts(),
		"conflicts":     res.Conflicts,
		"total_minutes": slots.TotalMinutes(req.Slots),
	})
}

// respondError maps engine errors onto status codes. Input the engine
// refuses to plan with is 422; anything else is a server error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, load.ErrRampRateExceeded),
		errors.Is(err, scheduler.ErrMissingPhysiology),
		errors.Is(err, scheduler.ErrInvalidHours):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
