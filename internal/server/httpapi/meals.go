package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/gin-gonic/gin"
)

// createMealRequest.Time accepts RFC 3339 with any offset; responses carry
// it in UTC truncated to microseconds.
type createMealRequest struct {
	Name        *string    `json:"name" binding:"required"`
	Description *string    `json:"description" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=on_diet off_diet"`
	Time        *time.Time `json:"time"`
}

type updateMealRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Type        *string    `json:"type" binding:"omitempty,oneof=on_diet off_diet"`
	Time        *time.Time `json:"time"`
}

func (r updateMealRequest) patch() models.MealPatch {
	p := models.MealPatch{Name: r.Name, Description: r.Description, Time: r.Time}
	if r.Type != nil {
		status := models.DietStatus(*r.Type)
		p.Status = &status
	}
	return p
}

type total struct {
	Total int `json:"total"`
}

type metricsResponse struct {
	TotalMeals                 total `json:"totalMeals"`
	OnDietMeals                total `json:"onDietMeals"`
	OffDietMeals               total `json:"offDietMeals"`
	LongestOnDietMealsSequence int   `json:"longestOnDietMealsSequence"`
}

func (s *Server) handleListMeals(c *gin.Context) {
	list, err := s.meals.List(c.Request.Context(), currentAccount(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": list})
}

func (s *Server) handleGetMeal(c *gin.Context) {
	meal, err := s.meals.Get(c.Request.Context(), currentAccount(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (s *Server) handleCreateMeal(c *gin.Context) {
	var req createMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}

	_, err := s.meals.Create(c.Request.Context(), currentAccount(c), services.NewMeal{
		Name:        *req.Name,
		Description: *req.Description,
		Status:      models.DietStatus(req.Type),
		Time:        req.Time,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.MealCreated()
	c.Status(http.StatusCreated)
}

// handleUpdateMeal treats a missing body as an empty patch.
func (s *Server) handleUpdateMeal(c *gin.Context) {
	var req updateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(c, bindError(err))
		return
	}

	if err := s.meals.Update(c.Request.Context(), currentAccount(c), c.Param("id"), req.patch()); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) handleDeleteMeal(c *gin.Context) {
	if err := s.meals.Delete(c.Request.Context(), currentAccount(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (s *Server) handleMealMetrics(c *gin.Context) {
	m, err := s.meals.Metrics(c.Request.Context(), currentAccount(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, metricsResponse{
		TotalMeals:                 total{m.TotalCount},
		OnDietMeals:                total{m.WithinDietCount},
		OffDietMeals:               total{m.OffDietCount},
		LongestOnDietMealsSequence: m.LongestWithinDietStreak,
	})
}
