package api

import (
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseResponse is one entry of the shared catalog.
type ExerciseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nome"`
	MuscleGroup string `json:"grupo_muscular"`
	Equipment   string `json:"equipamento"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		Name:        ex.Name,
		MuscleGroup: ex.MuscleGroup,
		Equipment:   ex.Equipment,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	res := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		res[i] = MapExerciseToResponse(&exercises[i])
	}
	return res
}

// ListCatalog godoc
// @Summary List the exercise catalog
// @Description Returns every exercise definition sorted by name.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListCatalog(c *gin.Context) {
	exercises, err := h.exerciseService.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}
