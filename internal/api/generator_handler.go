package api

import (
	"fmt"
	"ironai/workout-app/internal/ai"
	"ironai/workout-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GeneratorHandler struct {
	generatorService service.GeneratorService
}

func NewGeneratorHandler(generatorService service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{generatorService: generatorService}
}

// GenerateResponse is the draft in the shape POST /workouts accepts, with the
// questionnaire echoed back as perfil.
type GenerateResponse struct {
	DraftID string `json:"draftId"`
	*ai.Draft
	Profile ai.ProfileInput `json:"perfil"`
}

// Generate godoc
// @Summary Generate a program draft from the training questionnaire
// @Description The draft is not saved. At most a few generated programs can be saved per UTC day.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ai.ProfileInput true "Questionnaire answers"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} gin.H "Invalid questionnaire"
// @Failure 429 {object} gin.H "Daily quota reached"
// @Failure 500 {object} gin.H "Model unavailable or unusable reply"
// @Router /workouts/generate [post]
func (h *GeneratorHandler) Generate(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ai.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	generated, err := h.generatorService.Generate(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{
		DraftID: generated.DraftID,
		Draft:   generated.Draft,
		Profile: generated.Profile,
	})
}
