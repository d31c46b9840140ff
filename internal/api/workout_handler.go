package api

import (
	"fmt"
	"ironai/workout-app/internal/ai"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/service"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves the program endpoints.
type WorkoutHandler struct {
	programService service.ProgramService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(programService service.ProgramService) *WorkoutHandler {
	return &WorkoutHandler{programService: programService}
}

// --- Request DTOs ---

// ExerciseEntryRequest accepts both the manual builder's structured targets
// and the AI draft's free text ones.
type ExerciseEntryRequest struct {
	ExerciseID  string           `json:"exercicio_id"`
	Name        string           `json:"nome"`
	Equipment   string           `json:"equipamento"`
	Series      domain.LooseInt  `json:"series"`
	Reps        domain.LooseText `json:"repeticoes"`
	RepMin      domain.LooseInt  `json:"repeticoes_min"`
	RepMax      domain.LooseInt  `json:"repeticoes_max"`
	Rest        domain.LooseText `json:"descanso"`
	RestSeconds domain.LooseInt  `json:"descanso_segundos"`
	Note        string           `json:"observacao"`
	Notes       string           `json:"observacoes"`
}

type DayRequest struct {
	Name      string                 `json:"nome"`
	Focus     string                 `json:"foco"`
	Exercises []ExerciseEntryRequest `json:"exercicios"`
}

type CreateProgramRequest struct {
	Name             string           `json:"nome"`
	Description      string           `json:"descricao"`
	Objective        string           `json:"objetivo"`
	Days             []DayRequest     `json:"dias"`
	Profile          *ai.ProfileInput `json:"perfil"`
	MachineGenerated *bool            `json:"gerado_por_ia"`
}

// UpdateProgramRequest takes the client's Portuguese keys or their English
// equivalents.
type UpdateProgramRequest struct {
	Name          *string `json:"nome"`
	Description   *string `json:"descricao"`
	Objective     *string `json:"objetivo"`
	NameEn        *string `json:"name"`
	DescriptionEn *string `json:"description"`
	ObjectiveEn   *string `json:"objective"`
}

type UpdateExerciseRequest struct {
	Series       *int    `json:"series"`
	RepMin       *int    `json:"repeticoes_min"`
	RepMax       *int    `json:"repeticoes_max"`
	RestSeconds  *int    `json:"descanso_segundos"`
	ExerciseID   *string `json:"exercicio_id"`
	DefinitionID *string `json:"exerciseDefinitionId"`
}

// --- Response DTOs ---

type ProgramResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"nome"`
	Description      string    `json:"descricao"`
	Objective        string    `json:"objetivo"`
	MachineGenerated bool      `json:"gerado_por_ia"`
	CreatedAt        time.Time `json:"criado_em"`
}

type DayExerciseResponse struct {
	ID          string `json:"id"`
	ExerciseID  string `json:"exercicio_id"`
	Name        string `json:"nome,omitempty"`
	Equipment   string `json:"equipamento,omitempty"`
	Order       int    `json:"ordem_execucao"`
	Series      int    `json:"series"`
	RepMin      int    `json:"repeticoes_min"`
	RepMax      int    `json:"repeticoes_max"`
	RestSeconds int    `json:"descanso_segundos"`
	Note        string `json:"observacoes,omitempty"`
}

type DayResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"nome"`
	Order     int                   `json:"ordem_dia"`
	Focus     string                `json:"foco"`
	Exercises []DayExerciseResponse `json:"exercicios"`
}

type ProgramDetailResponse struct {
	ProgramResponse
	Days []DayResponse `json:"dias"`
}

// ExerciseRef is the nested definition of an active workout row.
type ExerciseRef struct {
	Name      string `json:"nome"`
	Equipment string `json:"equipamento"`
}

type ActiveExerciseResponse struct {
	DayExerciseResponse
	Exercise ExerciseRef `json:"exercicios"`
}

// ActiveDayResponse is the day as consumed by the active workout screen.
type ActiveDayResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"nome"`
	Focus       string                   `json:"foco"`
	Order       int                      `json:"ordem_dia"`
	ProgramID   string                   `json:"treino_id"`
	ProgramName string                   `json:"treino_nome"`
	Exercises   []ActiveExerciseResponse `json:"exercicios_treino"`
}

func MapProgramToResponse(p *domain.Program) ProgramResponse {
	if p == nil {
		return ProgramResponse{}
	}
	return ProgramResponse{
		ID:               p.ID.Hex(),
		Name:             p.Name,
		Description:      p.Description,
		Objective:        string(p.Objective),
		MachineGenerated: p.MachineGenerated,
		CreatedAt:        p.CreatedAt,
	}
}

func MapProgramsToResponse(programs []domain.Program) []ProgramResponse {
	res := make([]ProgramResponse, len(programs))
	for i := range programs {
		res[i] = MapProgramToResponse(&programs[i])
	}
	return res
}

func MapDayExerciseToResponse(item *domain.DayExercise) DayExerciseResponse {
	return DayExerciseResponse{
		ID:          item.ID.Hex(),
		ExerciseID:  item.ExerciseID.Hex(),
		Order:       item.Order,
		Series:      item.Series,
		RepMin:      item.RepMin,
		RepMax:      item.RepMax,
		RestSeconds: item.RestSeconds,
		Note:        item.Note,
	}
}

func mapExerciseView(v *service.ExerciseView) DayExerciseResponse {
	res := MapDayExerciseToResponse(&v.DayExercise)
	res.Name = v.Name
	res.Equipment = v.Equipment
	return res
}

func MapProgramDetailToResponse(d *service.ProgramDetail) ProgramDetailResponse {
	res := ProgramDetailResponse{
		ProgramResponse: MapProgramToResponse(&d.Program),
		Days:            make([]DayResponse, len(d.Days)),
	}
	for i, day := range d.Days {
		exercises := make([]DayExerciseResponse, len(day.Exercises))
		for j := range day.Exercises {
			exercises[j] = mapExerciseView(&day.Exercises[j])
		}
		res.Days[i] = DayResponse{
			ID:        day.ID.Hex(),
			Name:      day.Name,
			Order:     day.Order,
			Focus:     day.Focus,
			Exercises: exercises,
		}
	}
	return res
}

func MapActiveDayToResponse(d *service.DayView) ActiveDayResponse {
	res := ActiveDayResponse{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Focus:       d.Focus,
		Order:       d.Order,
		ProgramID:   d.ProgramID.Hex(),
		ProgramName: d.ProgramName,
		Exercises:   make([]ActiveExerciseResponse, len(d.Exercises)),
	}
	for i := range d.Exercises {
		v := &d.Exercises[i]
		res.Exercises[i] = ActiveExerciseResponse{
			DayExerciseResponse: mapExerciseView(v),
			Exercise:            ExerciseRef{Name: v.Name, Equipment: v.Equipment},
		}
	}
	return res
}

// toProgramDraft resolves the loose request into the strict service form.
func (req *CreateProgramRequest) toProgramDraft() (service.ProgramDraft, error) {
	draft := service.ProgramDraft{
		Name:             req.Name,
		Description:      req.Description,
		MachineGenerated: req.MachineGenerated,
		Days:             make([]service.DaySpec, len(req.Days)),
	}

	if req.Profile != nil {
		profile, err := ai.ParseProfile(*req.Profile)
		if err != nil {
			return draft, err
		}
		draft.Profile = &profile
		draft.Objective = profile.Objective
	}
	// unknown or missing objectives fall back to general
	if objective, ok := domain.ParseObjective(req.Objective); ok {
		draft.Objective = objective
	}

	for i, day := range req.Days {
		daySpec := service.DaySpec{Name: day.Name, Focus: day.Focus, Exercises: make([]service.ExerciseSpec, len(day.Exercises))}
		for j, ex := range day.Exercises {
			entry := service.ExerciseSpec{
				Name:      ex.Name,
				Equipment: ex.Equipment,
				Note:      ex.Note,
				Targets: service.ResolveTargets(service.TargetInput{
					Series:      ex.Series,
					Reps:        ex.Reps,
					RepMin:      ex.RepMin,
					RepMax:      ex.RepMax,
					Rest:        ex.Rest,
					RestSeconds: ex.RestSeconds,
				}),
			}
			if entry.Note == "" {
				entry.Note = ex.Notes
			}
			if id := strings.TrimSpace(ex.ExerciseID); id != "" {
				oid, err := primitive.ObjectIDFromHex(id)
				if err != nil {
					return draft, fmt.Errorf("invalid exercicio_id %q", id)
				}
				entry.ExerciseID = &oid
			}
			daySpec.Exercises[j] = entry
		}
		draft.Days[i] = daySpec
	}
	return draft, nil
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Save a program
// @Description Saves a manually built program or an accepted AI draft. An attached perfil is stored as the user's training profile.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program with days and exercises"
// @Success 201 {object} gin.H "message and treinoId"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateProgram(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	draft, err := req.toProgramDraft()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	programID, err := h.programService.Create(c.Request.Context(), uid, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Program saved", "treinoId": programID.Hex()})
}

// ListPrograms godoc
// @Summary List the caller's programs
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProgramResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListPrograms(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	programs, err := h.programService.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramsToResponse(programs))
}

// GetProgram godoc
// @Summary Program detail with days and exercises
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} ProgramDetailResponse
// @Failure 404 {object} gin.H "Not found or not owned"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetProgram(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	programID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.programService.Detail(c.Request.Context(), uid, programID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramDetailToResponse(detail))
}

// GetDay godoc
// @Summary One day for the active workout screen
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Success 200 {object} ActiveDayResponse
// @Failure 403 {object} gin.H "Day of another user"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/day/{dayId} [get]
func (h *WorkoutHandler) GetDay(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	dayID, ok := parseObjectIDParam(c, "dayId")
	if !ok {
		return
	}
	day, err := h.programService.Day(c.Request.Context(), uid, dayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapActiveDayToResponse(day))
}

// UpdateProgram godoc
// @Summary Rename or re-describe a program
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param patch body UpdateProgramRequest true "Fields to change"
// @Success 200 {object} ProgramResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Not found or not owned"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateProgram(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	programID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	patch := service.ProgramPatch{
		Name:        firstSet(req.Name, req.NameEn),
		Description: firstSet(req.Description, req.DescriptionEn),
		Objective:   firstSet(req.Objective, req.ObjectiveEn),
	}
	program, err := h.programService.Update(c.Request.Context(), uid, programID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// DeleteProgram godoc
// @Summary Delete a program with its days and exercises
// @Description Programs of other users are left untouched; the call still succeeds.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} gin.H
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteProgram(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	programID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.programService.Delete(c.Request.Context(), uid, programID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Program deleted"})
}

// UpdateExercise godoc
// @Summary Change the targets of a day exercise or substitute it
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Day exercise ID"
// @Param patch body UpdateExerciseRequest true "Targets or substitute"
// @Success 200 {object} DayExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Exercise of another user"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/exercises/{id} [put]
func (h *WorkoutHandler) UpdateExercise(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	patch := service.ExercisePatch{
		Series:      req.Series,
		RepMin:      req.RepMin,
		RepMax:      req.RepMax,
		RestSeconds: req.RestSeconds,
	}
	if raw := firstSet(req.ExerciseID, req.DefinitionID); raw != nil {
		oid, err := primitive.ObjectIDFromHex(*raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercicio_id format")
			return
		}
		patch.ExerciseID = &oid
	}

	item, err := h.programService.UpdateExercise(c.Request.Context(), uid, itemID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDayExerciseToResponse(item))
}

// RemoveExercise godoc
// @Summary Remove one exercise from a day
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Day exercise ID"
// @Success 200 {object} gin.H
// @Failure 403 {object} gin.H "Exercise of another user"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/exercises/{id} [delete]
func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.programService.RemoveExercise(c.Request.Context(), uid, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise removed"})
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
