package api

import (
	"fmt"
	"ironai/workout-app/internal/domain"
	"ironai/workout-app/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxHistoryLimit = 100

type HistoryHandler struct {
	historyService service.HistoryService
}

func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// --- Request/Response Structs ---

type SetRequest struct {
	Weight domain.LooseText `json:"peso"`
	Reps   domain.LooseText `json:"reps"`
	Done   bool             `json:"concluido"`
	Rest   domain.LooseText `json:"descansoRealizado"`
}

type ExerciseLogRequest struct {
	ID   string       `json:"id"`
	Sets []SetRequest `json:"seriesFeitas"`
	Note string       `json:"observacoes"`
}

type RecordSessionRequest struct {
	DayID           string               `json:"diaTreinoId" binding:"required"`
	DurationSeconds domain.LooseInt      `json:"duracaoSegundos"`
	Exercises       []ExerciseLogRequest `json:"exerciciosRealizados"`
}

type ExecutionRecordResponse struct {
	ExerciseID    string    `json:"exercicioId"`
	DayExerciseID string    `json:"exercicioTreinoId,omitempty"`
	Weights       []float64 `json:"pesos"`
	Reps          []int     `json:"reps"`
	RestSeconds   []int     `json:"descansos"`
	Note          string    `json:"observacoes,omitempty"`
}

type SessionResponse struct {
	ID              string                    `json:"id"`
	DayID           string                    `json:"diaTreinoId"`
	PerformedAt     time.Time                 `json:"data"`
	DurationMinutes int                       `json:"duracaoMinutos"`
	Exercises       []ExecutionRecordResponse `json:"exercicios"`
}

func MapSessionToResponse(s *service.SessionSummary) SessionResponse {
	res := SessionResponse{
		ID:              s.ID.Hex(),
		DayID:           s.DayID.Hex(),
		PerformedAt:     s.PerformedAt,
		DurationMinutes: s.DurationMinutes,
		Exercises:       make([]ExecutionRecordResponse, len(s.Records)),
	}
	for i, r := range s.Records {
		rec := ExecutionRecordResponse{
			ExerciseID:  r.ExerciseID.Hex(),
			Weights:     r.Weights,
			Reps:        r.Reps,
			RestSeconds: r.RestSeconds,
			Note:        r.Note,
		}
		if !r.DayExerciseID.IsZero() {
			rec.DayExerciseID = r.DayExerciseID.Hex()
		}
		res.Exercises[i] = rec
	}
	return res
}

func MapSessionsToResponse(sessions []service.SessionSummary) []SessionResponse {
	res := make([]SessionResponse, len(sessions))
	for i := range sessions {
		res[i] = MapSessionToResponse(&sessions[i])
	}
	return res
}

func (req *RecordSessionRequest) toSessionInput() (service.SessionInput, error) {
	in := service.SessionInput{DurationSeconds: req.DurationSeconds.Value}
	dayID, err := primitive.ObjectIDFromHex(req.DayID)
	if err != nil {
		return in, fmt.Errorf("invalid diaTreinoId %q", req.DayID)
	}
	in.DayID = dayID

	for _, entry := range req.Exercises {
		entryLog := service.ExerciseLog{Note: entry.Note, Sets: make([]service.SetInput, len(entry.Sets))}
		done := false
		for i, set := range entry.Sets {
			entryLog.Sets[i] = service.SetInput{Weight: set.Weight, Reps: set.Reps, Rest: set.Rest, Done: set.Done}
			done = done || set.Done
		}
		id, err := primitive.ObjectIDFromHex(entry.ID)
		if err != nil {
			if !done {
				// nothing would be recorded for it anyway
				continue
			}
			return in, fmt.Errorf("invalid exercise id %q", entry.ID)
		}
		entryLog.ID = id
		in.Exercises = append(in.Exercises, entryLog)
	}
	return in, nil
}

// --- Handler Methods ---

// RecordSession godoc
// @Summary Record a finished workout
// @Description Stores the session and, for every exercise with at least one set marked done, what was actually lifted.
// @Tags History
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body RecordSessionRequest true "Finished workout"
// @Success 201 {object} gin.H "message and sessionId"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Day of another user"
// @Failure 404 {object} gin.H "Day not found"
// @Router /history [post]
func (h *HistoryHandler) RecordSession(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	var req RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	in, err := req.toSessionInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sessionID, err := h.historyService.Record(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Workout saved", "sessionId": sessionID.Hex()})
}

// ListSessions godoc
// @Summary Recent completed workouts
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of sessions"
// @Success 200 {array} SessionResponse
// @Failure 400 {object} gin.H "Invalid limit"
// @Router /history [get]
func (h *HistoryHandler) ListSessions(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := service.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	sessions, err := h.historyService.List(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}
