package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletedSession is one finished execution of a program day.
// The referenced day may later be deleted together with its program;
// sessions are kept regardless.
type CompletedSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID         primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	DayID           primitive.ObjectID `bson:"dayId" json:"dayId"`
	PerformedAt     time.Time          `bson:"performedAt" json:"performedAt"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Completed       bool               `bson:"completed" json:"completed"`
}

// ExecutionRecord holds what was actually done for one exercise in a session.
// Weights, Reps and RestSeconds always have the same length: one entry per set
// marked done.
type ExecutionRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID  primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	// DayExerciseID is the planned row the execution was recorded against, when known.
	DayExerciseID primitive.ObjectID `bson:"dayExerciseId,omitempty" json:"dayExerciseId,omitempty"`
	Weights       []float64          `bson:"weights" json:"weights"`
	Reps          []int              `bson:"reps" json:"reps"`
	RestSeconds   []int              `bson:"restSeconds" json:"restSeconds"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
}
