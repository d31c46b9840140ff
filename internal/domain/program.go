// internal/domain/program.go
package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Objective declared for a program.
type Objective string

const (
	ObjectiveHypertrophy Objective = "hypertrophy"
	ObjectiveFatLoss     Objective = "fat-loss"
	ObjectiveStrength    Objective = "strength"
	ObjectiveEndurance   Objective = "endurance"
	ObjectiveGeneral     Objective = "general"
)

// objectiveAliases maps the labels sent by the web client (Portuguese) and a
// few common spellings onto the canonical values.
var objectiveAliases = map[string]Objective{
	"hypertrophy":     ObjectiveHypertrophy,
	"hipertrofia":     ObjectiveHypertrophy,
	"fat-loss":        ObjectiveFatLoss,
	"fat loss":        ObjectiveFatLoss,
	"emagrecimento":   ObjectiveFatLoss,
	"strength":        ObjectiveStrength,
	"força":           ObjectiveStrength,
	"forca":           ObjectiveStrength,
	"força pura":      ObjectiveStrength,
	"forca pura":      ObjectiveStrength,
	"endurance":       ObjectiveEndurance,
	"resistência":     ObjectiveEndurance,
	"resistencia":     ObjectiveEndurance,
	"condicionamento": ObjectiveEndurance,
	"general":         ObjectiveGeneral,
	"geral":           ObjectiveGeneral,
	"saúde":           ObjectiveGeneral,
	"saude":           ObjectiveGeneral,
}

// ParseObjective resolves a free-form label. ok is false for unknown labels.
func ParseObjective(s string) (Objective, bool) {
	o, ok := objectiveAliases[strings.ToLower(strings.TrimSpace(s))]
	return o, ok
}

// Program is a user-owned workout plan. The most recently created program of a
// user is the active one; there is no explicit flag.
type Program struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID          primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Objective        Objective          `bson:"objective" json:"objective"`
	MachineGenerated bool               `bson:"machineGenerated" json:"machineGenerated"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProgramDay is one training session template within a program.
// Order is 1-based and defines the rotation sequence.
type ProgramDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`
	Name      string             `bson:"name" json:"name"`
	Focus     string             `bson:"focus,omitempty" json:"focus,omitempty"`
	Order     int                `bson:"order" json:"order"`
}

// DayExercise carries the execution targets of an exercise definition inside
// one program day.
type DayExercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID       primitive.ObjectID `bson:"dayId" json:"dayId"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Order       int                `bson:"order" json:"order"`
	Series      int                `bson:"series" json:"series"`
	RepMin      int                `bson:"repMin" json:"repMin"`
	RepMax      int                `bson:"repMax" json:"repMax"`
	RestSeconds int                `bson:"restSeconds" json:"restSeconds"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
}
