// internal/domain/exercise.go
package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EquipmentUnspecified is stored when an exercise is created without an
// equipment label.
const EquipmentUnspecified = "Unspecified"

// MuscleGroupGeneral is used when neither the entry nor its day name a focus.
const MuscleGroupGeneral = "General"

// Exercise is a catalog entry shared by every user. Entries are created on
// demand and never deleted.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameKey     string             `bson:"nameKey" json:"-"` // lower-cased Name, unique
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	Equipment   string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

// ExerciseNameKey is the case-insensitive lookup key of an exercise name.
func ExerciseNameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
