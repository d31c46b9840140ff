package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. Email is unique and stored lower-cased.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Sex as declared in the training profile.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ExperienceLevel of the athlete, used to tune generated programs.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

var sexAliases = map[string]Sex{
	"male":      SexMale,
	"m":         SexMale,
	"masculino": SexMale,
	"female":    SexFemale,
	"f":         SexFemale,
	"feminino":  SexFemale,
	"other":     SexOther,
	"outro":     SexOther,
}

var levelAliases = map[string]ExperienceLevel{
	"beginner":      LevelBeginner,
	"iniciante":     LevelBeginner,
	"intermediate":  LevelIntermediate,
	"intermediario": LevelIntermediate,
	"intermediário": LevelIntermediate,
	"advanced":      LevelAdvanced,
	"avancado":      LevelAdvanced,
	"avançado":      LevelAdvanced,
}

// ParseSex resolves a questionnaire answer. ok is false for unknown values.
func ParseSex(s string) (Sex, bool) {
	v, ok := sexAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// ParseExperienceLevel resolves a questionnaire answer. ok is false for unknown values.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	v, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// UserProfile keeps the answers given in the AI setup questionnaire.
// There is at most one profile per user; it is upserted whenever an
// AI-generated program is accepted.
type UserProfile struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID           primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Objective         Objective          `bson:"objective" json:"objective"`
	Sex               Sex                `bson:"sex" json:"sex"`
	Age               int                `bson:"age" json:"age"`
	WeightKg          float64            `bson:"weightKg" json:"weightKg"`
	HeightCm          int                `bson:"heightCm" json:"heightCm"`
	Limitations       string             `bson:"limitations,omitempty" json:"limitations,omitempty"`
	DaysPerWeek       int                `bson:"daysPerWeek" json:"daysPerWeek"`
	MinutesPerSession int                `bson:"minutesPerSession" json:"minutesPerSession"`
	ExperienceLevel   ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
	GymAccess         bool               `bson:"gymAccess" json:"gymAccess"`
	HomeEquipment     string             `bson:"homeEquipment,omitempty" json:"homeEquipment,omitempty"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
