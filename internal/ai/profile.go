package ai

import (
	"errors"
	"fmt"
	"ironai/workout-app/internal/domain"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidProfile is wrapped by every profile validation failure.
var ErrInvalidProfile = errors.New("invalid training profile")

// Accepted ranges of the questionnaire answers.
const (
	MinAge              = 14
	MaxAge              = 100
	MinWeightKg         = 30
	MaxWeightKg         = 300
	MinHeightCm         = 100
	MaxHeightCm         = 250
	MinDays             = 1
	MaxDays             = 7
	MinMinutes          = 15
	MaxMinutes          = 180
	MaxLimitationsLen   = 500
	MaxHomeEquipmentLen = 300
)

// ProfileInput is the questionnaire as the web client sends it. Numbers may
// arrive as strings.
type ProfileInput struct {
	Objective     string           `json:"objetivo"`
	Sex           string           `json:"sexo"`
	Age           domain.LooseInt  `json:"idade"`
	Weight        domain.LooseText `json:"peso"`
	Height        domain.LooseInt  `json:"altura"`
	Limitations   string           `json:"limitacoes"`
	Days          domain.LooseInt  `json:"dias"`
	Minutes       domain.LooseInt  `json:"tempo"`
	Level         string           `json:"nivel"`
	GymAccess     *bool            `json:"acesso_academia"`
	HomeEquipment string           `json:"equipamentos"`
}

// Profile is a validated, sanitised questionnaire.
type Profile struct {
	Objective         domain.Objective
	ObjectiveLabel    string // as typed by the user, used in the prompt
	Sex               domain.Sex
	Age               int
	WeightKg          float64
	HeightCm          int
	Limitations       string
	DaysPerWeek       int
	MinutesPerSession int
	Level             domain.ExperienceLevel
	GymAccess         bool
	HomeEquipment     string
}

// ParseProfile validates in and strips prompt-breaking characters from the
// free text answers. Errors wrap ErrInvalidProfile.
func ParseProfile(in ProfileInput) (Profile, error) {
	var p Profile

	objective, ok := domain.ParseObjective(in.Objective)
	if !ok {
		return p, invalid("objective %q is not supported", in.Objective)
	}
	p.Objective = objective
	p.ObjectiveLabel = Sanitize(in.Objective)

	if p.Sex, ok = domain.ParseSex(in.Sex); !ok {
		return p, invalid("sex %q is not supported", in.Sex)
	}
	if p.Level, ok = domain.ParseExperienceLevel(in.Level); !ok {
		return p, invalid("level %q is not supported", in.Level)
	}

	if !in.Age.Valid || in.Age.Value < MinAge || in.Age.Value > MaxAge {
		return p, invalid("age must be between %d and %d", MinAge, MaxAge)
	}
	p.Age = in.Age.Value

	weight, ok := in.Weight.Float()
	if !ok || weight < MinWeightKg || weight > MaxWeightKg {
		return p, invalid("weight must be between %d and %d kg", MinWeightKg, MaxWeightKg)
	}
	p.WeightKg = weight

	if !in.Height.Valid || in.Height.Value < MinHeightCm || in.Height.Value > MaxHeightCm {
		return p, invalid("height must be between %d and %d cm", MinHeightCm, MaxHeightCm)
	}
	p.HeightCm = in.Height.Value

	if !in.Days.Valid || in.Days.Value < MinDays || in.Days.Value > MaxDays {
		return p, invalid("days per week must be between %d and %d", MinDays, MaxDays)
	}
	p.DaysPerWeek = in.Days.Value

	if !in.Minutes.Valid || in.Minutes.Value < MinMinutes || in.Minutes.Value > MaxMinutes {
		return p, invalid("minutes per session must be between %d and %d", MinMinutes, MaxMinutes)
	}
	p.MinutesPerSession = in.Minutes.Value

	p.Limitations = Sanitize(in.Limitations)
	if len([]rune(p.Limitations)) > MaxLimitationsLen {
		return p, invalid("limitations must be at most %d characters", MaxLimitationsLen)
	}

	p.HomeEquipment = Sanitize(in.HomeEquipment)
	if len([]rune(p.HomeEquipment)) > MaxHomeEquipmentLen {
		return p, invalid("equipment must be at most %d characters", MaxHomeEquipmentLen)
	}

	// the questionnaire defaults to a gym
	p.GymAccess = in.GymAccess == nil || *in.GymAccess

	return p, nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidProfile, fmt.Sprintf(format, args...))
}

// UserProfile converts p into the stored profile of ownerID.
func (p Profile) UserProfile(ownerID primitive.ObjectID) *domain.UserProfile {
	return &domain.UserProfile{
		OwnerID:           ownerID,
		Objective:         p.Objective,
		Sex:               p.Sex,
		Age:               p.Age,
		WeightKg:          p.WeightKg,
		HeightCm:          p.HeightCm,
		Limitations:       p.Limitations,
		DaysPerWeek:       p.DaysPerWeek,
		MinutesPerSession: p.MinutesPerSession,
		ExperienceLevel:   p.Level,
		GymAccess:         p.GymAccess,
		HomeEquipment:     p.HomeEquipment,
	}
}

var sanitizer = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "`", "")

// Sanitize removes characters that could break out of the quoted sections of
// the prompt and trims the result.
func Sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Replace(s))
}
