package service

import (
	"ironai/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NextDay picks the day to train after lastDayID in a rotation over days,
// which must be sorted by Order. Without a previous session, or when the
// previous session was against a day outside days, the rotation restarts at
// the first day. ok is false when days is empty.
func NextDay(days []domain.ProgramDay, lastDayID *primitive.ObjectID) (next domain.ProgramDay, ok bool) {
	if len(days) == 0 {
		return domain.ProgramDay{}, false
	}
	if lastDayID == nil {
		return days[0], true
	}
	for i, d := range days {
		if d.ID == *lastDayID {
			return days[(i+1)%len(days)], true
		}
	}
	return days[0], true
}
