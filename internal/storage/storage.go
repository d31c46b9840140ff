package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DraftArchive keeps the raw replies of the AI generator for later inspection.
type DraftArchive interface {
	// PutObject stores body under objectKey.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error
}

// DraftKey is the object key of one archived draft.
func DraftKey(ownerID primitive.ObjectID, draftID uuid.UUID) string {
	return fmt.Sprintf("drafts/%s/%s.json", ownerID.Hex(), draftID.String())
}

// noopArchive is used when no bucket is configured.
type noopArchive struct{}

// NewNoopArchive returns an archive that discards everything.
func NewNoopArchive() DraftArchive {
	return noopArchive{}
}

func (noopArchive) PutObject(context.Context, string, string, []byte) error {
	return nil
}
