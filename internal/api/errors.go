package api

import (
	"errors"
	"ironai/workout-app/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const genericErrorMessage = "An unexpected error occurred"

// respondError maps a service error onto a status code. Details of
// unexpected errors are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, clientMessage(err, service.ErrValidation))
	case errors.Is(err, service.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrInvalidToken):
		abortWithError(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
	case errors.Is(err, service.ErrForbidden):
		abortWithError(c, http.StatusForbidden, service.ErrForbidden.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, clientMessage(err, service.ErrNotFound))
	case errors.Is(err, service.ErrDuplicateEmail):
		abortWithError(c, http.StatusConflict, service.ErrDuplicateEmail.Error())
	case errors.Is(err, service.ErrQuotaExceeded):
		abortWithError(c, http.StatusTooManyRequests, service.ErrQuotaExceeded.Error())
	default:
		fields := log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}
		if uid, idErr := getUserIDFromContext(c); idErr == nil {
			fields["uid"] = uid.Hex()
		}
		log.WithFields(fields).WithError(err).Error("request failed")
		abortWithError(c, http.StatusInternalServerError, genericErrorMessage)
	}
}

// clientMessage returns the message of err as built by the service layer,
// e.g. "validation failed: program name is required".
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	if !strings.HasPrefix(msg, sentinel.Error()) {
		return sentinel.Error()
	}
	return msg
}

// parseObjectIDParam reads a hex ObjectID path parameter, answering 400 when
// it is malformed.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// requireUserID reads the authenticated user, answering 500 when the auth
// middleware did not run.
func requireUserID(c *gin.Context) (primitive.ObjectID, bool) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, false
	}
	return uid, true
}
