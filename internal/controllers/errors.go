package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"truckops/internal/models"
)

// respondDomainError maps domain errors onto HTTP status codes: validation
// failures are 400, missing records 404, conflicts and rejected transitions
// 409, anything else a logged 500.
func respondDomainError(c *gin.Context, err error) {
	var (
		invalidData    *models.InvalidDataError
		invalidHours   *models.InvalidHoursError
		badEndorsement *models.InvalidEndorsementTypeError
		badDocument    *models.InvalidDocumentTypeError
	)

	switch {
	case errors.As(err, &invalidData),
		errors.As(err, &invalidHours),
		errors.As(err, &badEndorsement),
		errors.As(err, &badDocument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDriverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrDriverNotAvailable),
		errors.Is(err, models.ErrNoActiveLoad),
		errors.Is(err, models.ErrNotOnLeave):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("unexpected error handling driver request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
