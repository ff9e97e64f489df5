package server

import (
	"errors"
	"fmt"
	"net/http"

	"catalog-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// handleError maps the domain error taxonomy to a status code and the
// message shown to the user.
func handleError(err error) (int, string) {
	var (
		validationErr *domain.ValidationError
		inUseErr      *domain.CategoryInUseError
		storageErr    *domain.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, domain.ErrDuplicateCategory):
		return http.StatusConflict, "A category with that name already exists."
	case errors.As(err, &inUseErr):
		return http.StatusConflict, fmt.Sprintf("Cannot delete: %d product(s) still use this category.", inUseErr.Count)
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Product not found."
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found."
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError, storageErr.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondError(c echo.Context, err error, fields log.Fields) error {
	statusCode, errorMsg := handleError(err)
	entry := log.WithError(err).WithFields(fields).WithField("status", statusCode)
	if statusCode >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Info("Request rejected")
	}
	return c.JSON(statusCode, map[string]string{
		"error": errorMsg,
	})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"error": "Invalid request body.",
	})
}
