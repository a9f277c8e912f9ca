package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// pageQuery holds the raw pagination parameters shared by list endpoints
type pageQuery struct {
	Page    string `query:"page" validate:"omitempty,number"`
	PerPage string `query:"per_page" validate:"omitempty,number"`
}

// resolve applies defaults to absent parameters. Range checks happen in the
// service so every caller gets the same rules.
func (q pageQuery) resolve(defaultPerPage int) (page, perPage int, err error) {
	page, err = intOrDefault(q.Page, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: page %q is out of range", domain.ErrInvalidArgument, q.Page)
	}
	perPage, err = intOrDefault(q.PerPage, defaultPerPage)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: per_page %q is out of range", domain.ErrInvalidArgument, q.PerPage)
	}
	return page, perPage, nil
}

func intOrDefault(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// splitCSV turns "wool, linen,,cotton" into [wool linen cotton]
func splitCSV(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// validateQuery runs the struct validator and writes a 400 on failure,
// reporting whether the handler may continue
func validateQuery(w http.ResponseWriter, q interface{}) bool {
	if err := middleware.ValidateRequest(q); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid query parameters")
		return false
	}
	return true
}

// respondWithServiceError maps service errors onto HTTP statuses. Storage
// failures are logged with their cause and answered with message only.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, message string) {
	if errors.Is(err, domain.ErrInvalidArgument) {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
	}
	if r.Context().Err() != nil {
		logger.Debug("Request cancelled", fields...)
	} else {
		logger.Error(message, fields...)
	}

	middleware.RespondWithError(w, http.StatusInternalServerError, message)
}
