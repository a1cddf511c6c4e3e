package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

const (
	maxJSONBodySize = 1 << 20
	// matches the year column width
	maxYearLength = 10
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewApiErr(http.StatusRequestEntityTooLarge, "request body too large")
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

func validateProjectInput(in models.ProjectInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"slug", in.Slug},
		{"title", in.Title},
		{"product", in.Product},
		{"platform", in.Platform},
		{"description", in.Description},
		{"year", in.Year},
		{"challenge", in.Challenge},
		{"solution", in.Solution},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return errs.NewMissingRequiredFieldError(f.name)
		}
	}
	if utf8.RuneCountInString(in.Year) > maxYearLength {
		return errs.NewInvalidFieldError("year", fmt.Sprintf("must be at most %d characters", maxYearLength))
	}
	if !slugPattern.MatchString(in.Slug) {
		return errs.NewInvalidFieldError("slug", "only letters, digits and . _ ~ - are allowed")
	}
	return nil
}

func projectIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "projectID")
	if raw == "" {
		return 0, errs.NewBadRequestError("missing projectID")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError("projectID", "must be an integer")
	}
	return id, nil
}
