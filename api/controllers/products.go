package controllers

import (
	"net/http"
	"strings"

	"github.com/nayeemjohny/pcbuilder-backend/api/responses"
	"github.com/nayeemjohny/pcbuilder-backend/api/validators"
	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

// categoryFromRequest resolves the category query parameter, accepting
// either the URL slug ("graphics-cards") or the enum value ("gpu").
func categoryFromRequest(r *http.Request) (enums.ComponentCategory, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if category, ok := catalog.CategoryForSlug(raw); ok {
		return category, nil
	}
	category, err := enums.ParseComponentCategory(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category")
	}
	return category, nil
}

// ListProducts serves the public category browse with optional search.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := categoryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		grouped, err := validators.ParseQueryBool(r, "grouped")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			Category: category,
			Query:    r.URL.Query().Get("q"),
			Grouped:  grouped,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves the product detail with grouped retailer listings.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
