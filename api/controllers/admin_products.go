package controllers

import (
	"net/http"

	"github.com/nayeemjohny/pcbuilder-backend/api/responses"
	"github.com/nayeemjohny/pcbuilder-backend/api/validators"
	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
)

type priceRequest struct {
	Shop         string  `json:"shop" validate:"required,max=120"`
	PriceBDT     int     `json:"price_bdt" validate:"min=0"`
	Availability string  `json:"availability" validate:"omitempty,oneof=in_stock out_of_stock pre_order"`
	URL          *string `json:"url" validate:"omitempty,url"`
}

func (p priceRequest) toInput() catalog.PriceInput {
	return catalog.PriceInput{
		Shop:         p.Shop,
		PriceBDT:     p.PriceBDT,
		Availability: enums.Availability(p.Availability),
		URL:          p.URL,
	}
}

type createProductRequest struct {
	Name           string            `json:"name" validate:"required,max=255"`
	Brand          string            `json:"brand" validate:"required,max=120"`
	Image          *string           `json:"image" validate:"omitempty,url"`
	Category       string            `json:"category" validate:"required"`
	Specifications map[string]string `json:"specifications"`
	Highlights     []string          `json:"highlights" validate:"omitempty,dive,required"`
	Prices         []priceRequest    `json:"prices" validate:"omitempty,dive"`
}

// AdminCreateProduct imports a product with its retailer listings.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseComponentCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category"))
			return
		}

		input := catalog.CreateProductInput{
			Name:           payload.Name,
			Brand:          payload.Brand,
			Image:          payload.Image,
			Category:       category,
			Specifications: payload.Specifications,
			Highlights:     payload.Highlights,
		}
		for _, price := range payload.Prices {
			input.Prices = append(input.Prices, price.toInput())
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name           *string            `json:"name" validate:"omitempty,max=255"`
	Brand          *string            `json:"brand" validate:"omitempty,max=120"`
	Image          *string            `json:"image" validate:"omitempty,url"`
	Specifications *map[string]string `json:"specifications"`
	Highlights     *[]string          `json:"highlights"`
}

// AdminUpdateProduct patches the mutable product fields. Prices are
// managed through the dedicated replace endpoint.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, catalog.UpdateProductInput{
			Name:           payload.Name,
			Brand:          payload.Brand,
			Image:          payload.Image,
			Specifications: payload.Specifications,
			Highlights:     payload.Highlights,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type replacePricesRequest struct {
	Prices []priceRequest `json:"prices" validate:"dive"`
}

// AdminReplacePrices swaps a product's full retailer price set and
// recomputes its minimum price.
func AdminReplacePrices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replacePricesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prices := make([]catalog.PriceInput, 0, len(payload.Prices))
		for _, price := range payload.Prices {
			prices = append(prices, price.toInput())
		}

		product, err := svc.ReplacePrices(r.Context(), id, prices)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
