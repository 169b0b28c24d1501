package controllers

import (
	"net/http"

	"github.com/nayeemjohny/pcbuilder-backend/api/responses"
	"github.com/nayeemjohny/pcbuilder-backend/api/validators"
	"github.com/nayeemjohny/pcbuilder-backend/internal/compat"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
)

// CompatMotherboards lists motherboard ids partitioned against a CPU's
// socket.
func CompatMotherboards(svc compat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cpuID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.MotherboardsForCPU(r.Context(), cpuID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, compatPayload(result))
	}
}

// CompatMemory lists RAM ids partitioned against a motherboard's memory
// type.
func CompatMemory(svc compat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.MemoryForMotherboard(r.Context(), boardID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, compatPayload(result))
	}
}

func compatPayload(result *compat.Result) map[string]any {
	return map[string]any{
		"spec_key":   result.SpecKey,
		"spec_value": result.SpecValue,
		"compatible": result.Compatible,
		"unknown":    result.Unknown,
	}
}
