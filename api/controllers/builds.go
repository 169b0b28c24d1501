package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/api/responses"
	"github.com/nayeemjohny/pcbuilder-backend/api/validators"
	"github.com/nayeemjohny/pcbuilder-backend/internal/builds"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

type publishBuildRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Title     string `json:"title" validate:"required,max=160"`
	Author    string `json:"author" validate:"omitempty,max=80"`
}

// PublishBuild snapshots a builder session into the public feed.
func PublishBuild(svc builds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload publishBuildRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sessionID, err := uuid.Parse(payload.SessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id"))
			return
		}

		build, err := svc.Publish(r.Context(), builds.PublishInput{
			SessionID: sessionID,
			Title:     payload.Title,
			Author:    payload.Author,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, build)
	}
}

// BuildFeed serves the published community builds, newest first.
func BuildFeed(svc builds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		feed, err := svc.Feed(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, feed)
	}
}

// GetBuild serves one published build.
func GetBuild(svc builds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		build, err := svc.GetBuild(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, build)
	}
}
