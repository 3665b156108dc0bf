// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/internal/platform/validate"
)

// Handler implements the HTTP layer for user accounts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the account routes. Everything under /me requires a caller.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/users/{id}", handler.getUserProfile)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/me", handler.getMe)
		authed.Patch("/me", handler.updateMe)
		authed.Put("/me/categories", handler.setCategories)
	})
}

// # User Profile Endpoints

/*
GET /me.

Response:
  - 200: Profile with preferredCategories
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

type updateMeRequest struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

/*
PATCH /me.

Request:
  - displayName, avatarUrl: string (optional)

Response:
  - 200: The updated profile
  - 400: Invalid input data
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.DisplayName != nil {
		v.Required("displayName", *input.DisplayName).MaxLen("displayName", *input.DisplayName, 128)
	}
	if input.AvatarURL != nil {
		v.Custom("avatarUrl", is.URL.Validate(*input.AvatarURL) != nil, "Deve ser uma URL válida")
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateProfile(request.Context(), userID, Changes(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

type categoriesRequest struct {
	CategoryIDs []int64 `json:"categoryIds"`
}

func (r categoriesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryIDs,
			validation.NotNil,
			validation.Length(0, MaxPreferredCategories),
			validation.Each(validation.Required, validation.Min(int64(1))),
		),
	)
}

/*
PUT /me/categories.

Request:
  - categoryIds: []int64 (required, may be empty)

Response:
  - 200: The profile with the new preferredCategories
  - 404: A category does not exist
*/
func (handler *Handler) setCategories(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoriesRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.SetPreferredCategories(request.Context(), userID, input.CategoryIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// GET /users/{id}.
func (handler *Handler) getUserProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.GetPublicProfile(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
