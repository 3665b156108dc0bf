// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// # Request DTOs

type createRequest struct {
	MangaID int64  `json:"mangaId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Ratings
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MangaID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Title, validation.Length(0, 200)),
		validation.Field(&r.Content, validation.Length(0, 10000)),
	)
}

type updateRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Rating        *float64 `json:"rating"`
	Art           *float64 `json:"art"`
	Story         *float64 `json:"story"`
	Characters    *float64 `json:"characters"`
	Worldbuilding *float64 `json:"worldbuilding"`
	Pacing        *float64 `json:"pacing"`
	Emotion       *float64 `json:"emotion"`
	Originality   *float64 `json:"originality"`
	Dialogues     *float64 `json:"dialogues"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, 200)),
		validation.Field(&r.Content, validation.Length(0, 10000)),
	)
}

func (r updateRequest) changes() Changes {
	return Changes{
		Title:         r.Title,
		Content:       r.Content,
		Rating:        r.Rating,
		Art:           r.Art,
		Story:         r.Story,
		Characters:    r.Characters,
		Worldbuilding: r.Worldbuilding,
		Pacing:        r.Pacing,
		Emotion:       r.Emotion,
		Originality:   r.Originality,
		Dialogues:     r.Dialogues,
	}
}

// # Handler Implementation

// Handler implements the HTTP layer for reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the /reviews and /manga/{mangaId} routes on router.
func (handler *Handler) Register(router chi.Router) {
	router.Route("/reviews", func(reviews chi.Router) {
		reviews.Get("/{reviewId}", handler.get)

		reviews.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)
			authed.Post("/", handler.create)
			authed.Put("/{reviewId}", handler.update)
			authed.Delete("/{reviewId}", handler.delete)
			authed.Post("/{reviewId}/upvote", handler.vote(true))
			authed.Post("/{reviewId}/downvote", handler.vote(false))
		})
	})

	router.Route("/manga/{mangaId}", func(mangas chi.Router) {
		mangas.Get("/reviews", handler.mangaReviews)
		mangas.Get("/stats", handler.stats)
		mangas.With(middleware.RequireAuth).Get("/my-review", handler.myReview)
	})
}

/*
POST /reviews.

Request (Body):
  - mangaId: int64
  - title, content: string
  - rating, art, story, characters, worldbuilding, pacing, emotion,
    originality, dialogues: number in [1, 10]

Response:
  - 201: Review
  - 400: Rating out of range
  - 404: Manga not found
  - 409: Review already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), userID, CreateInput{
		MangaID: input.MangaID,
		Title:   input.Title,
		Content: input.Content,
		Ratings: input.Ratings,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// PUT /reviews/{reviewId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), requestutil.Param(request, "reviewId"), input.changes())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// DELETE /reviews/{reviewId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "reviewId")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /reviews/{reviewId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.service.Get(request.Context(), requestutil.Param(request, "reviewId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// POST /reviews/{reviewId}/upvote | /downvote.
func (handler *Handler) vote(up bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		reviewID := requestutil.Param(request, "reviewId")

		var result *VoteResult
		if up {
			result, err = handler.service.ToggleUpvote(request.Context(), userID, reviewID)
		} else {
			result, err = handler.service.ToggleDownvote(request.Context(), userID, reviewID)
		}
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, result)
	}
}

// # Manga Scoped Endpoints

// GET /manga/{mangaId}/reviews.
func (handler *Handler) mangaReviews(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.Int64Param(request, "mangaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.MangaReviews(request.Context(), mangaID, pagination.FromRequest(request, pagination.Narrow))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

// GET /manga/{mangaId}/my-review.
func (handler *Handler) myReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := requestutil.Int64Param(request, "mangaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UserReview(request.Context(), userID, mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// GET /manga/{mangaId}/stats.
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	mangaID, err := requestutil.Int64Param(request, "mangaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	overview, err := handler.service.Overview(request.Context(), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}
