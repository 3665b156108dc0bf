// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wallpaper

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// # Request DTOs

type createRequest struct {
	Name   string   `json:"name"`
	Cover  string   `json:"cover"`
	Images []string `json:"images"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Cover, is.URL),
		validation.Field(&r.Images, validation.Length(0, constants.MaxImportItems), validation.Each(validation.Required, is.URL)),
	)
}

// importRequest is the JSON array accepted by the bulk import.
type importRequest []createRequest

func (r importRequest) Validate() error {
	return validation.Validate([]createRequest(r))
}

type updateRequest struct {
	Name   *string   `json:"name"`
	Cover  *string   `json:"cover"`
	Images *[]string `json:"images"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Cover, is.URL),
		validation.Field(&r.Images, validation.By(imageURLs)),
	)
}

// imageURLs validates an optional replacement image list.
func imageURLs(value any) error {
	urls, _ := value.(*[]string)
	if urls == nil {
		return nil
	}
	return validation.Validate(*urls,
		validation.Length(0, constants.MaxImportItems),
		validation.Each(validation.Required, is.URL),
	)
}

type pinterestRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

func (r pinterestRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.RequestURL),
		validation.Field(&r.Name, validation.Length(0, 200)),
	)
}

// # Handler Implementation

// Handler implements the HTTP layer for wallpapers.
type Handler struct {
	service *Service
}

// NewHandler constructs a new wallpaper [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public router mounted at /wallpapers.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	return router
}

// AdminRoutes returns the router mounted at /admin/wallpapers. Role checks belong to the caller.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)
	router.Post("/import", handler.importJSON)
	router.Post("/import/pinterest", handler.importPinterest)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	router.Post("/{id}/images", handler.upload)

	return router
}

// # Public Endpoints

// GET /wallpapers.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), pagination.FromRequest(request, pagination.Standard))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

// GET /wallpapers/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	wallpaper, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, wallpaper)
}

// # Admin Endpoints

// POST /admin/wallpapers.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	wallpaper, err := handler.service.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, wallpaper)
}

/*
POST /admin/wallpapers/import.

Request (Body):
  - [{name, cover, images}], between 1 and MaxImportItems entries

Response:
  - 201: {imported: int}
*/
func (handler *Handler) importJSON(writer http.ResponseWriter, request *http.Request) {
	var input importRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	inputs := make([]CreateInput, len(input))
	for i, item := range input {
		inputs[i] = CreateInput(item)
	}

	imported, err := handler.service.Import(request.Context(), inputs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]int{"imported": imported})
}

/*
POST /admin/wallpapers/import/pinterest.

Request (Body):
  - url: string (board RSS feed, required)
  - name: string (optional, defaults to the board title)

Response:
  - 201: Wallpaper
  - 400: Feed has no images
  - 503: Feed could not be fetched or parsed
*/
func (handler *Handler) importPinterest(writer http.ResponseWriter, request *http.Request) {
	var input pinterestRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	wallpaper, err := handler.service.ImportPinterest(request.Context(), input.URL, strings.TrimSpace(input.Name))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, wallpaper)
}

// PUT /admin/wallpapers/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	wallpaper, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), Changes(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, wallpaper)
}

// DELETE /admin/wallpapers/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /admin/wallpapers/{id}/images.

Request (multipart/form-data):
  - file: image up to MaxUploadBytes

Response:
  - 201: Image
  - 400: Missing file, too large or not an image
  - 503: Object storage not configured
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes+(1<<20))

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, uploadError("Envie um arquivo de até %d MB", constants.MaxUploadBytes>>20))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, uploadError("Campo obrigatório"))
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadBytes {
		respond.Error(writer, request, uploadError("Envie um arquivo de até %d MB", constants.MaxUploadBytes>>20))
		return
	}

	sniff := make([]byte, 512)
	n, _ := io.ReadFull(file, sniff)
	contentType := http.DetectContentType(sniff[:n])
	if !strings.HasPrefix(contentType, "image/") {
		respond.Error(writer, request, uploadError("O arquivo deve ser uma imagem"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	image, err := handler.service.AddImage(request.Context(), requestutil.Param(request, "id"), Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, image)
}

func uploadError(format string, args ...any) error {
	return apperr.ValidationError("Upload inválido", apperr.FieldError{
		Field:   "file",
		Message: fmt.Sprintf(format, args...),
	})
}
