package controller

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"pdf-extractor-be/internal/dto"
	"pdf-extractor-be/internal/pkg/serverutils"
	"pdf-extractor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IExtractionController interface {
	RegisterRoutes(r fiber.Router)
	UpdateIntent(ctx *fiber.Ctx) error
	UploadDocument(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Result(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type extractionController struct {
	sessionService    service.ISessionService
	extractionService service.IExtractionService
}

func NewExtractionController(
	sessionService service.ISessionService,
	extractionService service.IExtractionService,
) IExtractionController {
	return &extractionController{
		sessionService:    sessionService,
		extractionService: extractionService,
	}
}

func (c *extractionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/extract/v1")
	h.Put(":id/intent", c.UpdateIntent)
	h.Post(":id/document", c.UploadDocument)
	h.Post(":id", c.Submit)
	h.Get(":id/result", c.Result)
	h.Get(":id/download", c.Download)
}

func (c *extractionController) UpdateIntent(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.UpdateIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.UpdateIntent(ctx.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update intent", res))
}

func (c *extractionController) UploadDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	fileHeader, err := ctx.FormFile("document")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing 'document' file field")
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "only PDF files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unable to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unable to read uploaded file")
	}
	if len(data) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "uploaded file is empty")
	}

	res, err := c.sessionService.SetDocument(ctx.Context(), id, fileHeader.Filename, "application/pdf", data)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *extractionController) Submit(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.extractionService.Submit(ctx.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		case errors.Is(err, service.ErrSubmissionInFlight):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrMissingDocument), errors.Is(err, service.ErrEmptyGoal):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		// Provider failures fall through to the error middleware, which
		// maps them by kind.
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract document", res))
}

func (c *extractionController) Result(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.extractionService.Result(ctx.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		case errors.Is(err, service.ErrNoResult):
			return fiber.NewError(fiber.StatusNotFound, "no extraction result yet")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show result", res))
}

func (c *extractionController) Download(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	downloadable, err := c.extractionService.Download(ctx.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		case errors.Is(err, service.ErrNoResult):
			return fiber.NewError(fiber.StatusNotFound, "no extraction result yet")
		}
		return err
	}

	ctx.Set(fiber.HeaderContentType, downloadable.MimeType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+downloadable.Filename+`"`)
	return ctx.Send(downloadable.Bytes)
}
