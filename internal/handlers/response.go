package handlers

import (
	"errors"

	"gudang/internal/apperror"
	"gudang/internal/models"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	IsSuccess bool   `json:"isSuccess"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	ErrorType string `json:"errorType,omitempty"`
}

// PageResponse is the envelope of a paginated listing.
type PageResponse struct {
	Response
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"totalCount"`
	TotalPage  int   `json:"totalPage"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(Response{IsSuccess: true, Data: data})
}

func created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Response{IsSuccess: true, Data: data, Message: message})
}

func deleted(c *fiber.Ctx, message string) error {
	return c.JSON(Response{IsSuccess: true, Message: message})
}

func okPage[T any](c *fiber.Ctx, page models.Page[T]) error {
	return c.JSON(PageResponse{
		Response:   Response{IsSuccess: true, Data: page.Items},
		Page:       page.Page,
		Size:       page.Size,
		TotalCount: page.TotalCount,
		TotalPage:  page.TotalPage,
	})
}

// writeError answers with the status and message matching the kind of err.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(Response{
			Message:   "Invalid username or password",
			ErrorType: "Unauthorized",
		})
	}

	kind := apperror.KindOf(err)
	return c.Status(StatusOf(kind)).JSON(Response{
		Message:   apperror.MessageOf(err),
		ErrorType: string(kind),
	})
}

// StatusOf maps an error kind to its HTTP status code.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindNoChange:
		return fiber.StatusOK
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors that escape a handler, such as unknown routes
// or recovered panics, in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(Response{Message: fiberErr.Message})
	}
	return writeError(c, err)
}
