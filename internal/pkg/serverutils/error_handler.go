package serverutils

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors services use to signal how a failure should be presented.
var (
	// ErrPipelineTimeout marks a request that exceeded the response deadline.
	ErrPipelineTimeout = errors.New("response generation timed out")

	// ErrUpstreamProvider marks a failure in an external collaborator (LLM,
	// embedding service, vector store).
	ErrUpstreamProvider = errors.New("upstream provider failure")
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		case errors.Is(err, ErrPipelineTimeout), errors.Is(err, context.DeadlineExceeded):
			return ctx.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse(fiber.StatusGatewayTimeout, "The response took too long to generate. Please try again."))
		case errors.Is(err, ErrUpstreamProvider):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, "An upstream service is unavailable. Please try again shortly."))
		default:
			log.Printf("[ERROR] Unhandled error: %v", err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
		}
	}
}
