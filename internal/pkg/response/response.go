package response

import "github.com/gofiber/fiber/v3"

const (
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "not authorized"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageInternalServerError = "internal server error"
)

type errorBody struct {
	Message string `json:"message"`
}

// JSON writes a success payload as-is.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

// Error writes the uniform {"message": ...} error body.
func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(errorBody{Message: message})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageBadRequest
	}
}
