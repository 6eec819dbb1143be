package presenter

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse documents the failure shape for swagger.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Data wraps a successful payload.
func Data(c *fiber.Ctx, status int, data any) error {
	return JSON(c, status, Response{Success: true, Data: data})
}

// Message reports success without a payload.
func Message(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, Response{Success: true, Message: message})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, Response{Success: false, Message: message})
}
