package response

import (
	"github.com/gofiber/fiber/v2"
)

type Ext struct {
	*fiber.Ctx
}

// Ok : 성공(200) 응답
func (ext Ext) Ok(data interface{}) error {
	return ext.Status(fiber.StatusOK).JSON(data)
}

// NotFound : 아직 결과가 준비되지 않은 리소스
func (ext Ext) NotFound(message string) error {
	return ext.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

// Error : 에러 응답. status를 명시하지 않으면 400 Bad Request
func (ext Ext) Error(err error, status ...int) error {
	code := fiber.StatusBadRequest
	if len(status) > 0 {
		code = status[0]
	}
	return ext.Status(code).JSON(fiber.Map{"error": err.Error()})
}
