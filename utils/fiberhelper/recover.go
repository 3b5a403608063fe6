package fiberhelpers

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tanuki/utils/log"
)

func NewRecover() fiber.Handler {
	return recover.New(
		recover.Config{
			StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
				log.Errorf("panic in handler %s: %v\n%s", c.Path(), fmt.Sprintf("%v", e), debug.Stack())
			},
			EnableStackTrace: true,
		},
	)
}
