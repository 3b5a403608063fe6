package fiberhelpers

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"tanuki/utils/log"
)

func ListenWithGraceFullyShutdown(app *fiber.App, port string) {
	if !strings.ContainsAny(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}

	c := make(chan os.Signal, 1)
	serverShutdown := make(chan bool)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Infof("Gracefully shutting down...")
		_ = app.Shutdown()
		serverShutdown <- true
	}()

	address := "0.0.0.0" + port
	log.Infof("Starting server on %s", address)
	if err := app.Listen(address); err != nil {
		log.Errorf("Server failed to start on %s: %v", address, err)
		return
	}
	<-serverShutdown
}
