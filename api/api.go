package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           logrus.FieldLogger
}

func NewAPIServer(listenAddress string, log logrus.FieldLogger) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:               "task-tracker",
			DisableStartupMessage: true,
		}),
		listenAddress: listenAddress,
		log:           log,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.WithField("address", s.listenAddress).Info("Starting API Server")

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
