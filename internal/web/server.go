// Package web serves a read-only dashboard over a finished clustering
// report: the current report, and the member list of a single group.
package web

import (
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/dontbeproud/accountcluster/internal/reporter"
)

// Server serves the dashboard API for a single completed clustering run.
// It exposes no mutating endpoints: the report is set once at
// construction (or via SetReport as a run completes) and read
// concurrently by request handlers.
type Server struct {
	addr   string
	debug  bool
	mu     sync.RWMutex
	report *reporter.Report
}

// NewServer creates a dashboard server bound to port, optionally seeded
// with an already-finished report.
func NewServer(port int, report *reporter.Report) *Server {
	return &Server{
		addr:   fmt.Sprintf(":%d", port),
		report: report,
	}
}

// SetDebug enables per-request access logging.
func (s *Server) SetDebug(enabled bool) {
	s.debug = enabled
}

// SetReport replaces the report the dashboard serves, e.g. once a
// background clustering run (started via GroupWithProgress) completes.
func (s *Server) SetReport(report *reporter.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
}

// Start runs the dashboard, blocking until the listener errors or closes.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Account Cluster Dashboard",
	})

	app.Use(cors.New())
	if s.debug {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	api := app.Group("/api")

	api.Get("/report", func(c *fiber.Ctx) error {
		s.mu.RLock()
		defer s.mu.RUnlock()

		if s.report == nil {
			return c.Status(200).JSON(fiber.Map{"status": "idle"})
		}
		return c.Status(200).JSON(s.report)
	})

	api.Get("/groups/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(400).SendString("invalid group id")
		}

		s.mu.RLock()
		defer s.mu.RUnlock()

		if s.report == nil {
			return c.Status(404).SendString("no report available")
		}
		for _, g := range s.report.Groups {
			if g.ID == id {
				return c.Status(200).JSON(g)
			}
		}
		return c.Status(404).SendString("group not found")
	})

	app.Static("/", "./ui/out")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("Account Cluster Dashboard API is running")
	})

	log.Printf("🚀 Web dashboard available at: http://localhost%s", s.addr)
	return app.Listen(s.addr)
}
