package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/codebuildervaibhav/segment-scripter/internal/config"
	"github.com/codebuildervaibhav/segment-scripter/internal/handlers"
	"github.com/codebuildervaibhav/segment-scripter/internal/session"
	"github.com/codebuildervaibhav/segment-scripter/internal/submission"
	"github.com/codebuildervaibhav/segment-scripter/internal/transcription"
)

const version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:          "segment-scripter",
		Short:        "Serve the SegmentScripter transcript form",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			addr, _ := cmd.Flags().GetString("addr")
			return serve(configPath, addr)
		},
	}

	root.Flags().String("config", "config/config.yaml", "Path to the YAML config file")
	root.Flags().String("addr", "", "Listen address, overrides server.host and server.port")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(configPath, addrOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Custom logger setup
	logBuffer := NewLogBuffer(1000)
	log.SetOutput(io.MultiWriter(os.Stdout, logBuffer))

	log.Println("Initializing components...")

	client := transcription.NewClient(cfg.Backend.TranscribeURL, &http.Client{})
	store := session.NewStore(submission.NewPipeline(client))
	log.Printf("Transcription backend: %s", client.Endpoint())

	janitor := session.NewJanitor(store,
		time.Duration(cfg.Sessions.SweepIntervalMinutes)*time.Minute,
		time.Duration(cfg.Sessions.MaxIdleMinutes)*time.Minute,
	)
	janitor.Start()
	defer janitor.Stop()

	app := newApp(cfg, store, logBuffer)

	addr := cfg.Addr()
	if addrOverride != "" {
		addr = addrOverride
	}

	log.Printf("Server starting on %s (site: %s)", addr, cfg.Site.URL)
	log.Println("Endpoints:")
	log.Println("   GET  /                   - Transcript form")
	log.Println("   POST /submit             - Submit URL and time ranges")
	log.Println("   GET  /download/:format   - Download transcript (txt, md)")
	log.Println("   GET  /api/state          - Session state as JSON")
	log.Println("   POST /api/submit         - Submit as JSON")
	log.Println("   GET  /ws/state           - WebSocket state stream")
	log.Println("   GET  /logs               - View server logs")
	log.Println("   GET  /health             - Health check")

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func newApp(cfg *config.Config, store *session.Store, logBuffer *LogBuffer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.Site.Name,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"version":  version,
			"sessions": store.Len(),
		})
	})

	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.GetLogs(),
		})
	})

	handlers.Register(app, store, cfg.Site)
	return app
}
