/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the asset register server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Create register service and API handler
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -db        SQLite database path (default: register.db)
             Use ":memory:" for an in-memory database
  -year-end  Fiscal year-end as MM-DD (default: 06-30)
  -seed      Seed the standard category presets on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/register.db"

  # Calendar-year reporter
  ./server -year-end=12-31

  # Fresh demo instance
  ./server -db=":memory:" -seed

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/asset-register/api"
	"github.com/warp/asset-register/factory"
	"github.com/warp/asset-register/fixedasset"
	"github.com/warp/asset-register/register"
	"github.com/warp/asset-register/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "register.db", "SQLite database path")
	yearEnd := flag.String("year-end", "06-30", "Fiscal year-end as MM-DD")
	seed := flag.Bool("seed", false, "Seed standard category presets on startup")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	fiscal, err := parseYearEnd(*yearEnd)
	if err != nil {
		log.WithError(err).Fatal("Invalid -year-end")
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	// Service and handler
	svc := register.NewServiceWithFiscal(store, fiscal)
	if *seed {
		if err := seedCategories(svc); err != nil {
			log.WithError(err).Fatal("Failed to seed categories")
		}
		log.Info("Seeded standard category presets")
	}

	router := api.NewRouter(api.NewHandler(svc), log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     server.Addr,
			"db":       *dbPath,
			"year_end": *yearEnd,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

func parseYearEnd(s string) (fixedasset.FiscalCalendar, error) {
	t, err := time.Parse("01-02", s)
	if err != nil {
		return fixedasset.FiscalCalendar{}, fmt.Errorf("expected MM-DD: %w", err)
	}
	return fixedasset.FiscalCalendar{YearEndMonth: t.Month(), YearEndDay: t.Day()}, nil
}

func seedCategories(svc *register.Service) error {
	f := factory.NewCategoryFactory()
	presets := []string{
		factory.MachineryJSON("cat-machinery"),
		factory.VehiclesJSON("cat-vehicles"),
		factory.ComputersJSON("cat-computers"),
		factory.BuildingsJSON("cat-buildings"),
		factory.SmallItemsJSON("cat-small-items"),
	}
	for _, p := range presets {
		cat, err := f.ParseCategory(p)
		if err != nil {
			return err
		}
		if err := svc.SaveCategory(context.Background(), *cat); err != nil {
			return err
		}
	}
	return nil
}
