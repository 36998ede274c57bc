package main

import (
	"log"

	"github.com/transitpass/concession-backend-go/internal/api"
	"github.com/transitpass/concession-backend-go/internal/config"
	"github.com/transitpass/concession-backend-go/internal/database"
	"github.com/transitpass/concession-backend-go/internal/handler"
	"github.com/transitpass/concession-backend-go/internal/journey"
	"github.com/transitpass/concession-backend-go/internal/repository"
	"github.com/transitpass/concession-backend-go/internal/service"
	"github.com/transitpass/concession-backend-go/internal/transit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	stopRepo := repository.NewStopRepository(db)
	busStops, err := stopRepo.ListBusStops()
	if err != nil {
		log.Fatal("Failed to load bus stops:", err)
	}
	railStations, err := stopRepo.ListRailStations()
	if err != nil {
		log.Fatal("Failed to load rail stations:", err)
	}
	registry := transit.NewRegistry(busStops, railStations)
	log.Printf("Loaded stop registry: %d bus stops, %d rail stations", len(busStops), len(railStations))

	policy := journey.Policy{ExcludeFlaggedFares: cfg.Analysis.ExcludeFlaggedFares}

	statementRepo := repository.NewStatementRepository(db)
	statementService := service.NewStatementService(statementRepo, registry, policy)
	analysisService := service.NewAnalysisService(statementRepo, cfg.Catalog, policy)

	statementHandler := handler.NewStatementHandler(statementService, analysisService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	router := api.SetupRouter(cfg, statementHandler, analysisHandler)

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
