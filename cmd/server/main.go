package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kardemumma/internal/app"
	"github.com/shrimpsizemoose/kardemumma/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	rosterHandler := handlers.NewRosterHandler(service)

	http.HandleFunc("GET /api/v1/{event}/teams/{teamID}", rosterHandler.HandleGetTeam)
	http.HandleFunc("PATCH /api/v1/{event}/teams/{teamID}", rosterHandler.HandleUpdateTeam)
	http.HandleFunc("DELETE /api/v1/{event}/teams/{teamID}", rosterHandler.HandleDeleteTeam)
	http.HandleFunc("POST /api/v1/{event}/teams/{teamID}/members", rosterHandler.HandleAddMember)
	http.HandleFunc("PATCH /api/v1/{event}/teams/{teamID}/members/{memberID}", rosterHandler.HandleUpdateMember)
	http.HandleFunc("POST /api/v1/{event}/teams/{teamID}/payment", rosterHandler.HandleConfirmPayment)
	http.HandleFunc("POST /api/v1/{event}/certifications", rosterHandler.HandleCertifications)
	http.HandleFunc("GET /api/v1/{event}/leaderboard", rosterHandler.HandleLeaderboard)
	http.HandleFunc("GET /api/v1/{event}/features", rosterHandler.HandleFeatures)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting kardemumma server on %s", service.Config.Server.Port)
	logger.Debug.Println("Requiring headers:")
	for _, h := range service.Config.API.RequiredHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Kardemumma server failed: %v", err)
	}
}
