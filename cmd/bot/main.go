package main

import (
	"flag"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kardemumma/internal/bot"
	"github.com/shrimpsizemoose/kardemumma/internal/gate"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	cfg, err := bot.ReadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	schedule := gate.DefaultSchedule()
	for name, raw := range cfg.Features {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			logger.Error.Fatalf("Failed to parse unlock instant for %q: %v", name, err)
		}
		schedule[name] = at
	}

	b, err := bot.New(cfg, gate.New(schedule))
	if err != nil {
		logger.Error.Fatalf("Failed to create bot: %v", err)
	}

	logger.Info.Println("Bot intialized succesfully")
	if err := b.Start(); err != nil {
		logger.Error.Fatalf("Bot error: %v", err)
	}
}
