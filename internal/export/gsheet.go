package export

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-co-op/gocron"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shrimpsizemoose/kardemumma/internal/app"
)

// GSheetExporter pushes the ranked leaderboard to Google Sheets on a
// cron schedule, one sheet config per event.
type GSheetExporter struct {
	service       *app.Service
	scheduler     *gocron.Scheduler
	sheetsService *sheets.Service
}

func NewGSheetExporter(service *app.Service) (*gocron.Scheduler, error) {
	ctx := context.Background()
	scheduler := gocron.NewScheduler(time.UTC)

	for eventName, configs := range service.Config.GSheet {
		for _, cfg := range configs {
			svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
			if err != nil {
				return nil, fmt.Errorf("failed to create sheets service: %w", err)
			}

			exporter := &GSheetExporter{
				service:       service,
				scheduler:     scheduler,
				sheetsService: svc,
			}

			cfg := cfg
			_, err = scheduler.Cron(cfg.Schedule).Do(func() {
				if err := exporter.Export(eventName, &cfg); err != nil {
					fmt.Printf("Export failed: %v\n", err)
				}
			})
			if err != nil {
				return nil, fmt.Errorf("failed to schedule export: %w", err)
			}
		}
	}

	scheduler.StartAsync()
	return scheduler, nil
}

// Export writes the current standings into the leaderboard range, one
// row per team: rank, title, score. A timestamp cell marks freshness.
func (e *GSheetExporter) Export(eventName string, cfg *app.GSheetConfig) error {
	entries, err := e.service.GetLeaderboard(eventName)
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	values := make([][]interface{}, 0, len(entries))
	for _, entry := range entries {
		values = append(values, []interface{}{
			entry.Rank,
			entry.Title,
			entry.Score,
		})
	}

	updateRange := fmt.Sprintf("%s!%s", cfg.SheetName, cfg.LeaderboardRange)
	_, err = e.sheetsService.Spreadsheets.Values.Update(cfg.SheetID, updateRange,
		&sheets.ValueRange{Values: values}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update leaderboard range: %w", err)
	}

	emoji := "✨"
	if len(e.service.Config.EmojiVariants) > 0 {
		emoji = e.service.Config.EmojiVariants[rand.Intn(len(e.service.Config.EmojiVariants))]
	}
	timestamp := fmt.Sprintf("UPD: %s %s", time.Now().Format("2 January 15:04"), emoji)

	updateRange = fmt.Sprintf("%s!%s", cfg.SheetName, cfg.TimestampRange)
	_, err = e.sheetsService.Spreadsheets.Values.Update(cfg.SheetID, updateRange,
		&sheets.ValueRange{Values: [][]interface{}{{timestamp}}}).ValueInputOption("RAW").Do()

	return err
}
