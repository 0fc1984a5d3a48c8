package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/kardemumma/internal/gate"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/rank"
	"github.com/shrimpsizemoose/kardemumma/internal/store"
)

type Service struct {
	Config *Config
	Store  store.RosterStore
	Auth   *Auth
	Gate   *gate.Gate
	Ranker *rank.Ranker
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	rosterStore, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	schedule, err := config.FeatureSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to build feature schedule: %w", err)
	}

	return &Service{
		Config: config,
		Store:  rosterStore,
		Auth:   auth,
		Gate:   gate.New(schedule),
		Ranker: rank.NewRanker(config.Ranking.AttendanceWeight, config.Ranking.PaymentBonus),
	}, nil
}

func (s *Service) ValidateAuthAndAdmin(r *http.Request, event, admin string) error {
	if !s.Config.Server.EnableAuth {
		return nil
	}

	authHeader := r.Header.Get(s.Auth.tokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("Invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	return s.Auth.ValidateToken(r.Context(), event, admin, token)
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

// GetLeaderboard assembles the ranked leaderboard for an event.
func (s *Service) GetLeaderboard(event string) ([]models.LeaderboardEntry, error) {
	rows, err := s.Store.FetchLeaderboardRows(event)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard rows: %w", err)
	}

	return s.Ranker.Rank(rows), nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
