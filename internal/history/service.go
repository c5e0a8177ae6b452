package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/dataset"
	"github.com/wonny/topmonde/internal/staging"
	"github.com/wonny/topmonde/pkg/config"
	"github.com/wonny/topmonde/pkg/logger"
)

// PerformersFile is the ranked output inside the history stage directory.
const PerformersFile = "top_monde_performers_all_periods.csv"

// Summary reports one history refresh.
type Summary struct {
	CacheUsed      bool
	Tickers        int
	Bars           int
	Windows        int
	PerformersPath string
}

// Service refreshes the monthly history dataset and derives the rolling
// window performance table from it. This collaborator feeds wider trailing
// windows for scoring experiments; the core snapshot formula never needs it.
type Service struct {
	client *Client
	stage  *staging.Stage
	cfg    config.HistoryConfig
	logger *logger.Logger

	// sp500 switches the ticker universe from the latest snapshot to the
	// current S&P 500 membership.
	sp500 bool

	// now drives cache freshness; tests pin it.
	now func() time.Time
}

// NewService creates a history service.
func NewService(client *Client, stage *staging.Stage, cfg config.HistoryConfig, log *logger.Logger) *Service {
	return &Service{
		client: client,
		stage:  stage,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// WithSP500Universe makes the service fetch the current S&P 500 membership
// instead of reading tickers from the latest snapshot.
func (s *Service) WithSP500Universe() *Service {
	s.sp500 = true
	return s
}

// Refresh loads or fetches the monthly dataset, recomputes every rolling
// window's performances and persists the per-window top 10.
func (s *Service) Refresh(ctx context.Context) (*Summary, error) {
	cachePath := filepath.Join(s.stage.Dir(staging.History), CacheFile)
	summary := &Summary{}

	var series []Series
	if Fresh(cachePath, s.now()) {
		s.logger.WithField("cache", CacheFile).Info("Monthly data cache is up to date, skipping fetch")
		loaded, err := LoadBars(cachePath)
		if err != nil {
			return nil, fmt.Errorf("load cache: %w", err)
		}
		series = loaded
		summary.CacheUsed = true
	} else {
		tickers, err := s.universe(ctx)
		if err != nil {
			return nil, err
		}

		series, err = s.fetchAll(ctx, tickers)
		if err != nil {
			return nil, err
		}

		if err := SaveBars(cachePath, series); err != nil {
			return nil, fmt.Errorf("save cache: %w", err)
		}
	}

	var ranked []RankedPerf
	var perfs []WindowPerf
	for _, sr := range series {
		summary.Bars += len(sr.Bars)
		perfs = append(perfs, WindowPerformances(sr)...)
	}
	ranked = TopPerformers(perfs, 10)

	summary.Tickers = len(series)
	summary.Windows = len(perfs)
	summary.PerformersPath = filepath.Join(s.stage.Dir(staging.History), PerformersFile)

	if err := PerformersFrame(ranked).WriteFile(summary.PerformersPath); err != nil {
		return nil, fmt.Errorf("write performers: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tickers": summary.Tickers,
		"bars":    summary.Bars,
		"windows": summary.Windows,
	}).Info("History refresh finished")

	return summary, nil
}

// universe resolves the set of tickers to fetch.
func (s *Service) universe(ctx context.Context) ([]string, error) {
	if s.sp500 {
		return s.client.SP500Symbols(ctx)
	}
	return s.snapshotTickers()
}

// snapshotTickers reads the symbol column of the most recent snapshot in
// the history stage. The column is looked up by name, never by position.
func (s *Service) snapshotTickers() ([]string, error) {
	source, err := s.stage.LatestSnapshot(staging.History, "TOP MONDE*.csv")
	if err != nil {
		return nil, err
	}

	frame, err := dataset.ReadFile(source)
	if err != nil {
		return nil, err
	}
	if err := dataset.Validate(frame, []string{contracts.ColSymbol}); err != nil {
		return nil, err
	}

	var tickers []string
	for row := 0; row < frame.NumRows(); row++ {
		symbol, _ := frame.Value(row, contracts.ColSymbol)
		if symbol = strings.TrimSpace(symbol); symbol != "" {
			tickers = append(tickers, symbol)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"file":  filepath.Base(source),
		"count": len(tickers),
	}).Info("Loaded tickers from snapshot")

	return tickers, nil
}

// fetchAll downloads the monthly history of every ticker. Failures are
// logged and skipped; batching only paces the progress logs, the real
// throttle is the client's rate limiter.
func (s *Service) fetchAll(ctx context.Context, tickers []string) ([]Series, error) {
	batchSize := s.cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	batches := (len(tickers) + batchSize - 1) / batchSize

	var series []Series
	for i, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return series, err
		}

		if i%batchSize == 0 {
			s.logger.WithFields(map[string]interface{}{
				"batch":   i/batchSize + 1,
				"batches": batches,
			}).Info("Fetching monthly data batch")
		}

		sr, err := s.client.FetchMonthly(ctx, ticker, s.cfg.Months)
		if err != nil {
			s.logger.WithError(err).WithField("ticker", ticker).Warn("Ticker skipped")
			continue
		}
		series = append(series, sr)
	}

	return series, nil
}
