package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/payout"
)

// Record is one scoring run.
type Record struct {
	ID         string    `json:"id" yaml:"id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	PR         string    `json:"pr" yaml:"pr"`
	Score      int       `json:"score" yaml:"score"`
	Fallback   bool      `json:"fallback" yaml:"fallback"`
	CacheHit   bool      `json:"cache_hit" yaml:"cache_hit"`
	DurationMs int64     `json:"duration_ms" yaml:"duration_ms"`
}

type Summary struct {
	Count        int     `json:"count" yaml:"count"`
	AverageScore float64 `json:"average_score" yaml:"average_score"`
	// ApprovalRate is the percentage of runs at or above the approval threshold.
	ApprovalRate float64 `json:"approval_rate" yaml:"approval_rate"`
	Fallbacks    int     `json:"fallbacks" yaml:"fallbacks"`
	CacheHits    int     `json:"cache_hits" yaml:"cache_hits"`
}

// Store is an append-only JSON log of scoring runs.
type Store struct {
	mu          sync.Mutex
	historyPath string
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, domainErrors.ErrHistory.
			WithContext("path", path).
			WithError(err)
	}
	return &Store{historyPath: path}, nil
}

// Save appends record to the log. An unreadable log is started over.
func (s *Store) Save(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Debug(ctx, "saving history record",
		"id", record.ID,
		"pr", record.PR,
		"score", record.Score,
		"fallback", record.Fallback,
		"cache_hit", record.CacheHit)

	records, err := s.load()
	if err != nil {
		logger.Warn(ctx, "history unreadable, starting a new log",
			"path", s.historyPath,
			"error", err)
		records = []Record{}
	}

	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return domainErrors.ErrHistory.WithError(err)
	}

	if err := os.WriteFile(s.historyPath, data, 0644); err != nil {
		logger.Error(ctx, "failed to write history", err,
			"path", s.historyPath)
		return domainErrors.ErrHistory.
			WithContext("path", s.historyPath).
			WithError(err)
	}

	logger.Debug(ctx, "history record saved", "total_records", len(records))

	return nil
}

// All returns every record, oldest first.
func (s *Store) All() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Recent returns up to n records, newest first. n <= 0 returns all of them.
func (s *Store) Recent(n int) ([]Record, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}

	if n <= 0 || n > len(records) {
		n = len(records)
	}

	recent := make([]Record, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		recent = append(recent, records[i])
	}
	return recent, nil
}

func (s *Store) Summary() (Summary, error) {
	records, err := s.All()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}

func Summarize(records []Record) Summary {
	var summary Summary
	if len(records) == 0 {
		return summary
	}

	var total, approved int
	for _, r := range records {
		total += r.Score
		if r.Score >= payout.ApprovalThreshold {
			approved++
		}
		if r.Fallback {
			summary.Fallbacks++
		}
		if r.CacheHit {
			summary.CacheHits++
		}
	}

	summary.Count = len(records)
	summary.AverageScore = float64(total) / float64(len(records))
	summary.ApprovalRate = float64(approved) / float64(len(records)) * 100
	return summary
}

func (s *Store) load() ([]Record, error) {
	data, err := os.ReadFile(s.historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, domainErrors.ErrHistory.
			WithContext("path", s.historyPath).
			WithError(err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domainErrors.ErrHistory.
			WithContext("path", s.historyPath).
			WithContext("detail", "corrupt history file").
			WithError(err)
	}

	return records, nil
}
