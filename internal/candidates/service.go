package candidates

import (
	"context"
	"time"

	"skillbridge-backend/internal/students"
)

// ErrNotFound is returned when a roll number has no combined user+profile
// record.
var ErrNotFound = students.ErrNotFound

// Service exposes the single-candidate detail lookup used when a caller
// drills into a directory or match result.
type Service struct {
	Agg *Aggregator

	// QueryTimeout bounds the repository work of each lookup.
	QueryTimeout time.Duration
}

func NewService(agg *Aggregator, queryTimeout time.Duration) *Service {
	return &Service{Agg: agg, QueryTimeout: queryTimeout}
}

// GetDetail returns the full aggregated profile for one roll number.
func (s *Service) GetDetail(ctx context.Context, roll string) (*CandidateProfile, error) {
	if s.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.QueryTimeout)
		defer cancel()
	}
	profiles, err := s.Agg.BuildProfiles(ctx, []string{roll})
	if err != nil {
		return nil, err
	}
	profile, ok := profiles[roll]
	if !ok {
		return nil, ErrNotFound
	}
	return profile, nil
}
