package directory

import (
	"context"
	"sort"
	"strings"
	"time"

	"skillbridge-backend/internal/candidates"
	"skillbridge-backend/internal/shared/metrics"
	"skillbridge-backend/internal/students"
)

// Filter narrows the browsable candidate directory. All present fields are
// ANDed; RequiredSkills demands every listed skill, unlike the mentor-match
// filter where any overlap suffices.
type Filter struct {
	Search         string
	BatchYear      *int
	Degree         string
	RequiredSkills []string
}

// Service serves the unscored, filterable candidate listing.
type Service struct {
	Repo students.Repo
	Agg  *candidates.Aggregator

	// QueryTimeout bounds the repository work of each query.
	QueryTimeout time.Duration
}

func NewService(repo students.Repo, agg *candidates.Aggregator, queryTimeout time.Duration) *Service {
	return &Service{Repo: repo, Agg: agg, QueryTimeout: queryTimeout}
}

// QueryDirectory returns matching candidates sorted by batch year descending,
// then full name ascending. No scoring happens on this path.
func (s *Service) QueryDirectory(ctx context.Context, filter Filter) ([]*candidates.CandidateProfile, error) {
	metrics.IncDirectoryQuery()

	if s.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.QueryTimeout)
		defer cancel()
	}

	profiles, err := s.Repo.ListProfiles(ctx, students.ProfileQuery{
		BatchYear: filter.BatchYear,
		Degree:    strings.TrimSpace(filter.Degree),
	})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []*candidates.CandidateProfile{}, nil
	}

	rolls := make([]string, 0, len(profiles))
	for _, p := range profiles {
		rolls = append(rolls, p.RollNumber)
	}
	users, err := s.Repo.ListUsersByRoll(ctx, rolls, "")
	if err != nil {
		return nil, err
	}

	// Candidates without a resolvable name row are excluded.
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	surviving := make([]string, 0, len(users))
	for _, u := range users {
		if search != "" && !strings.Contains(strings.ToLower(u.FullName), search) {
			continue
		}
		surviving = append(surviving, u.RollNumber)
	}
	if len(surviving) == 0 {
		return []*candidates.CandidateProfile{}, nil
	}

	byRoll, err := s.Agg.BuildProfiles(ctx, surviving)
	if err != nil {
		return nil, err
	}

	required := normalizeSkills(filter.RequiredSkills)
	out := make([]*candidates.CandidateProfile, 0, len(byRoll))
	for _, roll := range surviving {
		profile, ok := byRoll[roll]
		if !ok {
			continue
		}
		if !hasAllSkills(profile, required) {
			continue
		}
		out = append(out, profile)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BatchYear != out[j].BatchYear {
			return out[i].BatchYear > out[j].BatchYear
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}

func normalizeSkills(skills []string) []string {
	var out []string
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// hasAllSkills requires every listed skill to be present.
func hasAllSkills(profile *candidates.CandidateProfile, required []string) bool {
	for _, skill := range required {
		if !profile.HasSkill(skill) {
			return false
		}
	}
	return true
}
