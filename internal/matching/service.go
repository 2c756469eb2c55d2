package matching

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"skillbridge-backend/internal/candidates"
	"skillbridge-backend/internal/shared/metrics"
	"skillbridge-backend/internal/students"
)

// maxFilterTerms caps refinement skill/interest lists; oversized input is
// truncated rather than rejected.
const maxFilterTerms = 25

// Filter refines a ranked match list. All fields are optional and ANDed
// together; within Skills and Interests a single overlap suffices (OR). That
// asymmetry against the directory's all-skills semantics is intentional and
// kept as shipped.
type Filter struct {
	Domain    string
	BatchYear *int
	Skills    []string
	Interests []string
}

// MatchResult pairs a candidate with their similarity to the reference.
type MatchResult struct {
	Candidate       *candidates.CandidateProfile `json:"candidate"`
	MatchScore      int                          `json:"matchScore"`
	ComponentScores ComponentScores              `json:"componentScores"`
}

// Service ranks the junior pool against a reference senior.
type Service struct {
	Repo students.Repo
	Agg  *candidates.Aggregator

	// JuniorBatchYear is the earliest admission batch eligible for matching.
	JuniorBatchYear int

	// QueryTimeout bounds the repository work of each ranking pass.
	QueryTimeout time.Duration
}

func NewService(repo students.Repo, agg *candidates.Aggregator, juniorBatchYear int, queryTimeout time.Duration) *Service {
	return &Service{Repo: repo, Agg: agg, JuniorBatchYear: juniorBatchYear, QueryTimeout: queryTimeout}
}

// RankMentorMatches scores every eligible junior against the reference roll
// and returns them ordered by match score descending, roll number ascending
// on ties. A reference without a combined user+profile record yields an
// empty list, not an error. Results are computed fresh on every call.
func (s *Service) RankMentorMatches(ctx context.Context, referenceRoll string, filter *Filter) ([]MatchResult, error) {
	start := time.Now()
	metrics.IncMatchRanking()
	defer func() {
		metrics.ObserveMatchRankingDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	if s.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.QueryTimeout)
		defer cancel()
	}

	if _, err := s.Repo.GetUser(ctx, referenceRoll); err != nil {
		if errors.Is(err, students.ErrNotFound) {
			return []MatchResult{}, nil
		}
		return nil, err
	}
	if _, err := s.Repo.GetProfile(ctx, referenceRoll); err != nil {
		if errors.Is(err, students.ErrNotFound) {
			return []MatchResult{}, nil
		}
		return nil, err
	}

	pool, err := s.juniorPool(ctx, referenceRoll)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []MatchResult{}, nil
	}

	profiles, err := s.Agg.BuildProfiles(ctx, append([]string{referenceRoll}, pool...))
	if err != nil {
		return nil, err
	}
	reference, ok := profiles[referenceRoll]
	if !ok {
		return []MatchResult{}, nil
	}

	results := make([]MatchResult, 0, len(pool))
	for _, roll := range pool {
		candidate, ok := profiles[roll]
		if !ok {
			continue
		}
		score, components := Score(reference, candidate)
		results = append(results, MatchResult{
			Candidate:       candidate,
			MatchScore:      score,
			ComponentScores: components,
		})
	}
	metrics.AddCandidatesScored(len(results))

	results = applyFilter(results, filter)

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].Candidate.RollNumber < results[j].Candidate.RollNumber
	})
	return results, nil
}

// juniorPool lists rolls with a profile at or after the admission threshold
// and a student-role user record, excluding the reference itself.
func (s *Service) juniorPool(ctx context.Context, referenceRoll string) ([]string, error) {
	minYear := s.JuniorBatchYear
	profiles, err := s.Repo.ListProfiles(ctx, students.ProfileQuery{MinBatchYear: &minYear})
	if err != nil {
		return nil, err
	}
	rolls := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.RollNumber == referenceRoll {
			continue
		}
		rolls = append(rolls, p.RollNumber)
	}
	if len(rolls) == 0 {
		return nil, nil
	}

	users, err := s.Repo.ListUsersByRoll(ctx, rolls, "student")
	if err != nil {
		return nil, err
	}
	isStudent := make(map[string]bool, len(users))
	for _, u := range users {
		isStudent[u.RollNumber] = true
	}
	pool := rolls[:0]
	for _, roll := range rolls {
		if isStudent[roll] {
			pool = append(pool, roll)
		}
	}
	return pool, nil
}

func applyFilter(results []MatchResult, filter *Filter) []MatchResult {
	if filter == nil {
		return results
	}
	domain := strings.TrimSpace(filter.Domain)
	skills := normalizeTerms(filter.Skills)
	interests := normalizeTerms(filter.Interests)

	filtered := results[:0]
	for _, r := range results {
		if domain != "" && !r.Candidate.HasDomain(domain) {
			continue
		}
		if filter.BatchYear != nil && r.Candidate.BatchYear != *filter.BatchYear {
			continue
		}
		if len(skills) > 0 && !anyFold(r.Candidate.TechnicalSkills, skills) {
			continue
		}
		if len(interests) > 0 && !anyFold(r.Candidate.Interests, interests) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// normalizeTerms trims, drops empties, and caps the term list.
func normalizeTerms(terms []string) map[string]bool {
	out := make(map[string]bool, len(terms))
	for _, term := range terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		out[strings.ToLower(trimmed)] = true
		if len(out) >= maxFilterTerms {
			break
		}
	}
	return out
}

func anyFold(values []string, wanted map[string]bool) bool {
	for _, v := range values {
		if wanted[strings.ToLower(strings.TrimSpace(v))] {
			return true
		}
	}
	return false
}
