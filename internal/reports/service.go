package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"skillbridge-backend/internal/students"
)

const topSkillsLimit = 5

// SkillCount is one entry of the top-skills leaderboard.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// TypeCount is one entry of the achievements-by-type breakdown.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// SkillsAchievements is the admin analytics snapshot.
type SkillsAchievements struct {
	TopSkills          []SkillCount `json:"topSkills"`
	AchievementsByType []TypeCount  `json:"achievementsByType"`
}

// Service computes aggregate statistics across the whole student body.
type Service struct {
	Repo students.Repo

	// QueryTimeout bounds the repository work of each report.
	QueryTimeout time.Duration
}

func NewService(repo students.Repo, queryTimeout time.Duration) *Service {
	return &Service{Repo: repo, QueryTimeout: queryTimeout}
}

// GetSkillsAchievements returns the five most common technical skills and a
// count of achievements per type. Skills are counted case-insensitively and
// reported under their first-seen casing; achievements with no type fall
// under "Other".
func (s *Service) GetSkillsAchievements(ctx context.Context) (*SkillsAchievements, error) {
	if s.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.QueryTimeout)
		defer cancel()
	}

	skills, err := s.Repo.ListAllTechnicalSkills(ctx)
	if err != nil {
		return nil, err
	}
	achievements, err := s.Repo.ListAllAchievements(ctx)
	if err != nil {
		return nil, err
	}

	return &SkillsAchievements{
		TopSkills:          topSkills(skills),
		AchievementsByType: achievementsByType(achievements),
	}, nil
}

func topSkills(rows []students.SkillRow) []SkillCount {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, row := range rows {
		name := strings.TrimSpace(row.SkillName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		counts[key]++
		if _, seen := labels[key]; !seen {
			labels[key] = name
		}
	}

	out := make([]SkillCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, SkillCount{Skill: labels[key], Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	if len(out) > topSkillsLimit {
		out = out[:topSkillsLimit]
	}
	return out
}

func achievementsByType(rows []students.Achievement) []TypeCount {
	counts := make(map[string]int)
	for _, row := range rows {
		kind := strings.TrimSpace(row.Type)
		if kind == "" {
			kind = "Other"
		}
		counts[kind]++
	}

	out := make([]TypeCount, 0, len(counts))
	for kind, count := range counts {
		out = append(out, TypeCount{Type: kind, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
