package students

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service serves the caller-scoped reads: identity lookup and the dashboard
// overview.
type Service struct {
	Repo Repo

	// QueryTimeout bounds the repository work of each operation.
	QueryTimeout time.Duration
}

func NewService(repo Repo, queryTimeout time.Duration) *Service {
	return &Service{Repo: repo, QueryTimeout: queryTimeout}
}

// Me is the authenticated user plus their profile, when one exists.
type Me struct {
	User    User     `json:"user"`
	Profile *Profile `json:"profile"`
}

// Overview aggregates everything the student dashboard shows in one response.
type Overview struct {
	User               User          `json:"user"`
	Profile            *Profile      `json:"profile"`
	TechnicalSkills    []string      `json:"technicalSkills"`
	SoftSkills         []string      `json:"softSkills"`
	RecentAchievements []Achievement `json:"recentAchievements"`
	Internships        []Internship  `json:"internships"`
	ActiveInternships  []Internship  `json:"activeInternships"`
	Counts             Counts        `json:"counts"`
}

// Counts summarizes record totals for the dashboard cards.
type Counts struct {
	Achievements    int `json:"achievements"`
	Internships     int `json:"internships"`
	TechnicalSkills int `json:"technicalSkills"`
	SoftSkills      int `json:"softSkills"`
}

const recentAchievementLimit = 5

// GetMe resolves the caller's user record and optional profile.
func (s *Service) GetMe(ctx context.Context, roll string) (Me, error) {
	if strings.TrimSpace(roll) == "" {
		return Me{}, errors.New("roll number is required")
	}
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	user, err := s.Repo.GetUser(ctx, roll)
	if err != nil {
		return Me{}, err
	}
	me := Me{User: user}
	profile, err := s.Repo.GetProfile(ctx, roll)
	switch {
	case err == nil:
		me.Profile = &profile
	case errors.Is(err, ErrNotFound):
		// A user without a profile row is still a valid identity.
	default:
		return Me{}, err
	}
	return me, nil
}

// GetOverview builds the caller's dashboard overview.
func (s *Service) GetOverview(ctx context.Context, roll string) (Overview, error) {
	if strings.TrimSpace(roll) == "" {
		return Overview{}, errors.New("roll number is required")
	}
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	user, err := s.Repo.GetUser(ctx, roll)
	if err != nil {
		return Overview{}, err
	}
	overview := Overview{User: user}

	profile, err := s.Repo.GetProfile(ctx, roll)
	switch {
	case err == nil:
		overview.Profile = &profile
	case errors.Is(err, ErrNotFound):
	default:
		return Overview{}, err
	}

	rolls := []string{roll}
	tech, err := s.Repo.ListTechnicalSkills(ctx, rolls)
	if err != nil {
		return Overview{}, err
	}
	soft, err := s.Repo.ListSoftSkills(ctx, rolls)
	if err != nil {
		return Overview{}, err
	}
	achievements, err := s.Repo.ListAchievements(ctx, rolls)
	if err != nil {
		return Overview{}, err
	}
	internships, err := s.Repo.ListInternships(ctx, rolls)
	if err != nil {
		return Overview{}, err
	}

	overview.TechnicalSkills = skillNames(tech)
	overview.SoftSkills = skillNames(soft)
	overview.RecentAchievements = achievements
	if len(overview.RecentAchievements) > recentAchievementLimit {
		overview.RecentAchievements = overview.RecentAchievements[:recentAchievementLimit]
	}
	overview.Internships = internships
	overview.ActiveInternships = activeInternships(internships, time.Now())
	overview.Counts = Counts{
		Achievements:    len(achievements),
		Internships:     len(internships),
		TechnicalSkills: len(overview.TechnicalSkills),
		SoftSkills:      len(overview.SoftSkills),
	}
	return overview, nil
}

// activeInternships keeps approved internships whose date window contains now.
// Records with no dates at all count as active.
func activeInternships(internships []Internship, now time.Time) []Internship {
	var out []Internship
	for _, it := range internships {
		if it.Status != InternshipStatusApproved {
			continue
		}
		if it.StartDate != nil && it.StartDate.After(now) {
			continue
		}
		if it.EndDate != nil && it.EndDate.Before(now) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func skillNames(rows []SkillRow) []string {
	var out []string
	for _, row := range rows {
		out = append(out, row.SkillName)
	}
	return out
}

func (s *Service) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}
