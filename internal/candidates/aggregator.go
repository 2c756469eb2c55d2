package candidates

import (
	"context"
	"strings"

	"skillbridge-backend/internal/students"
)

// Aggregator builds CandidateProfiles for a set of roll numbers with one
// batched repository query per attribute category.
type Aggregator struct {
	Repo students.Repo
}

func NewAggregator(repo students.Repo) *Aggregator {
	return &Aggregator{Repo: repo}
}

// BuildProfiles returns one CandidateProfile per roll number. Rolls lacking
// either a user record or a profile row are dropped: a candidate needs both
// to be comparable. An empty input yields an empty map without touching the
// repository.
func (a *Aggregator) BuildProfiles(ctx context.Context, rolls []string) (map[string]*CandidateProfile, error) {
	out := make(map[string]*CandidateProfile)
	if len(rolls) == 0 {
		return out, nil
	}

	users, err := a.Repo.ListUsersByRoll(ctx, rolls, "")
	if err != nil {
		return nil, err
	}
	profiles, err := a.Repo.ListProfilesByRoll(ctx, rolls)
	if err != nil {
		return nil, err
	}

	userByRoll := make(map[string]students.User, len(users))
	for _, u := range users {
		userByRoll[u.RollNumber] = u
	}

	surviving := make([]string, 0, len(profiles))
	for _, p := range profiles {
		u, ok := userByRoll[p.RollNumber]
		if !ok {
			continue
		}
		surviving = append(surviving, p.RollNumber)
		out[p.RollNumber] = &CandidateProfile{
			RollNumber:        p.RollNumber,
			FullName:          u.FullName,
			Degree:            p.Degree,
			Department:        p.Department,
			BatchYear:         p.BatchYear,
			CGPA:              p.CGPA,
			TechnicalSkills:   []string{},
			SoftSkills:        []string{},
			Interests:         []string{},
			AchievementTypes:  []string{},
			InternshipDomains: []string{},
			Achievements:      []AchievementSummary{},
			Internships:       []InternshipSummary{},
			Links:             Links{LinkedIn: p.LinkedInURL, GitHub: p.GitHubURL},
		}
	}
	if len(surviving) == 0 {
		return out, nil
	}

	tech, err := a.Repo.ListTechnicalSkills(ctx, surviving)
	if err != nil {
		return nil, err
	}
	soft, err := a.Repo.ListSoftSkills(ctx, surviving)
	if err != nil {
		return nil, err
	}
	interests, err := a.Repo.ListInterests(ctx, surviving)
	if err != nil {
		return nil, err
	}
	achievements, err := a.Repo.ListAchievements(ctx, surviving)
	if err != nil {
		return nil, err
	}
	internships, err := a.Repo.ListInternships(ctx, surviving)
	if err != nil {
		return nil, err
	}

	seenTech := make(map[string]map[string]bool)
	for _, row := range tech {
		if profile, ok := out[row.RollNumber]; ok {
			profile.TechnicalSkills = appendToSet(profile.TechnicalSkills, seenSetFor(seenTech, row.RollNumber), row.SkillName)
		}
	}
	seenSoft := make(map[string]map[string]bool)
	for _, row := range soft {
		if profile, ok := out[row.RollNumber]; ok {
			profile.SoftSkills = appendToSet(profile.SoftSkills, seenSetFor(seenSoft, row.RollNumber), row.SkillName)
		}
	}
	seenInterests := make(map[string]map[string]bool)
	for _, row := range interests {
		if profile, ok := out[row.RollNumber]; ok {
			profile.Interests = appendToSet(profile.Interests, seenSetFor(seenInterests, row.RollNumber), row.InterestName)
		}
	}
	for _, row := range achievements {
		profile, ok := out[row.RollNumber]
		if !ok {
			continue
		}
		if row.Type != "" {
			profile.AchievementTypes = append(profile.AchievementTypes, row.Type)
		}
		profile.Achievements = append(profile.Achievements, AchievementSummary{Title: row.Title, Date: row.Date})
	}
	for _, row := range internships {
		profile, ok := out[row.RollNumber]
		if !ok {
			continue
		}
		if row.Domain != "" {
			profile.InternshipDomains = append(profile.InternshipDomains, row.Domain)
		}
		profile.Internships = append(profile.Internships, InternshipSummary{Company: row.CompanyName, Domain: row.Domain, Type: row.Type})
	}

	return out, nil
}

func seenSetFor(byRoll map[string]map[string]bool, roll string) map[string]bool {
	set, ok := byRoll[roll]
	if !ok {
		set = make(map[string]bool)
		byRoll[roll] = set
	}
	return set
}

// appendToSet adds value unless an entry already matches after case-folding.
func appendToSet(list []string, seen map[string]bool, value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return list
	}
	key := strings.ToLower(trimmed)
	if seen[key] {
		return list
	}
	seen[key] = true
	return append(list, trimmed)
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
