package students

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "student record not found" }

// ProfileQuery narrows ListProfiles. Nil/zero fields are not applied.
type ProfileQuery struct {
	BatchYear    *int
	Degree       string
	MinBatchYear *int
}

// Repo is the read interface over the student information store. The
// discovery and ranking engines never write; batch listers take identifier
// lists so callers issue one query per attribute category.
type Repo interface {
	GetUser(ctx context.Context, roll string) (User, error)
	GetProfile(ctx context.Context, roll string) (Profile, error)

	ListProfiles(ctx context.Context, q ProfileQuery) ([]Profile, error)
	ListProfilesByRoll(ctx context.Context, rolls []string) ([]Profile, error)
	// ListUsersByRoll returns users for the given rolls; role, when non-empty,
	// restricts the result to that platform role.
	ListUsersByRoll(ctx context.Context, rolls []string, role string) ([]User, error)

	ListTechnicalSkills(ctx context.Context, rolls []string) ([]SkillRow, error)
	ListSoftSkills(ctx context.Context, rolls []string) ([]SkillRow, error)
	ListInterests(ctx context.Context, rolls []string) ([]InterestRow, error)
	ListAchievements(ctx context.Context, rolls []string) ([]Achievement, error)
	ListInternships(ctx context.Context, rolls []string) ([]Internship, error)

	// Whole-table reads backing the admin analytics.
	ListAllTechnicalSkills(ctx context.Context) ([]SkillRow, error)
	ListAllAchievements(ctx context.Context) ([]Achievement, error)
}
