package students

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo implements Repo with in-process maps. It backs tests and the
// dev fallback when no database is configured; the Add* seed methods are not
// part of the Repo interface because the engines never write.
type MemoryRepo struct {
	mu           sync.RWMutex
	users        map[string]User
	profiles     map[string]Profile
	techSkills   []SkillRow
	softSkills   []SkillRow
	interests    []InterestRow
	achievements []Achievement
	internships  []Internship
	nextAchID    int64
	nextIntID    int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:    make(map[string]User),
		profiles: make(map[string]Profile),
	}
}

func (r *MemoryRepo) AddUser(user User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.RollNumber] = user
}

func (r *MemoryRepo) AddProfile(profile Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.RollNumber] = profile
}

func (r *MemoryRepo) AddTechnicalSkill(roll, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.techSkills = append(r.techSkills, SkillRow{RollNumber: roll, SkillName: name})
}

func (r *MemoryRepo) AddSoftSkill(roll, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.softSkills = append(r.softSkills, SkillRow{RollNumber: roll, SkillName: name})
}

func (r *MemoryRepo) AddInterest(roll, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interests = append(r.interests, InterestRow{RollNumber: roll, InterestName: name})
}

func (r *MemoryRepo) AddAchievement(a Achievement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextAchID++
	a.ID = r.nextAchID
	r.achievements = append(r.achievements, a)
}

func (r *MemoryRepo) AddInternship(i Internship) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextIntID++
	i.ID = r.nextIntID
	r.internships = append(r.internships, i)
}

func (r *MemoryRepo) GetUser(ctx context.Context, roll string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[roll]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetProfile(ctx context.Context, roll string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[roll]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) ListProfiles(ctx context.Context, q ProfileQuery) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Profile
	for _, profile := range r.profiles {
		if q.BatchYear != nil && profile.BatchYear != *q.BatchYear {
			continue
		}
		if q.MinBatchYear != nil && profile.BatchYear < *q.MinBatchYear {
			continue
		}
		if strings.TrimSpace(q.Degree) != "" && profile.Degree != q.Degree {
			continue
		}
		out = append(out, profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RollNumber < out[j].RollNumber })
	return out, nil
}

func (r *MemoryRepo) ListProfilesByRoll(ctx context.Context, rolls []string) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Profile
	for _, roll := range sortedUnique(rolls) {
		if profile, ok := r.profiles[roll]; ok {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListUsersByRoll(ctx context.Context, rolls []string, role string) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []User
	for _, roll := range sortedUnique(rolls) {
		user, ok := r.users[roll]
		if !ok {
			continue
		}
		if role != "" && user.Role != role {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (r *MemoryRepo) ListTechnicalSkills(ctx context.Context, rolls []string) ([]SkillRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterSkills(r.techSkills, rolls), nil
}

func (r *MemoryRepo) ListSoftSkills(ctx context.Context, rolls []string) ([]SkillRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterSkills(r.softSkills, rolls), nil
}

func (r *MemoryRepo) ListInterests(ctx context.Context, rolls []string) ([]InterestRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(rolls) == 0 {
		return nil, nil
	}
	wanted := rollSet(rolls)
	var out []InterestRow
	for _, row := range r.interests {
		if wanted[row.RollNumber] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListAchievements(ctx context.Context, rolls []string) ([]Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(rolls) == 0 {
		return nil, nil
	}
	wanted := rollSet(rolls)
	var out []Achievement
	for _, row := range r.achievements {
		if wanted[row.RollNumber] {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepo) ListInternships(ctx context.Context, rolls []string) ([]Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(rolls) == 0 {
		return nil, nil
	}
	wanted := rollSet(rolls)
	var out []Internship
	for _, row := range r.internships {
		if wanted[row.RollNumber] {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepo) ListAllTechnicalSkills(ctx context.Context) ([]SkillRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]SkillRow(nil), r.techSkills...), nil
}

func (r *MemoryRepo) ListAllAchievements(ctx context.Context) ([]Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Achievement(nil), r.achievements...), nil
}

func filterSkills(rows []SkillRow, rolls []string) []SkillRow {
	if len(rolls) == 0 {
		return nil
	}
	wanted := rollSet(rolls)
	var out []SkillRow
	for _, row := range rows {
		if wanted[row.RollNumber] {
			out = append(out, row)
		}
	}
	return out
}

func rollSet(rolls []string) map[string]bool {
	set := make(map[string]bool, len(rolls))
	for _, roll := range rolls {
		set[roll] = true
	}
	return set
}

func sortedUnique(rolls []string) []string {
	out := make([]string, 0, len(rolls))
	seen := make(map[string]bool, len(rolls))
	for _, roll := range rolls {
		if !seen[roll] {
			seen[roll] = true
			out = append(out, roll)
		}
	}
	sort.Strings(out)
	return out
}
