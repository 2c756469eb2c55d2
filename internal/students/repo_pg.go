package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo against Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetUser(ctx context.Context, roll string) (User, error) {
	const query = `
SELECT roll_number, full_name, email, role, created_at
FROM users
WHERE roll_number = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, roll).Scan(
		&user.RollNumber,
		&user.FullName,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) GetProfile(ctx context.Context, roll string) (Profile, error) {
	query := profileSelect + `
WHERE roll_number = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, roll)
	profile, err := scanProfile(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}

func (r *PGRepo) ListProfiles(ctx context.Context, q ProfileQuery) ([]Profile, error) {
	var (
		conds []string
		args  []any
	)
	if q.BatchYear != nil {
		args = append(args, *q.BatchYear)
		conds = append(conds, fmt.Sprintf("batch_year = $%d", len(args)))
	}
	if q.MinBatchYear != nil {
		args = append(args, *q.MinBatchYear)
		conds = append(conds, fmt.Sprintf("batch_year >= $%d", len(args)))
	}
	if strings.TrimSpace(q.Degree) != "" {
		args = append(args, q.Degree)
		conds = append(conds, fmt.Sprintf("degree = $%d", len(args)))
	}

	query := profileSelect
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY roll_number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (r *PGRepo) ListProfilesByRoll(ctx context.Context, rolls []string) ([]Profile, error) {
	if len(rolls) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(rolls)
	query := profileSelect + `
WHERE roll_number IN (` + placeholders + `)
ORDER BY roll_number`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (r *PGRepo) ListUsersByRoll(ctx context.Context, rolls []string, role string) ([]User, error) {
	if len(rolls) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(rolls)
	query := `
SELECT roll_number, full_name, email, role, created_at
FROM users
WHERE roll_number IN (` + placeholders + `)`
	if strings.TrimSpace(role) != "" {
		args = append(args, role)
		query += fmt.Sprintf("\nAND role = $%d", len(args))
	}
	query += "\nORDER BY roll_number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.RollNumber, &user.FullName, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PGRepo) ListTechnicalSkills(ctx context.Context, rolls []string) ([]SkillRow, error) {
	return r.listSkills(ctx, "technical_skills", rolls)
}

func (r *PGRepo) ListSoftSkills(ctx context.Context, rolls []string) ([]SkillRow, error) {
	return r.listSkills(ctx, "soft_skills", rolls)
}

func (r *PGRepo) listSkills(ctx context.Context, table string, rolls []string) ([]SkillRow, error) {
	if len(rolls) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(rolls)
	query := `
SELECT roll_number, skill_name
FROM ` + table + `
WHERE roll_number IN (` + placeholders + `)
ORDER BY roll_number, skill_name`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

func (r *PGRepo) ListInterests(ctx context.Context, rolls []string) ([]InterestRow, error) {
	if len(rolls) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(rolls)
	query := `
SELECT roll_number, interest_name
FROM interests
WHERE roll_number IN (` + placeholders + `)
ORDER BY roll_number, interest_name`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []InterestRow
	for rows.Next() {
		var row InterestRow
		if err := rows.Scan(&row.RollNumber, &row.InterestName); err != nil {
			return nil, err
		}
		interests = append(interests, row)
	}
	return interests, rows.Err()
}

func (r *PGRepo) ListAchievements(ctx context.Context, rolls []string) ([]Achievement, error) {
	if len(rolls) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(rolls)
	query := achievementSelect + `
WHERE roll_number IN (` + placeholders + `)
ORDER BY achievement_id DESC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAchievements(rows)
}

func (r *PGRepo) ListInternships(ctx context.Context, rolls []string) ([]Internship, error) {
	if len(rolls) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(rolls)
	query := internshipSelect + `
WHERE roll_number IN (` + placeholders + `)
ORDER BY internship_id DESC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInternships(rows)
}

func (r *PGRepo) ListAllTechnicalSkills(ctx context.Context) ([]SkillRow, error) {
	const query = `
SELECT roll_number, skill_name
FROM technical_skills
ORDER BY roll_number, skill_name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

func (r *PGRepo) ListAllAchievements(ctx context.Context) ([]Achievement, error) {
	query := achievementSelect + `
ORDER BY achievement_id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAchievements(rows)
}

const profileSelect = `
SELECT roll_number, dob, gender, bio, degree, department, batch_year, passout_year, cgpa, phone, linkedin_url, github_url
FROM profiles`

const achievementSelect = `
SELECT achievement_id, roll_number, title, type, date
FROM achievements`

const internshipSelect = `
SELECT internship_id, roll_number, company_name, role, domain, duration, start_date, end_date, internship_type, status
FROM internships`

func collectProfiles(rows *sql.Rows) ([]Profile, error) {
	var profiles []Profile
	for rows.Next() {
		profile, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanProfile(scan func(dest ...any) error) (Profile, error) {
	var profile Profile
	var dob sql.NullTime
	var gender, bio, degree, department, phone, linkedin, github sql.NullString
	var batchYear, passoutYear sql.NullInt64
	var cgpa sql.NullFloat64
	err := scan(
		&profile.RollNumber,
		&dob,
		&gender,
		&bio,
		&degree,
		&department,
		&batchYear,
		&passoutYear,
		&cgpa,
		&phone,
		&linkedin,
		&github,
	)
	if err != nil {
		return Profile{}, err
	}
	if dob.Valid {
		t := dob.Time
		profile.DOB = &t
	}
	profile.Gender = gender.String
	profile.Bio = bio.String
	profile.Degree = degree.String
	profile.Department = department.String
	profile.BatchYear = int(batchYear.Int64)
	profile.PassoutYear = int(passoutYear.Int64)
	if cgpa.Valid {
		v := cgpa.Float64
		profile.CGPA = &v
	}
	profile.Phone = phone.String
	profile.LinkedInURL = linkedin.String
	profile.GitHubURL = github.String
	return profile, nil
}

func collectSkills(rows *sql.Rows) ([]SkillRow, error) {
	var skills []SkillRow
	for rows.Next() {
		var row SkillRow
		if err := rows.Scan(&row.RollNumber, &row.SkillName); err != nil {
			return nil, err
		}
		skills = append(skills, row)
	}
	return skills, rows.Err()
}

func collectAchievements(rows *sql.Rows) ([]Achievement, error) {
	var achievements []Achievement
	for rows.Next() {
		var row Achievement
		var date sql.NullTime
		if err := rows.Scan(&row.ID, &row.RollNumber, &row.Title, &row.Type, &date); err != nil {
			return nil, err
		}
		if date.Valid {
			t := date.Time
			row.Date = &t
		}
		achievements = append(achievements, row)
	}
	return achievements, rows.Err()
}

func collectInternships(rows *sql.Rows) ([]Internship, error) {
	var internships []Internship
	for rows.Next() {
		var row Internship
		var role, domain, duration sql.NullString
		var start, end sql.NullTime
		if err := rows.Scan(&row.ID, &row.RollNumber, &row.CompanyName, &role, &domain, &duration, &start, &end, &row.Type, &row.Status); err != nil {
			return nil, err
		}
		row.Role = role.String
		row.Domain = domain.String
		row.Duration = duration.String
		if start.Valid {
			t := start.Time
			row.StartDate = &t
		}
		if end.Valid {
			t := end.Time
			row.EndDate = &t
		}
		internships = append(internships, row)
	}
	return internships, rows.Err()
}

// inArgs expands rolls into positional placeholders starting at $1.
func inArgs(rolls []string) (string, []any) {
	placeholders := make([]string, len(rolls))
	args := make([]any, len(rolls))
	for i, roll := range rolls {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = roll
	}
	return strings.Join(placeholders, ", "), args
}
