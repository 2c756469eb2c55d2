package candidates

import "time"

// CandidateProfile is the comparable attribute set built for one student.
// Skill and interest slices are sets (case-insensitive dedupe, first-seen
// casing kept for display); achievement types and internship domains keep one
// entry per source record so overlap counting sees repetition.
// Profiles are built fresh per request and never persisted.
type CandidateProfile struct {
	RollNumber        string               `json:"rollNumber"`
	FullName          string               `json:"name"`
	Degree            string               `json:"degree,omitempty"`
	Department        string               `json:"department,omitempty"`
	BatchYear         int                  `json:"batch,omitempty"`
	CGPA              *float64             `json:"cgpa,omitempty"`
	TechnicalSkills   []string             `json:"skills"`
	SoftSkills        []string             `json:"softSkills,omitempty"`
	Interests         []string             `json:"interests"`
	AchievementTypes  []string             `json:"achievementTypes,omitempty"`
	InternshipDomains []string             `json:"domains"`
	Achievements      []AchievementSummary `json:"achievements"`
	Internships       []InternshipSummary  `json:"internships"`
	Links             Links                `json:"links"`
}

// AchievementSummary is the display shape of one achievement.
type AchievementSummary struct {
	Title string     `json:"title"`
	Date  *time.Time `json:"date,omitempty"`
}

// InternshipSummary is the display shape of one internship.
type InternshipSummary struct {
	Company string `json:"company"`
	Domain  string `json:"domain,omitempty"`
	Type    string `json:"type"`
}

// Links carries the optional external profile URLs.
type Links struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// HasSkill reports whether the candidate holds the skill, case-insensitively.
func (p *CandidateProfile) HasSkill(name string) bool {
	return containsFold(p.TechnicalSkills, name)
}

// HasDomain reports whether any internship domain matches, case-insensitively.
func (p *CandidateProfile) HasDomain(name string) bool {
	return containsFold(p.InternshipDomains, name)
}
