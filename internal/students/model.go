package students

import "time"

// User is an identity record. The roll number is the platform-wide student
// identifier.
type User struct {
	RollNumber string    `json:"rollNumber"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile holds the academic profile attached to a user.
type Profile struct {
	RollNumber  string     `json:"rollNumber"`
	DOB         *time.Time `json:"dob,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Degree      string     `json:"degree,omitempty"`
	Department  string     `json:"department,omitempty"`
	BatchYear   int        `json:"batchYear,omitempty"`
	PassoutYear int        `json:"passoutYear,omitempty"`
	CGPA        *float64   `json:"cgpa,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	LinkedInURL string     `json:"linkedinUrl,omitempty"`
	GitHubURL   string     `json:"githubUrl,omitempty"`
}

// SkillRow is one technical or soft skill entry for a student.
type SkillRow struct {
	RollNumber string `json:"rollNumber"`
	SkillName  string `json:"skillName"`
}

// InterestRow is one interest entry for a student.
type InterestRow struct {
	RollNumber   string `json:"rollNumber"`
	InterestName string `json:"interestName"`
}

// Achievement is one achievement record, typed for overlap counting.
type Achievement struct {
	ID         int64      `json:"achievementId"`
	RollNumber string     `json:"rollNumber"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	Date       *time.Time `json:"date,omitempty"`
}

// Internship is one internship record. Domain feeds the similarity scoring.
type Internship struct {
	ID          int64      `json:"internshipId"`
	RollNumber  string     `json:"rollNumber"`
	CompanyName string     `json:"companyName"`
	Role        string     `json:"role,omitempty"`
	Domain      string     `json:"domain,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Type        string     `json:"internshipType"`
	Status      string     `json:"status"`
}

// InternshipStatusApproved marks internships counted as active on dashboards.
const InternshipStatusApproved = "Approved"
