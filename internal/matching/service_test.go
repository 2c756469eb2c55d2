package matching

import (
	"context"
	"reflect"
	"testing"
	"time"

	"skillbridge-backend/internal/candidates"
	"skillbridge-backend/internal/students"
)

func newMatchingService(repo *students.MemoryRepo) *Service {
	return NewService(repo, candidates.NewAggregator(repo), 2024, 5*time.Second)
}

func seedStudent(repo *students.MemoryRepo, roll, name string, batch int, skills, interests []string) {
	repo.AddUser(students.User{RollNumber: roll, FullName: name, Email: roll + "@campus.edu", Role: "student"})
	repo.AddProfile(students.Profile{RollNumber: roll, Degree: "B.Tech", BatchYear: batch})
	for _, s := range skills {
		repo.AddTechnicalSkill(roll, s)
	}
	for _, i := range interests {
		repo.AddInterest(roll, i)
	}
}

func TestRankMentorMatchesScenario(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "21CS001", "Senior S", 2021, []string{"Python", "SQL"}, []string{"AI"})
	seedStudent(repo, "24CS001", "Junior One", 2024, []string{"Python", "SQL", "React"}, []string{"AI"})
	seedStudent(repo, "24CS002", "Junior Two", 2024, []string{"Java"}, []string{"Music"})

	svc := newMatchingService(repo)
	results, err := svc.RankMentorMatches(context.Background(), "21CS001", nil)
	if err != nil {
		t.Fatalf("RankMentorMatches: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Candidate.RollNumber != "24CS001" || results[0].MatchScore != 57 {
		t.Fatalf("first = %s (%d), want 24CS001 (57)", results[0].Candidate.RollNumber, results[0].MatchScore)
	}
	if results[1].Candidate.RollNumber != "24CS002" || results[1].MatchScore != 0 {
		t.Fatalf("second = %s (%d), want 24CS002 (0)", results[1].Candidate.RollNumber, results[1].MatchScore)
	}
}

func TestRankMentorMatchesIdempotent(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "21CS001", "Senior S", 2021, []string{"Go", "SQL"}, []string{"Systems"})
	seedStudent(repo, "24CS001", "Junior One", 2024, []string{"Go"}, []string{"Systems"})
	seedStudent(repo, "24CS002", "Junior Two", 2025, []string{"SQL"}, []string{"AI"})

	svc := newMatchingService(repo)
	first, err := svc.RankMentorMatches(context.Background(), "21CS001", nil)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.RankMentorMatches(context.Background(), "21CS001", nil)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls differ:\n%+v\n%+v", first, second)
	}
}

func TestRankMentorMatchesTieBreakByRoll(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "21CS001", "Senior S", 2021, []string{"Go"}, nil)
	// Identical attribute sets produce identical scores.
	seedStudent(repo, "24CS009", "Junior B", 2024, []string{"Go"}, nil)
	seedStudent(repo, "24CS001", "Junior A", 2024, []string{"Go"}, nil)

	svc := newMatchingService(repo)
	results, err := svc.RankMentorMatches(context.Background(), "21CS001", nil)
	if err != nil {
		t.Fatalf("RankMentorMatches: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].MatchScore != results[1].MatchScore {
		t.Fatalf("expected equal scores, got %d and %d", results[0].MatchScore, results[1].MatchScore)
	}
	if results[0].Candidate.RollNumber != "24CS001" {
		t.Fatalf("tie not broken by roll ascending: first is %s", results[0].Candidate.RollNumber)
	}
}

func TestRankMentorMatchesMissingReference(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "24CS001", "Junior One", 2024, []string{"Go"}, nil)

	svc := newMatchingService(repo)
	results, err := svc.RankMentorMatches(context.Background(), "99XX999", nil)
	if err != nil {
		t.Fatalf("RankMentorMatches: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want empty list", len(results))
	}
}

func TestRankMentorMatchesExcludesReference(t *testing.T) {
	repo := students.NewMemoryRepo()
	// Reference is itself inside the junior batch window.
	seedStudent(repo, "24CS001", "Self", 2024, []string{"Go"}, nil)
	seedStudent(repo, "24CS002", "Peer", 2024, []string{"Go"}, nil)

	svc := newMatchingService(repo)
	results, err := svc.RankMentorMatches(context.Background(), "24CS001", nil)
	if err != nil {
		t.Fatalf("RankMentorMatches: %v", err)
	}
	for _, r := range results {
		if r.Candidate.RollNumber == "24CS001" {
			t.Fatalf("reference appeared in its own results")
		}
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestRankMentorMatchesExcludesNonStudents(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "21CS001", "Senior S", 2021, []string{"Go"}, nil)
	seedStudent(repo, "24CS001", "Junior One", 2024, []string{"Go"}, nil)
	repo.AddUser(students.User{RollNumber: "24AD001", FullName: "Staff", Role: "admin"})
	repo.AddProfile(students.Profile{RollNumber: "24AD001", BatchYear: 2024})

	svc := newMatchingService(repo)
	results, err := svc.RankMentorMatches(context.Background(), "21CS001", nil)
	if err != nil {
		t.Fatalf("RankMentorMatches: %v", err)
	}
	if len(results) != 1 || results[0].Candidate.RollNumber != "24CS001" {
		t.Fatalf("expected only the student candidate, got %+v", results)
	}
}

func TestFilterSkillsUseORSemantics(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "21CS001", "Senior S", 2021, []string{"Go", "SQL"}, nil)
	// Holds only one of the two filter skills.
	seedStudent(repo, "24CS001", "Junior One", 2024, []string{"Go"}, nil)
	seedStudent(repo, "24CS002", "Junior Two", 2024, []string{"Rust"}, nil)

	svc := newMatchingService(repo)
	results, err := svc.RankMentorMatches(context.Background(), "21CS001", &Filter{
		Skills: []string{"go", "Python"},
	})
	if err != nil {
		t.Fatalf("RankMentorMatches: %v", err)
	}
	if len(results) != 1 || results[0].Candidate.RollNumber != "24CS001" {
		t.Fatalf("expected the partial skill holder only, got %+v", results)
	}
}

func TestFilterBatchAndDomain(t *testing.T) {
	repo := students.NewMemoryRepo()
	seedStudent(repo, "21CS001", "Senior S", 2021, []string{"Go"}, nil)
	seedStudent(repo, "24CS001", "Junior One", 2024, []string{"Go"}, nil)
	seedStudent(repo, "25CS001", "Junior Two", 2025, []string{"Go"}, nil)
	repo.AddInternship(students.Internship{RollNumber: "25CS001", CompanyName: "Acme", Domain: "Web Development", Type: "Summer", Status: "Approved"})

	svc := newMatchingService(repo)

	year := 2025
	results, err := svc.RankMentorMatches(context.Background(), "21CS001", &Filter{BatchYear: &year})
	if err != nil {
		t.Fatalf("batch filter: %v", err)
	}
	if len(results) != 1 || results[0].Candidate.RollNumber != "25CS001" {
		t.Fatalf("batch filter kept %+v, want only 25CS001", results)
	}

	results, err = svc.RankMentorMatches(context.Background(), "21CS001", &Filter{Domain: "web development"})
	if err != nil {
		t.Fatalf("domain filter: %v", err)
	}
	if len(results) != 1 || results[0].Candidate.RollNumber != "25CS001" {
		t.Fatalf("domain filter kept %+v, want only 25CS001", results)
	}
}
