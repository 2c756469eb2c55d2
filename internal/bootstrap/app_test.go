package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"skillbridge-backend/internal/shared/auth"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/students"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	app, err := Build(config.Config{
		Env:                 "dev",
		JuniorBatchYear:     2024,
		StudentQueryTimeout: 0,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

func memRepo(t *testing.T, app *App) *students.MemoryRepo {
	t.Helper()
	repo, ok := app.StudentsRepo.(*students.MemoryRepo)
	if !ok {
		t.Fatalf("expected in-memory repo in dev build")
	}
	return repo
}

func bearerToken(t *testing.T, roll, role string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: roll},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return "Bearer " + token
}

func doRequest(app *App, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error.Code
}

func seedScenario(repo *students.MemoryRepo) {
	for _, s := range []struct {
		roll, name, role string
		batch            int
		skills           []string
		interests        []string
	}{
		{"21CS001", "Senior S", "student", 2021, []string{"Python", "SQL"}, []string{"AI"}},
		{"24CS001", "Junior One", "student", 2024, []string{"Python", "SQL", "React"}, []string{"AI"}},
		{"24CS002", "Junior Two", "student", 2024, []string{"Java"}, []string{"Music"}},
	} {
		repo.AddUser(students.User{RollNumber: s.roll, FullName: s.name, Role: s.role, Email: s.roll + "@campus.edu"})
		repo.AddProfile(students.Profile{RollNumber: s.roll, Degree: "B.Tech", BatchYear: s.batch})
		for _, skill := range s.skills {
			repo.AddTechnicalSkill(s.roll, skill)
		}
		for _, interest := range s.interests {
			repo.AddInterest(s.roll, interest)
		}
	}
}

func TestHealthEndpointOpen(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(app, http.MethodGet, "/api/v1/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestMetricsEndpointOpen(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(app, http.MethodGet, "/api/v1/metrics", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("expected metrics body")
	}
}

func TestDirectoryRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(app, http.MethodGet, "/api/v1/directory", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "unauthorized" {
		t.Fatalf("error code = %q, want unauthorized", code)
	}
}

func TestDirectoryListsCandidates(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/directory?skills=python,sql", bearerToken(t, "24CS002", "student"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var results []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d candidates, want the two holding both skills", len(results))
	}
}

func TestMentorMatchesSelfAllowed(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/mentor-matches/21CS001", bearerToken(t, "21CS001", "student"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var results []struct {
		MatchScore int `json:"matchScore"`
		Candidate  struct {
			RollNumber string `json:"rollNumber"`
		} `json:"candidate"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Candidate.RollNumber != "24CS001" || results[0].MatchScore != 57 {
		t.Fatalf("first result = %+v, want 24CS001 at 57", results[0])
	}
}

func TestMentorMatchesOtherStudentForbidden(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/mentor-matches/21CS001", bearerToken(t, "24CS001", "student"), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "forbidden" {
		t.Fatalf("error code = %q, want forbidden", code)
	}
}

func TestMentorMatchesAdminAllowed(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/mentor-matches/21CS001", bearerToken(t, "99AD001", "admin"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMentorMatchFilterRequiresReference(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	body := []byte(`{"skills": ["python"]}`)
	resp := doRequest(app, http.MethodPost, "/api/v1/mentor-matches/filter", bearerToken(t, "99AD001", "admin"), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "validation_error" {
		t.Fatalf("error code = %q, want validation_error", code)
	}
}

func TestMentorMatchFilterToleratesLooseTypes(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	body := []byte(`{"referenceId": "21CS001", "batchYear": "2024", "skills": ["python", 42]}`)
	resp := doRequest(app, http.MethodPost, "/api/v1/mentor-matches/filter", bearerToken(t, "21CS001", "student"), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var results []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want the single python holder in 2024", len(results))
	}
}

func TestMentorMatchDetailAdminOnly(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/mentor-matches/detail/24CS001", bearerToken(t, "24CS001", "student"), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", resp.Code)
	}

	resp = doRequest(app, http.MethodGet, "/api/v1/mentor-matches/detail/24CS001", bearerToken(t, "99AD001", "admin"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(app, http.MethodGet, "/api/v1/mentor-matches/detail/unknown", bearerToken(t, "99AD001", "admin"), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown roll, got %d", resp.Code)
	}
}

func TestAnalyticsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/admin/analytics/skills-achievements", bearerToken(t, "24CS001", "student"), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", resp.Code)
	}

	resp = doRequest(app, http.MethodGet, "/api/v1/admin/analytics/skills-achievements", bearerToken(t, "99AD001", "admin"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMeEndpoint(t *testing.T) {
	app := newTestApp(t)
	seedScenario(memRepo(t, app))

	resp := doRequest(app, http.MethodGet, "/api/v1/me", bearerToken(t, "24CS001", "student"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		User students.User `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.User.FullName != "Junior One" {
		t.Fatalf("user = %+v, want Junior One", payload.User)
	}

	resp = doRequest(app, http.MethodGet, "/api/v1/dashboard/overview", bearerToken(t, "24CS001", "student"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("overview expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}
