package matching

import (
	"math"
	"strings"

	"skillbridge-backend/internal/candidates"
)

// Component weights of the composite match score. Fixed by product decision,
// not configurable per request.
const (
	weightSkills       = 0.40
	weightInterests    = 0.30
	weightDomains      = 0.20
	weightAchievements = 0.10
)

// ComponentScores carries the per-attribute Jaccard values behind a match
// score, each in [0, 1].
type ComponentScores struct {
	Skills       float64 `json:"skills"`
	Interests    float64 `json:"interests"`
	Domains      float64 `json:"domains"`
	Achievements float64 `json:"achievements"`
}

// Jaccard computes |A ∩ B| / |A ∪ B| over case-folded string sets. Either
// side empty yields 0: no data reads as no similarity, and the union can
// never divide by zero.
func Jaccard(a, b []string) float64 {
	setA := foldSet(a)
	setB := foldSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for v := range setA {
		if setB[v] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Score quantifies the similarity of candidate against reference as an
// integer in [0, 100], rounding half-up. Identical inputs always produce
// identical output.
func Score(reference, candidate *candidates.CandidateProfile) (int, ComponentScores) {
	components := ComponentScores{
		Skills:       Jaccard(reference.TechnicalSkills, candidate.TechnicalSkills),
		Interests:    Jaccard(reference.Interests, candidate.Interests),
		Domains:      Jaccard(reference.InternshipDomains, candidate.InternshipDomains),
		Achievements: Jaccard(reference.AchievementTypes, candidate.AchievementTypes),
	}
	composite := weightSkills*components.Skills +
		weightInterests*components.Interests +
		weightDomains*components.Domains +
		weightAchievements*components.Achievements
	return int(math.Round(composite * 100)), components
}

func foldSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		set[strings.ToLower(trimmed)] = true
	}
	return set
}
