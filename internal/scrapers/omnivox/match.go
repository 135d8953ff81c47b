package omnivox

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// below this, a semester name is too far off to be what the user meant
const minSemesterSimilarity = 0.85

// MatchSemester finds a semester by id, or failing that, by the name that is
// most similar to query (ex. "fall 2024" finds "Fall 2024 ").
func MatchSemester(semesters []Semester, query string) (Semester, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Semester{}, false
	}
	for _, s := range semesters {
		if s.Id == query {
			return s, true
		}
	}

	target := strings.ToLower(query)
	var best Semester
	var bestSimilarity float64
	for _, s := range semesters {
		similarity := matchr.JaroWinkler(target, strings.ToLower(strings.TrimSpace(s.Name)), false)
		if similarity > bestSimilarity {
			best = s
			bestSimilarity = similarity
		}
	}
	if bestSimilarity < minSemesterSimilarity {
		return Semester{}, false
	}
	return best, true
}
