// Package didyoumean suggests a close match for a misspelled name.
package didyoumean

import "github.com/agnivade/levenshtein"

// MaxDistance is the largest edit distance considered close enough to
// suggest.
const MaxDistance = 2

// For returns the candidate closest to word within MaxDistance, or the
// empty string if nothing is close.  Ties go to the earliest candidate.
func For(word string, candidates []string) string {
	best := ""
	bestDist := MaxDistance + 1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
