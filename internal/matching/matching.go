// Package matching resolves free-text player names against a canonical list.
package matching

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultThreshold is the minimum similarity for a name to count as a match
const DefaultThreshold = 0.80

// initialSimilarity is awarded to "J. Chase" vs "Ja'Marr Chase" style variations
const initialSimilarity = 0.9

var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

var nicknames = map[string]string{
	"mike":  "michael",
	"matt":  "matthew",
	"chris": "christopher",
	"josh":  "joshua",
	"gabe":  "gabriel",
	"cam":   "cameron",
	"nick":  "nicholas",
	"tony":  "anthony",
	"ken":   "kenneth",
	"kenny": "kenneth",
	"dave":  "david",
	"jon":   "jonathan",
	"pat":   "patrick",
	"rob":   "robert",
	"bob":   "robert",
	"will":  "william",
	"bill":  "william",
	"tom":   "thomas",
	"jim":   "james",
	"zach":  "zachary",
	"alex":  "alexander",
}

type Match struct {
	Found      bool    `json:"found"`
	Index      int     `json:"index"`
	Name       string  `json:"name,omitempty"`
	Similarity float64 `json:"similarity"`
	Distance   int     `json:"distance"`
}

// NotFound is the zero-confidence result
var NotFound = Match{Index: -1}

type Matcher struct {
	Threshold float64
}

// New returns a Matcher, using DefaultThreshold for non-positive values.
func New(threshold float64) Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Matcher{Threshold: threshold}
}

// Best returns the candidate most similar to name. Ties go to the smaller
// edit distance, then to the earlier candidate.
func (m Matcher) Best(name string, candidates []string) Match {
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	query := Normalize(name)
	if query == "" {
		return NotFound
	}

	best := NotFound
	for i, candidate := range candidates {
		similarity, distance := Compare(query, Normalize(candidate))
		if !best.Found ||
			similarity > best.Similarity ||
			(similarity == best.Similarity && distance < best.Distance) {
			best = Match{
				Found:      true,
				Index:      i,
				Name:       candidate,
				Similarity: similarity,
				Distance:   distance,
			}
		}
	}

	if !best.Found || best.Similarity < threshold {
		return NotFound
	}
	return best
}

// Normalize lowercases, strips punctuation and suffixes, and expands nicknames.
func Normalize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r) || r == '-':
			return ' '
		default:
			return -1
		}
	}, name)

	tokens := strings.Fields(cleaned)
	out := tokens[:0]
	for i, token := range tokens {
		// only trailing suffixes; a lone "v" could be an initial
		if i > 0 && i == len(tokens)-1 && suffixes[token] {
			continue
		}
		if full, ok := nicknames[token]; ok {
			token = full
		}
		out = append(out, token)
	}
	return strings.Join(out, " ")
}

// Compare scores two normalized names in [0,1] and returns the edit distance
// of the plain comparison.
func Compare(a, b string) (float64, int) {
	distance := Levenshtein(a, b)
	similarity := similarityFromDistance(distance, a, b)

	sortedA, sortedB := sortTokens(a), sortTokens(b)
	if sortedA != a || sortedB != b {
		d := Levenshtein(sortedA, sortedB)
		if s := similarityFromDistance(d, sortedA, sortedB); s > similarity {
			similarity = s
			distance = d
		}
	}

	if similarity < initialSimilarity && isInitialVariation(a, b) {
		similarity = initialSimilarity
	}

	return similarity, distance
}

func similarityFromDistance(distance int, a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(distance)/float64(longest)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// isInitialVariation matches "j chase" to "jamarr chase": same last name and
// every leading token shares its first letter.
func isInitialVariation(a, b string) bool {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) < 2 || len(ta) != len(tb) {
		return false
	}
	last := len(ta) - 1
	if ta[last] != tb[last] {
		return false
	}

	sawInitial := false
	for i := 0; i < last; i++ {
		x, y := ta[i], tb[i]
		if len([]rune(x)) == 1 || len([]rune(y)) == 1 {
			sawInitial = true
			if []rune(x)[0] != []rune(y)[0] {
				return false
			}
		} else if x != y {
			return false
		}
	}
	return sawInitial
}

// Levenshtein returns the rune-wise edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
