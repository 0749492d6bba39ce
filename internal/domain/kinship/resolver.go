// Package kinship resolves how one family member relates to another when both
// are recorded only by their relation to the household head.
package kinship

import (
	"sort"
	"strings"
)

const (
	// Relative is returned whenever no specific relation can be inferred.
	// It is a displayable result, not an error.
	Relative = "relative"
	// Self marks a target that occupies the subject's own role.
	Self = "self"
)

// relationTable maps subject label -> target label -> target's relation to the
// subject. Built once; never mutated after init.
//
// The father/mother/son/daughter/wife/husband rows keep the values of the
// legacy mobile backend. The brother and sister rows were missing their
// spouse and child columns, and the wife/husband rows had no column for their
// own role; those gaps are filled here so every pair of known labels is
// defined in both directions.
var relationTable = map[string]map[string]string{
	"father": {
		"son":      "son",
		"daughter": "daughter",
		"wife":     "wife",
		"husband":  Self,
		"father":   "father",
		"mother":   "mother",
		"brother":  "brother",
		"sister":   "sister",
	},
	"mother": {
		"son":      "son",
		"daughter": "daughter",
		"husband":  "husband",
		"wife":     Self,
		"father":   "father",
		"mother":   "mother",
		"brother":  "brother",
		"sister":   "sister",
	},
	"son": {
		"father":   "father",
		"mother":   "mother",
		"sister":   "sister",
		"brother":  "brother",
		"wife":     "wife",
		"husband":  Self,
		"son":      "son",
		"daughter": "daughter",
	},
	"daughter": {
		"father":   "father",
		"mother":   "mother",
		"sister":   "sister",
		"brother":  "brother",
		"husband":  "husband",
		"wife":     Self,
		"son":      "son",
		"daughter": "daughter",
	},
	"wife": {
		"husband":  "husband",
		"wife":     Self,
		"son":      "son",
		"daughter": "daughter",
		"father":   "father-in-law",
		"mother":   "mother-in-law",
		"brother":  "brother-in-law",
		"sister":   "sister-in-law",
	},
	"husband": {
		"wife":     "wife",
		"husband":  Self,
		"son":      "son",
		"daughter": "daughter",
		"father":   "father-in-law",
		"mother":   "mother-in-law",
		"brother":  "brother-in-law",
		"sister":   "sister-in-law",
	},
	"brother": {
		"brother":  "brother",
		"sister":   "sister",
		"father":   "father",
		"mother":   "mother",
		"wife":     "sister-in-law",
		"husband":  "brother-in-law",
		"son":      "nephew",
		"daughter": "niece",
	},
	"sister": {
		"brother":  "brother",
		"sister":   "sister",
		"father":   "father",
		"mother":   "mother",
		"wife":     "sister-in-law",
		"husband":  "brother-in-law",
		"son":      "nephew",
		"daughter": "niece",
	},
}

// Resolve returns how target relates to subject, given each one's relation to
// the household head. Labels are case-insensitive but otherwise matched
// exactly, so padded labels are unmapped. Any empty input or unmapped pair yields Relative; the function never
// fails and is safe for concurrent use.
func Resolve(subjectRelation, targetRelation string) string {
	from := normalize(subjectRelation)
	to := normalize(targetRelation)
	if from == "" || to == "" {
		return Relative
	}
	row, ok := relationTable[from]
	if !ok {
		return Relative
	}
	if rel, ok := row[to]; ok {
		return rel
	}
	return Relative
}

// ResolvePtr is Resolve for nullable columns; nil behaves like an empty label.
func ResolvePtr(subjectRelation, targetRelation *string) string {
	var from, to string
	if subjectRelation != nil {
		from = *subjectRelation
	}
	if targetRelation != nil {
		to = *targetRelation
	}
	return Resolve(from, to)
}

// Known reports whether label belongs to the vocabulary the table understands.
func Known(label string) bool {
	_, ok := relationTable[normalize(label)]
	return ok
}

// Labels returns the known vocabulary in sorted order.
func Labels() []string {
	labels := make([]string, 0, len(relationTable))
	for label := range relationTable {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func normalize(label string) string {
	return strings.ToLower(label)
}
