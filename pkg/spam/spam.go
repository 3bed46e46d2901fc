// Package spam implements the rule-based content classifier used to
// strip junk entries from the community-editable catalog tables
// (datasets, methods). This is a pure package - classification is
// computation, not I/O; deletion lives in internal/ioclean.
//
// Three layers, any single match classifies:
//
//   - named regex categories (customer service phrasing, phone-number
//     shapes, travel vocabulary, interrogative phrasing, commercial
//     advertising, social URLs, Spanish equivalents);
//   - pairwise combinators that classify on two weaker signals held
//     jointly (question+phone, travel+phone, question+travel), which
//     catches novel variants compositionally;
//   - a structural rule for datasets: empty or catalog-relative
//     homepage and a description that never mentions "dataset".
package spam

import (
	"regexp"
	"strings"
)

// Classifier evaluates the layered rule families over one entity.
// Safe for concurrent use: compiled regexes are read-only.
type Classifier struct {
	rules       []Rule
	combinators map[string]bool
	structural  bool
}

// Record is the classifiable surface of an entity. All text fields
// are matched together, case-insensitively.
type Record struct {
	Name        string
	FullName    string
	Description string

	// Homepage is consulted by the structural rule; HasHomepage marks
	// entity types that carry the field at all (datasets do, methods
	// do not).
	Homepage    string
	HasHomepage bool
}

// Result reports a classification with its audit trail.
type Result struct {
	IsSpam   bool
	Category string
	Pattern  string
}

// Rule is one named category of patterns. New categories are additive
// data: append to DefaultRules and the classifier picks them up.
type Rule struct {
	Category string
	Patterns []*regexp.Regexp
}

// New returns a classifier over the given rule table. An empty
// categories filter enables every rule including the combinators and
// the structural rule; otherwise only the named categories run.
func New(rules []Rule, categories []string) *Classifier {
	all := map[string]bool{
		CategoryQuestionPhone:  true,
		CategoryTravelPhone:    true,
		CategoryQuestionTravel: true,
	}
	if len(categories) == 0 {
		return &Classifier{
			rules:       rules,
			combinators: all,
			structural:  true,
		}
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[strings.TrimSpace(c)] = true
	}

	var filtered []Rule
	for _, r := range rules {
		if wanted[r.Category] {
			filtered = append(filtered, r)
		}
	}
	combinators := make(map[string]bool, len(all))
	for c := range all {
		combinators[c] = wanted[c]
	}
	return &Classifier{
		rules:       filtered,
		combinators: combinators,
		structural:  wanted[CategoryStructural],
	}
}

// Default returns a classifier over DefaultRules restricted to the
// given categories (empty means all).
func Default(categories []string) *Classifier {
	return New(DefaultRules(), categories)
}

// Classify evaluates the rule layers against the record. The first
// matching pattern wins; combinators run after the named categories,
// the structural rule last.
func (c *Classifier) Classify(rec Record) Result {
	if strings.TrimSpace(rec.Name) == "" {
		return Result{}
	}

	text := strings.ToLower(
		rec.Name + " " + rec.Description + " " + rec.FullName)

	for _, rule := range c.rules {
		for _, p := range rule.Patterns {
			if p.MatchString(text) {
				return Result{
					IsSpam:   true,
					Category: rule.Category,
					Pattern:  p.String(),
				}
			}
		}
	}

	if res := c.classifyJointly(text); res.IsSpam {
		return res
	}

	// The keyword check keys on the description alone: slugs often
	// carry "dataset" in the name, which must not shield a junk entry.
	if c.structural && rec.HasHomepage &&
		homepageInvalid(rec.Homepage) &&
		!strings.Contains(strings.ToLower(rec.Description), "dataset") {
		return Result{
			IsSpam:   true,
			Category: CategoryStructural,
			Pattern:  "empty_homepage_no_dataset_mention",
		}
	}

	return Result{}
}

// classifyJointly applies the pairwise combinator rules. Each signal
// alone is too weak to classify ("reservation" appears in genuine
// method descriptions), together they are decisive.
func (c *Classifier) classifyJointly(text string) Result {
	hasQuestion := questionSignal.MatchString(text)
	hasPhone := phoneShape.MatchString(text)
	hasTravel := travelSignal.MatchString(text)

	switch {
	case hasQuestion && hasPhone && c.combinators[CategoryQuestionPhone]:
		return Result{
			IsSpam:   true,
			Category: CategoryQuestionPhone,
			Pattern:  "question_with_phone",
		}
	case hasTravel && hasPhone && c.combinators[CategoryTravelPhone]:
		return Result{
			IsSpam:   true,
			Category: CategoryTravelPhone,
			Pattern:  "travel_with_phone",
		}
	case hasQuestion && hasTravel && c.combinators[CategoryQuestionTravel]:
		return Result{
			IsSpam:   true,
			Category: CategoryQuestionTravel,
			Pattern:  "question_with_travel",
		}
	}
	return Result{}
}

// homepageInvalid reports homepages that cannot point outside the
// catalog: empty, site-relative, or self-referencing.
func homepageInvalid(homepage string) bool {
	h := strings.TrimSpace(homepage)
	if h == "" {
		return true
	}
	if strings.HasPrefix(h, "/") {
		return true
	}
	return strings.HasPrefix(h, "http://paperswithcode.com")
}
