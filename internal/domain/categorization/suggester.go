// Package categorization suggests balancing accounts for imported
// transactions: keyword rules are matched over the raw statement description
// with Aho-Corasick, and free-text account hints are resolved against real
// account names with fuzzy matching.
package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Rule maps a keyword found in a statement description to the name of a
// balancing account, e.g. {"TESCO", "Groceries"}.
type Rule struct {
	Keyword     string
	AccountName string
}

// Suggester matches all rule keywords in one pass over a description.
// Time is O(text + matches) regardless of the number of rules.
type Suggester struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	rules    []Rule
}

// NewSuggester builds the matcher from the rule set. Keywords are matched
// case-insensitively; empty keywords are dropped.
func NewSuggester(rules []Rule) *Suggester {
	s := &Suggester{}
	for _, rule := range rules {
		keyword := strings.ToUpper(strings.TrimSpace(rule.Keyword))
		if keyword == "" {
			continue
		}
		s.keywords = append(s.keywords, keyword)
		s.rules = append(s.rules, Rule{Keyword: keyword, AccountName: rule.AccountName})
	}
	if len(s.keywords) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(s.keywords)
	}
	return s
}

// Suggest returns the balancing account for a description. When several
// keywords hit, the longest one wins: "TESCO PETROL" should beat "TESCO".
func (s *Suggester) Suggest(description string) (string, bool) {
	if s.matcher == nil {
		return "", false
	}
	hits := s.matcher.Match([]byte(strings.ToUpper(description)))
	if len(hits) == 0 {
		return "", false
	}

	best := -1
	for _, idx := range hits {
		if best == -1 || len(s.keywords[idx]) > len(s.keywords[best]) {
			best = idx
		}
	}
	return s.rules[best].AccountName, true
}

// ResolveAccountName maps a free-text hint to one of the given account
// names: exact case-insensitive match first, then the closest fuzzy match.
// Ambiguity resolves to the best-ranked candidate; no candidate at all
// returns ok=false rather than guessing.
func ResolveAccountName(hint string, accounts []string) (string, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", false
	}

	for _, name := range accounts {
		if strings.EqualFold(name, hint) {
			return name, true
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(hint, accounts)
	if len(ranks) == 0 {
		return "", false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target, true
}
