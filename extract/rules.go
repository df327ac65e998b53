// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"regexp"

	"github.com/poiesic/minutes/core"
)

// Pattern categories. Importance cues share names with the decision and
// action cues they overlap with but live in separate rule sets.
const (
	CategoryImportance core.PatternCategory = "importance"
	CategoryEmphasis   core.PatternCategory = "emphasis"
	CategoryAction     core.PatternCategory = "action"
	CategoryDecision   core.PatternCategory = "decision"
	CategoryProblem    core.PatternCategory = "problem"
	CategorySolution   core.PatternCategory = "solution"
	CategoryDeadline   core.PatternCategory = "deadline"
	CategoryBudget     core.PatternCategory = "budget"

	CategoryDecisionVerb core.PatternCategory = "decision_verb"
	CategoryDecisionTerm core.PatternCategory = "decision_term"
	CategoryCommitment   core.PatternCategory = "commitment"
	CategoryApproval     core.PatternCategory = "approval"
	CategoryFinalization core.PatternCategory = "finalization"

	CategoryTask      core.PatternCategory = "task"
	CategoryFollowUp  core.PatternCategory = "follow_up"
	CategoryModal     core.PatternCategory = "modal"
	CategoryTemporal  core.PatternCategory = "temporal"
	CategoryOwnership core.PatternCategory = "ownership"
)

// Rule is one named lexical cue.
type Rule struct {
	Category core.PatternCategory
	Pattern  *regexp.Regexp
	Weight   int
}

// RuleSet is an ordered table of rules. Order is significant: matched
// categories are reported in table order.
type RuleSet []Rule

// Score sums Weight for every occurrence of every rule in text and returns
// the categories that matched at least once.
func (rs RuleSet) Score(text string) (int, []core.PatternCategory) {
	score := 0
	var matched []core.PatternCategory
	for _, rule := range rs {
		hits := rule.Pattern.FindAllStringIndex(text, -1)
		if len(hits) == 0 {
			continue
		}
		score += rule.Weight * len(hits)
		matched = append(matched, rule.Category)
	}
	return score, matched
}

// Matched returns the categories with at least one match, in table order.
func (rs RuleSet) Matched(text string) []core.PatternCategory {
	var matched []core.PatternCategory
	for _, rule := range rs {
		if rule.Pattern.MatchString(text) {
			matched = append(matched, rule.Category)
		}
	}
	return matched
}

// Categories lists the table's categories in order.
func (rs RuleSet) Categories() []core.PatternCategory {
	out := make([]core.PatternCategory, len(rs))
	for i, rule := range rs {
		out[i] = rule.Category
	}
	return out
}

func rule(category core.PatternCategory, pattern string) Rule {
	return Rule{
		Category: category,
		Pattern:  regexp.MustCompile(`(?i)` + pattern),
		Weight:   1,
	}
}

// ImportanceRules scores segments for the important notes list.
var ImportanceRules = RuleSet{
	rule(CategoryImportance, `\b(?:important|crucial|critical|key|essential|vital|significant)\b`),
	rule(CategoryEmphasis, `\b(?:remember|note|highlight|emphasize|stress)\b`),
	rule(CategoryAction, `\b(?:action|todo|task|follow[- ]?up|next steps?)\b`),
	rule(CategoryDecision, `\b(?:decision|decide|agreed?|concluded?)\b`),
	rule(CategoryProblem, `\b(?:problem|issue|concern|challenge|risk)\b`),
	rule(CategorySolution, `\b(?:solution|resolve|fix|address)\b`),
	rule(CategoryDeadline, `\b(?:deadline|due|schedule|timeline)\b`),
	rule(CategoryBudget, `\b(?:budget|cost|price|expense)\b`),
}

// DecisionRules locate sentences that read like a decision.
var DecisionRules = RuleSet{
	rule(CategoryDecisionVerb, `\bwe (?:decided|agreed|concluded|determined)\b`),
	rule(CategoryDecisionTerm, `\b(?:decision|agreed?|concluded?|determined)\b`),
	rule(CategoryCommitment, `\b(?:let's|we'll|we will|we should)\b`),
	rule(CategoryApproval, `\b(?:approved|rejected|accepted|denied)\b`),
	rule(CategoryFinalization, `\b(?:final|finalized|settled|resolved)\b`),
}

// ActionRules flag segments that read like task assignments.
var ActionRules = RuleSet{
	rule(CategoryTask, `\b(?:action|todo|task|assignment)\b`),
	rule(CategoryFollowUp, `\b(?:follow[- ]?up|next steps?)\b`),
	rule(CategoryModal, `\b(?:will|should|need to|have to|must)\b`),
	rule(CategoryTemporal, `\b(?:by|before|until|deadline)\b`),
	rule(CategoryOwnership, `\b(?:responsible|assigned|owner)\b`),
}

// Ordered alternatives; the first pattern with a match wins.
var (
	assigneePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\w+) will\b`),
		regexp.MustCompile(`(?i)\b(\w+) should\b`),
		regexp.MustCompile(`(?i)\bassigned to (\w+)\b`),
		regexp.MustCompile(`(?i)\b(\w+) is responsible\b`),
	}

	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bby (\w+ \d+)\b`),
		regexp.MustCompile(`(?i)\bbefore (\w+ \d+)\b`),
		regexp.MustCompile(`(?i)\buntil (\w+ \d+)\b`),
		regexp.MustCompile(`(?i)\bdeadline (\w+ \d+)\b`),
	}
)

// firstCapture returns the first group of the first pattern that matches.
func firstCapture(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
