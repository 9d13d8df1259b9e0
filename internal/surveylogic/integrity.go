package surveylogic

import (
	"fmt"
	"math"

	"survey-backend/internal/inference"
)

// Cascade reports what a removal took with it.
type Cascade struct {
	RemovedConditions int      `json:"removedConditions"`
	RemovedRules      []string `json:"removedRules"`
}

// removePremise drops the premise and every condition that references it.
// Rules emptied by that are dropped too unless keepEmpty is set. Slices are
// filtered in place, so callers pass a clone.
func removePremise(logic inference.SurveyLogic, premiseID string, keepEmpty bool) (inference.SurveyLogic, Cascade, bool) {
	cascade := Cascade{RemovedRules: []string{}}
	premises := logic.Premises[:0]
	found := false
	for _, p := range logic.Premises {
		if p.ID == premiseID {
			found = true
			continue
		}
		premises = append(premises, p)
	}
	if !found {
		return logic, cascade, false
	}
	logic.Premises = premises

	rules := logic.Rules[:0]
	for _, rule := range logic.Rules {
		kept := rule.Conditions[:0]
		for _, cond := range rule.Conditions {
			if cond.PremiseID == premiseID {
				cascade.RemovedConditions++
				continue
			}
			kept = append(kept, cond)
		}
		emptied := len(kept) == 0 && len(rule.Conditions) > 0
		rule.Conditions = kept
		if emptied && !keepEmpty {
			cascade.RemovedRules = append(cascade.RemovedRules, rule.ID)
			continue
		}
		rules = append(rules, rule)
	}
	logic.Rules = rules
	return logic, cascade, true
}

// removeSubgoal drops the subgoal and every rule concluding it.
func removeSubgoal(logic inference.SurveyLogic, subgoalID string) (inference.SurveyLogic, Cascade, bool) {
	cascade := Cascade{RemovedRules: []string{}}
	subgoals := logic.Subgoals[:0]
	found := false
	for _, s := range logic.Subgoals {
		if s.ID == subgoalID {
			found = true
			continue
		}
		subgoals = append(subgoals, s)
	}
	if !found {
		return logic, cascade, false
	}
	logic.Subgoals = subgoals

	rules := logic.Rules[:0]
	for _, rule := range logic.Rules {
		if rule.SubgoalID == subgoalID {
			cascade.RemovedRules = append(cascade.RemovedRules, rule.ID)
			continue
		}
		rules = append(rules, rule)
	}
	logic.Rules = rules
	return logic, cascade, true
}

func removeRule(logic inference.SurveyLogic, ruleID string) (inference.SurveyLogic, bool) {
	for i, rule := range logic.Rules {
		if rule.ID == ruleID {
			logic.Rules = append(logic.Rules[:i], logic.Rules[i+1:]...)
			return logic, true
		}
	}
	return logic, false
}

// IssueCode classifies an integrity finding.
type IssueCode string

const (
	IssueDuplicateID       IssueCode = "duplicate_id"
	IssueMissingPremise    IssueCode = "missing_premise"
	IssueMissingSubgoal    IssueCode = "missing_subgoal"
	IssueEmptyRule         IssueCode = "empty_rule"
	IssueUnknownOperator   IssueCode = "unknown_operator"
	IssueValueKindMismatch IssueCode = "value_kind_mismatch"
	IssueNonNumericOperand IssueCode = "non_numeric_operand"
)

// Issue is one integrity finding. Condition is the condition index when the
// finding concerns a single condition.
type Issue struct {
	Code      IssueCode `json:"code"`
	RuleID    string    `json:"ruleId,omitempty"`
	Condition *int      `json:"condition,omitempty"`
	Ref       string    `json:"ref,omitempty"`
	Message   string    `json:"message"`
}

// CheckIntegrity lists referential and typing gaps in the rule base. The
// engine tolerates all of them; this is for callers that want to validate
// before surveys go out.
func CheckIntegrity(logic inference.SurveyLogic) []Issue {
	issues := []Issue{}
	issues = append(issues, duplicateIDs("premise", premiseIDs(logic))...)
	issues = append(issues, duplicateIDs("rule", ruleIDs(logic))...)
	issues = append(issues, duplicateIDs("subgoal", subgoalIDs(logic))...)

	for _, rule := range logic.Rules {
		if len(rule.Conditions) == 0 {
			issues = append(issues, Issue{
				Code:    IssueEmptyRule,
				RuleID:  rule.ID,
				Message: "rule has no conditions and always matches",
			})
		}
		if _, ok := logic.FindSubgoal(rule.SubgoalID); !ok {
			issues = append(issues, Issue{
				Code:    IssueMissingSubgoal,
				RuleID:  rule.ID,
				Ref:     rule.SubgoalID,
				Message: "rule concludes an unknown subgoal and never contributes",
			})
		}
		for i, cond := range rule.Conditions {
			idx := i
			premise, ok := logic.FindPremise(cond.PremiseID)
			if !ok {
				issues = append(issues, Issue{
					Code:      IssueMissingPremise,
					RuleID:    rule.ID,
					Condition: &idx,
					Ref:       cond.PremiseID,
					Message:   "condition references an unknown premise and is skipped",
				})
				continue
			}
			switch {
			case !cond.Operator.Valid():
				issues = append(issues, Issue{
					Code:      IssueUnknownOperator,
					RuleID:    rule.ID,
					Condition: &idx,
					Ref:       string(cond.Operator),
					Message:   "unknown operator always holds",
				})
			case cond.Operator == inference.OpEqual || cond.Operator == inference.OpNotEqual:
				if cond.Value.Kind() != premise.Type.Kind() {
					issues = append(issues, Issue{
						Code:      IssueValueKindMismatch,
						RuleID:    rule.ID,
						Condition: &idx,
						Ref:       premise.ID,
						Message:   fmt.Sprintf("%s premise compared with a %s value", premise.Type, cond.Value.Kind()),
					})
				}
			default:
				if math.IsNaN(inference.ToNumber(cond.Value)) {
					issues = append(issues, Issue{
						Code:      IssueNonNumericOperand,
						RuleID:    rule.ID,
						Condition: &idx,
						Ref:       premise.ID,
						Message:   "relational operand is not numeric; condition never holds",
					})
				}
			}
		}
	}
	return issues
}

func duplicateIDs(kind string, ids []string) []Issue {
	var issues []Issue
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			issues = append(issues, Issue{
				Code:    IssueDuplicateID,
				Ref:     id,
				Message: fmt.Sprintf("%s id %q is used more than once; only the first is resolved", kind, id),
			})
		}
	}
	return issues
}

func premiseIDs(logic inference.SurveyLogic) []string {
	out := make([]string, 0, len(logic.Premises))
	for _, p := range logic.Premises {
		out = append(out, p.ID)
	}
	return out
}

func ruleIDs(logic inference.SurveyLogic) []string {
	out := make([]string, 0, len(logic.Rules))
	for _, r := range logic.Rules {
		out = append(out, r.ID)
	}
	return out
}

func subgoalIDs(logic inference.SurveyLogic) []string {
	out := make([]string, 0, len(logic.Subgoals))
	for _, s := range logic.Subgoals {
		out = append(out, s.ID)
	}
	return out
}
