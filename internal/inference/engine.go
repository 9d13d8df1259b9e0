package inference

import "strings"

// NoMatchResult is returned when no rule is satisfied.
const NoMatchResult = "Tidak ada hasil yang sesuai"

// Match is one satisfied rule whose subgoal resolved.
type Match struct {
	RuleID      string `json:"ruleId"`
	SubgoalID   string `json:"subgoalId"`
	SubgoalName string `json:"subgoalName"`
}

// RuleTrace records how a single rule was evaluated.
type RuleTrace struct {
	RuleID    string `json:"ruleId"`
	Satisfied bool   `json:"satisfied"`
	// FailedCondition is the index of the condition that stopped the rule, or -1.
	FailedCondition int  `json:"failedCondition"`
	Skipped         int  `json:"skippedConditions"`
	SubgoalFound    bool `json:"subgoalFound"`
}

// Outcome is the result of a forward-chaining pass together with its trace.
type Outcome struct {
	Result  string      `json:"result"`
	Matches []Match     `json:"matches"`
	Rules   []RuleTrace `json:"rules"`
}

// Matched reports whether at least one subgoal was concluded.
func (o Outcome) Matched() bool { return len(o.Matches) > 0 }

// Evaluate runs every rule against the responses and returns the names of the
// concluded subgoals joined by ", " in rule order, or NoMatchResult.
func Evaluate(responses Responses, logic SurveyLogic) string {
	return Run(responses, logic).Result
}

// Run is Evaluate with a per-rule trace. It never fails: conditions on unknown
// premises are skipped and rules concluding unknown subgoals contribute nothing.
func Run(responses Responses, logic SurveyLogic) Outcome {
	out := Outcome{
		Matches: []Match{},
		Rules:   make([]RuleTrace, 0, len(logic.Rules)),
	}
	names := make([]string, 0, len(logic.Rules))

	for _, rule := range logic.Rules {
		trace := evaluateRule(responses, logic, rule)
		if trace.Satisfied {
			if subgoal, ok := logic.FindSubgoal(rule.SubgoalID); ok {
				trace.SubgoalFound = true
				names = append(names, subgoal.Name)
				out.Matches = append(out.Matches, Match{
					RuleID:      rule.ID,
					SubgoalID:   subgoal.ID,
					SubgoalName: subgoal.Name,
				})
			}
		}
		out.Rules = append(out.Rules, trace)
	}

	if len(names) == 0 {
		out.Result = NoMatchResult
	} else {
		out.Result = strings.Join(names, ", ")
	}
	return out
}

func evaluateRule(responses Responses, logic SurveyLogic, rule Rule) RuleTrace {
	trace := RuleTrace{RuleID: rule.ID, Satisfied: true, FailedCondition: -1}
	for i, cond := range rule.Conditions {
		premise, ok := logic.FindPremise(cond.PremiseID)
		if !ok {
			trace.Skipped++
			continue
		}
		if !Holds(responses[premise.ID], cond.Operator, cond.Value) {
			trace.Satisfied = false
			trace.FailedCondition = i
			break
		}
	}
	return trace
}

// Holds compares an answer against an operand. Equality is strict; relational
// operators compare numeric coercions, so any NaN side is false. Unknown
// operators hold.
func Holds(answer Value, op Operator, operand Value) bool {
	switch op {
	case OpEqual:
		return StrictEqual(answer, operand)
	case OpNotEqual:
		return !StrictEqual(answer, operand)
	case OpGreater:
		return ToNumber(answer) > ToNumber(operand)
	case OpLess:
		return ToNumber(answer) < ToNumber(operand)
	case OpGreaterEqual:
		return ToNumber(answer) >= ToNumber(operand)
	case OpLessEqual:
		return ToNumber(answer) <= ToNumber(operand)
	default:
		return true
	}
}
