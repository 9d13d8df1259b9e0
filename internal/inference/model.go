package inference

// PremiseType declares how the answer to a premise is entered and compared.
type PremiseType string

const (
	PremiseBoolean PremiseType = "boolean"
	PremiseText    PremiseType = "text"
	PremiseNumber  PremiseType = "number"
)

// Valid reports whether t is one of the known premise types.
func (t PremiseType) Valid() bool {
	switch t {
	case PremiseBoolean, PremiseText, PremiseNumber:
		return true
	default:
		return false
	}
}

// Operator compares a response against a condition operand.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
)

// Valid reports whether op is one of the six comparison operators.
func (op Operator) Valid() bool {
	switch op {
	case OpEqual, OpNotEqual, OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return true
	default:
		return false
	}
}

// Premise is a question end users answer.
type Premise struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Question string      `json:"question"`
	Type     PremiseType `json:"type"`
}

// Subgoal is a recommendation a rule can conclude.
type Subgoal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Condition is one clause of a rule antecedent. PremiseID is resolved against
// the rule base on every evaluation.
type Condition struct {
	PremiseID string   `json:"premiseId"`
	Operator  Operator `json:"operator"`
	Value     Value    `json:"value"`
}

// Rule concludes SubgoalID when every condition holds.
type Rule struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Conditions []Condition `json:"conditions"`
	SubgoalID  string      `json:"subgoalId"`
}

// SurveyLogic is the full rule base.
type SurveyLogic struct {
	Premises []Premise `json:"premises"`
	Rules    []Rule    `json:"rules"`
	Subgoals []Subgoal `json:"subgoals"`
}

// Responses maps premise ids to answers. A missing key reads as an absent value.
type Responses map[string]Value

// Clone returns a deep copy with non-nil slices, so the copy always
// serializes as `{"premises":[],"rules":[],"subgoals":[]}` and callers can
// mutate it freely.
func (l SurveyLogic) Clone() SurveyLogic {
	out := SurveyLogic{
		Premises: make([]Premise, len(l.Premises)),
		Rules:    make([]Rule, len(l.Rules)),
		Subgoals: make([]Subgoal, len(l.Subgoals)),
	}
	copy(out.Premises, l.Premises)
	copy(out.Subgoals, l.Subgoals)
	for i, rule := range l.Rules {
		conds := make([]Condition, len(rule.Conditions))
		copy(conds, rule.Conditions)
		rule.Conditions = conds
		out.Rules[i] = rule
	}
	return out
}

// FindPremise returns the first premise with the given id.
func (l SurveyLogic) FindPremise(id string) (Premise, bool) {
	for _, p := range l.Premises {
		if p.ID == id {
			return p, true
		}
	}
	return Premise{}, false
}

// FindSubgoal returns the first subgoal with the given id.
func (l SurveyLogic) FindSubgoal(id string) (Subgoal, bool) {
	for _, s := range l.Subgoals {
		if s.ID == id {
			return s, true
		}
	}
	return Subgoal{}, false
}
