package surveylogic

import "survey-backend/internal/inference"

// PremiseInput is the admin payload for a new premise. ID is optional.
type PremiseInput struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Question string                `json:"question"`
	Type     inference.PremiseType `json:"type"`
}

// SubgoalInput is the admin payload for a new subgoal. ID is optional.
type SubgoalInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ConditionInput is one condition of a new rule. Operator defaults to "=="
// and an absent value defaults to true.
type ConditionInput struct {
	PremiseID string             `json:"premiseId"`
	Operator  inference.Operator `json:"operator"`
	Value     inference.Value    `json:"value"`
}

// RuleInput is the admin payload for a new rule. Name defaults to "Rule <n>".
type RuleInput struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Conditions []ConditionInput `json:"conditions"`
	SubgoalID  string           `json:"subgoalId"`
}
