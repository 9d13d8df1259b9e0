package surveylogic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"survey-backend/internal/inference"
	"survey-backend/internal/shared/metrics"
	"survey-backend/internal/shared/telemetry"
)

// Service owns the rule base. Writes are load, mutate, save under one mutex;
// across processes the last write wins.
type Service struct {
	Repo Repo
	// KeepEmptyRules keeps a rule whose last condition went away with a
	// deleted premise instead of deleting it. Such a rule always matches.
	KeepEmptyRules bool

	mu sync.Mutex
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("survey logic service not configured")
	}
	return nil
}

// Get returns a copy of the current rule base.
func (s *Service) Get(ctx context.Context) (inference.SurveyLogic, error) {
	if err := s.ready(); err != nil {
		return inference.SurveyLogic{}, err
	}
	logic, err := s.Repo.Load(ctx)
	if err != nil {
		return inference.SurveyLogic{}, fmt.Errorf("load survey logic: %w", err)
	}
	return logic.Clone(), nil
}

// Replace validates and stores a whole rule base.
func (s *Service) Replace(ctx context.Context, logic inference.SurveyLogic) (inference.SurveyLogic, error) {
	if err := s.ready(); err != nil {
		return inference.SurveyLogic{}, err
	}
	if err := validateLogic(logic); err != nil {
		return inference.SurveyLogic{}, err
	}
	return s.update(ctx, "replace", func(current *inference.SurveyLogic) error {
		*current = logic.Clone()
		return nil
	})
}

// AddPremise appends a premise. Name and question are required; the type
// defaults to boolean.
func (s *Service) AddPremise(ctx context.Context, in PremiseInput) (inference.Premise, error) {
	if err := s.ready(); err != nil {
		return inference.Premise{}, err
	}
	premise := inference.Premise{
		ID:       strings.TrimSpace(in.ID),
		Name:     strings.TrimSpace(in.Name),
		Question: strings.TrimSpace(in.Question),
		Type:     in.Type,
	}
	if premise.Type == "" {
		premise.Type = inference.PremiseBoolean
	}
	if premise.Name == "" || premise.Question == "" {
		return inference.Premise{}, fmt.Errorf("%w: name and question are required", ErrInvalidInput)
	}
	if !premise.Type.Valid() {
		return inference.Premise{}, fmt.Errorf("%w: unknown premise type %q", ErrInvalidInput, premise.Type)
	}

	_, err := s.update(ctx, "add_premise", func(logic *inference.SurveyLogic) error {
		if premise.ID == "" {
			premise.ID = newID("premise")
		} else if _, exists := logic.FindPremise(premise.ID); exists {
			return fmt.Errorf("%w: premise %q already exists", ErrConflict, premise.ID)
		}
		logic.Premises = append(logic.Premises, premise)
		return nil
	})
	if err != nil {
		return inference.Premise{}, err
	}
	return premise, nil
}

// RemovePremise deletes a premise together with the conditions that
// reference it, and the rules those conditions leave empty.
func (s *Service) RemovePremise(ctx context.Context, premiseID string) (Cascade, error) {
	if err := s.ready(); err != nil {
		return Cascade{}, err
	}
	var cascade Cascade
	_, err := s.update(ctx, "remove_premise", func(logic *inference.SurveyLogic) error {
		next, c, found := removePremise(*logic, premiseID, s.KeepEmptyRules)
		if !found {
			return fmt.Errorf("%w: premise %q", ErrNotFound, premiseID)
		}
		*logic = next
		cascade = c
		return nil
	})
	return cascade, err
}

// AddSubgoal appends a subgoal. Name and description are required.
func (s *Service) AddSubgoal(ctx context.Context, in SubgoalInput) (inference.Subgoal, error) {
	if err := s.ready(); err != nil {
		return inference.Subgoal{}, err
	}
	subgoal := inference.Subgoal{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if subgoal.Name == "" || subgoal.Description == "" {
		return inference.Subgoal{}, fmt.Errorf("%w: name and description are required", ErrInvalidInput)
	}

	_, err := s.update(ctx, "add_subgoal", func(logic *inference.SurveyLogic) error {
		if subgoal.ID == "" {
			subgoal.ID = newID("subgoal")
		} else if _, exists := logic.FindSubgoal(subgoal.ID); exists {
			return fmt.Errorf("%w: subgoal %q already exists", ErrConflict, subgoal.ID)
		}
		logic.Subgoals = append(logic.Subgoals, subgoal)
		return nil
	})
	if err != nil {
		return inference.Subgoal{}, err
	}
	return subgoal, nil
}

// RemoveSubgoal deletes a subgoal and every rule that concludes it.
func (s *Service) RemoveSubgoal(ctx context.Context, subgoalID string) (Cascade, error) {
	if err := s.ready(); err != nil {
		return Cascade{}, err
	}
	var cascade Cascade
	_, err := s.update(ctx, "remove_subgoal", func(logic *inference.SurveyLogic) error {
		next, c, found := removeSubgoal(*logic, subgoalID)
		if !found {
			return fmt.Errorf("%w: subgoal %q", ErrNotFound, subgoalID)
		}
		*logic = next
		cascade = c
		return nil
	})
	return cascade, err
}

// AddRule appends a rule. It needs at least one condition, and every
// referenced premise and the subgoal must exist when the rule is created.
func (s *Service) AddRule(ctx context.Context, in RuleInput) (inference.Rule, error) {
	if err := s.ready(); err != nil {
		return inference.Rule{}, err
	}
	if len(in.Conditions) == 0 {
		return inference.Rule{}, fmt.Errorf("%w: at least one condition is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.SubgoalID) == "" {
		return inference.Rule{}, fmt.Errorf("%w: subgoal is required", ErrInvalidInput)
	}

	rule := inference.Rule{
		ID:         strings.TrimSpace(in.ID),
		Name:       strings.TrimSpace(in.Name),
		SubgoalID:  strings.TrimSpace(in.SubgoalID),
		Conditions: make([]inference.Condition, 0, len(in.Conditions)),
	}
	for i, c := range in.Conditions {
		cond := inference.Condition{
			PremiseID: strings.TrimSpace(c.PremiseID),
			Operator:  c.Operator,
			Value:     c.Value,
		}
		if cond.Operator == "" {
			cond.Operator = inference.OpEqual
		}
		if !cond.Operator.Valid() {
			return inference.Rule{}, fmt.Errorf("%w: condition %d has unknown operator %q", ErrInvalidInput, i, c.Operator)
		}
		if cond.Value.IsAbsent() {
			cond.Value = inference.Bool(true)
		}
		rule.Conditions = append(rule.Conditions, cond)
	}

	_, err := s.update(ctx, "add_rule", func(logic *inference.SurveyLogic) error {
		if _, ok := logic.FindSubgoal(rule.SubgoalID); !ok {
			return fmt.Errorf("%w: unknown subgoal %q", ErrInvalidInput, rule.SubgoalID)
		}
		for i, cond := range rule.Conditions {
			if _, ok := logic.FindPremise(cond.PremiseID); !ok {
				return fmt.Errorf("%w: condition %d references unknown premise %q", ErrInvalidInput, i, cond.PremiseID)
			}
		}
		if rule.ID == "" {
			rule.ID = newID("rule")
		} else {
			for _, existing := range logic.Rules {
				if existing.ID == rule.ID {
					return fmt.Errorf("%w: rule %q already exists", ErrConflict, rule.ID)
				}
			}
		}
		if rule.Name == "" {
			rule.Name = fmt.Sprintf("Rule %d", len(logic.Rules)+1)
		}
		logic.Rules = append(logic.Rules, rule)
		return nil
	})
	if err != nil {
		return inference.Rule{}, err
	}
	return rule, nil
}

// RemoveRule deletes a single rule.
func (s *Service) RemoveRule(ctx context.Context, ruleID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.update(ctx, "remove_rule", func(logic *inference.SurveyLogic) error {
		next, found := removeRule(*logic, ruleID)
		if !found {
			return fmt.Errorf("%w: rule %q", ErrNotFound, ruleID)
		}
		*logic = next
		return nil
	})
	return err
}

// Check reports integrity gaps in the stored rule base.
func (s *Service) Check(ctx context.Context) ([]Issue, error) {
	logic, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return CheckIntegrity(logic), nil
}

// Preview evaluates responses against the stored rule base without recording anything.
func (s *Service) Preview(ctx context.Context, responses inference.Responses) (inference.Outcome, error) {
	logic, err := s.Get(ctx)
	if err != nil {
		return inference.Outcome{}, err
	}
	return inference.Run(responses, logic), nil
}

func (s *Service) update(ctx context.Context, op string, mutate func(*inference.SurveyLogic) error) (inference.SurveyLogic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Repo.Load(ctx)
	if err != nil {
		return inference.SurveyLogic{}, fmt.Errorf("load survey logic: %w", err)
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return inference.SurveyLogic{}, err
	}
	next = next.Clone()
	if err := s.Repo.Save(ctx, next); err != nil {
		return inference.SurveyLogic{}, fmt.Errorf("save survey logic: %w", err)
	}

	metrics.IncLogicMutation(op)
	telemetry.Info("logic.updated", map[string]any{
		"op":       op,
		"premises": len(next.Premises),
		"rules":    len(next.Rules),
		"subgoals": len(next.Subgoals),
	})
	return next, nil
}

func validateLogic(logic inference.SurveyLogic) error {
	seen := map[string]struct{}{}
	for _, p := range logic.Premises {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Question) == "" {
			return fmt.Errorf("%w: premises need id, name and question", ErrInvalidInput)
		}
		if !p.Type.Valid() {
			return fmt.Errorf("%w: premise %q has unknown type %q", ErrInvalidInput, p.ID, p.Type)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate premise id %q", ErrConflict, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	seen = map[string]struct{}{}
	for _, sg := range logic.Subgoals {
		if strings.TrimSpace(sg.ID) == "" || strings.TrimSpace(sg.Name) == "" {
			return fmt.Errorf("%w: subgoals need id and name", ErrInvalidInput)
		}
		if _, dup := seen[sg.ID]; dup {
			return fmt.Errorf("%w: duplicate subgoal id %q", ErrConflict, sg.ID)
		}
		seen[sg.ID] = struct{}{}
	}

	seen = map[string]struct{}{}
	for _, r := range logic.Rules {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("%w: rules need an id", ErrInvalidInput)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate rule id %q", ErrConflict, r.ID)
		}
		seen[r.ID] = struct{}{}
		for i, c := range r.Conditions {
			if !c.Operator.Valid() {
				return fmt.Errorf("%w: rule %q condition %d has unknown operator %q", ErrInvalidInput, r.ID, i, c.Operator)
			}
		}
	}
	return nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
