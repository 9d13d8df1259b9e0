package surveylogic

import "survey-backend/internal/inference"

// sampleLogic is a small rule base: two premises, three subgoals and rules
// mixing single and multi-condition bodies.
func sampleLogic() inference.SurveyLogic {
	return inference.SurveyLogic{
		Premises: []inference.Premise{
			{ID: "p-work", Name: "Bekerja", Question: "Apakah Anda bekerja?", Type: inference.PremiseBoolean},
			{ID: "p-age", Name: "Umur", Question: "Berapa umur Anda?", Type: inference.PremiseNumber},
		},
		Subgoals: []inference.Subgoal{
			{ID: "s-pro", Name: "Profesional", Description: "Paket profesional"},
			{ID: "s-young", Name: "Muda", Description: "Paket muda"},
			{ID: "s-senior", Name: "Senior", Description: "Paket senior"},
		},
		Rules: []inference.Rule{
			{ID: "r1", Name: "Rule 1", SubgoalID: "s-pro", Conditions: []inference.Condition{
				{PremiseID: "p-work", Operator: inference.OpEqual, Value: inference.Bool(true)},
			}},
			{ID: "r2", Name: "Rule 2", SubgoalID: "s-young", Conditions: []inference.Condition{
				{PremiseID: "p-age", Operator: inference.OpLess, Value: inference.Number(25)},
				{PremiseID: "p-work", Operator: inference.OpEqual, Value: inference.Bool(false)},
			}},
			{ID: "r3", Name: "Rule 3", SubgoalID: "s-senior", Conditions: []inference.Condition{
				{PremiseID: "p-age", Operator: inference.OpGreaterEqual, Value: inference.Number(60)},
			}},
		},
	}
}
