package search

import (
	"strings"

	"github.com/ani232003/IRCTC/internal/model"
)

// ─── Train Type Derivation ──────────────────────────────────

// typeRule maps name keywords to a train type label. Rules are evaluated
// in order and the first keyword hit wins, so SHATABDI must come before
// EXPRESS or "SHATABDI EXPRESS" would classify as EXPRESS.
type typeRule struct {
	keywords []string
	label    model.TrainType
}

var typeRules = []typeRule{
	{[]string{"SHATABDI"}, model.TypeShatabdi},
	{[]string{"TEJAS"}, model.TypeTejas},
	{[]string{"VANDE BHARAT", "VANDE"}, model.TypeVandeBharat},
	{[]string{"RAJDHANI"}, model.TypeRajdhani},
	{[]string{"MAIL"}, model.TypeMail},
	{[]string{"EXPRESS"}, model.TypeExpress},
}

// DeriveTrainType classifies a train by its name (case-insensitive).
// Names matching no rule classify as OTHER.
func DeriveTrainType(trainName string) model.TrainType {
	name := strings.ToUpper(trainName)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.label
			}
		}
	}
	return model.TypeOther
}

// TrainTypes returns the distinct type labels present in the given trains,
// in first-seen order. Used to build the train-type facet for a route.
func TrainTypes(trains []model.Train) []model.TrainType {
	seen := make(map[model.TrainType]bool)
	var types []model.TrainType
	for i := range trains {
		tt := DeriveTrainType(trains[i].TrainName)
		if !seen[tt] {
			seen[tt] = true
			types = append(types, tt)
		}
	}
	return types
}
