package kpi

import (
	"strings"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

// ObjectiveRule associa trechos do objetivo da plataforma a um rótulo de resultado
type ObjectiveRule struct {
	Contains []string
	Label    domain.ResultLabel
}

// DefaultObjectiveRules cobre as taxonomias antigas (LEAD_GENERATION, POST_ENGAGEMENT...)
// e novas (OUTCOME_*) da Meta. A ordem importa.
func DefaultObjectiveRules() []ObjectiveRule {
	return []ObjectiveRule{
		{Contains: []string{"LEAD"}, Label: domain.ResultLabelLeads},
		{Contains: []string{"MESSAGE"}, Label: domain.ResultLabelConversas},
		{Contains: []string{"LINK_CLICKS", "TRAFFIC"}, Label: domain.ResultLabelCliques},
		{Contains: []string{"ENGAGEMENT"}, Label: domain.ResultLabelEngajamentos},
		{Contains: []string{"VIDEO_VIEWS"}, Label: domain.ResultLabelViews},
		{Contains: []string{"SALES", "PURCHASE", "CONVERSIONS"}, Label: domain.ResultLabelCompras},
	}
}

type Classifier struct {
	rules []ObjectiveRule
}

func NewClassifier(rules []ObjectiveRule) *Classifier {
	normalized := make([]ObjectiveRule, 0, len(rules))
	for _, rule := range rules {
		tokens := make([]string, 0, len(rule.Contains))
		for _, token := range rule.Contains {
			if token = strings.ToUpper(strings.TrimSpace(token)); token != "" {
				tokens = append(tokens, token)
			}
		}
		normalized = append(normalized, ObjectiveRule{Contains: tokens, Label: rule.Label})
	}

	return &Classifier{rules: normalized}
}

func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultObjectiveRules())
}

// Classify nunca falha: objetivos desconhecidos ou vazios viram Resultados
func (c *Classifier) Classify(objective string) domain.ResultLabel {
	normalized := strings.ToUpper(strings.TrimSpace(objective))
	if normalized == "" {
		return domain.ResultLabelResultados
	}

	for _, rule := range c.rules {
		for _, token := range rule.Contains {
			if strings.Contains(normalized, token) {
				return rule.Label
			}
		}
	}

	return domain.ResultLabelResultados
}

// ClassifyForPlatform usa Cliques para Google Ads quando o objetivo não é reconhecido
func (c *Classifier) ClassifyForPlatform(objective, platformKey string) domain.ResultLabel {
	label := c.Classify(objective)
	if label == domain.ResultLabelResultados && platformKey == domain.PlatformGoogleAds {
		return domain.ResultLabelCliques
	}
	return label
}

func (c *Classifier) IsSales(objective string) bool {
	return c.Classify(objective) == domain.ResultLabelCompras
}
