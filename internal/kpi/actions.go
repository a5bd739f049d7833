package kpi

import "github.com/vfg2006/traffic-manager-kpi/internal/domain"

// ActionValue retorna a contagem da primeira ação do tipo informado em actions.
// nil significa ausente ou não numérico; zero significa presente com valor zero.
func ActionValue(extra domain.ExtraMetrics, actionType string) *float64 {
	return findAction(extra.Actions, actionType)
}

// ActionAmount faz a mesma busca em action_values (valor monetário da ação)
func ActionAmount(extra domain.ExtraMetrics, actionType string) *float64 {
	return findAction(extra.ActionValues, actionType)
}

func findAction(entries []domain.ActionEntry, actionType string) *float64 {
	for _, entry := range entries {
		if entry.ActionType != actionType {
			continue
		}

		if entry.Value == nil {
			return nil
		}
		return domain.FiniteOrNil(*entry.Value)
	}

	return nil
}

func ConversationMetrics(extra domain.ExtraMetrics) domain.ConversationMetrics {
	return domain.ConversationMetrics{
		Started:     ActionValue(extra, ActionConversationStarted),
		Connections: ActionValue(extra, ActionMessagingConnection),
	}
}
