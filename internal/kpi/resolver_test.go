package kpi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := DefaultResolver()

	tests := []struct {
		name         string
		extra        domain.ExtraMetrics
		fallback     *float64
		expectedVal  float64
		expectedType *string
	}{
		{
			name:         "Ação de maior precedência vence mesmo com valor menor",
			extra:        actions(ActionLead, 20.0, ActionConversationStarted, 5.0),
			expectedVal:  5,
			expectedType: stringPtr(ActionConversationStarted),
		},
		{
			name:         "Zero explícito numa ação prioritária vence",
			extra:        actions(ActionConversationStarted, 0.0, ActionLead, 20.0),
			expectedVal:  0,
			expectedType: stringPtr(ActionConversationStarted),
		},
		{
			name:         "Usa a lista de fallback quando nenhuma ação primária existe",
			extra:        actions("link_click", 40.0, ActionLeadGeneration, 4.0),
			expectedVal:  4,
			expectedType: stringPtr(ActionLeadGeneration),
		},
		{
			name:        "Sem ações usa o contador genérico",
			extra:       domain.ExtraMetrics{},
			fallback:    floatPtr(9),
			expectedVal: 9,
		},
		{
			name:        "Contador genérico ausente vira zero",
			extra:       domain.ExtraMetrics{},
			expectedVal: 0,
		},
		{
			name:        "Contador genérico negativo vira zero",
			extra:       domain.ExtraMetrics{},
			fallback:    floatPtr(-3),
			expectedVal: 0,
		},
		{
			name:        "Contador genérico NaN vira zero",
			extra:       domain.ExtraMetrics{},
			fallback:    floatPtr(math.NaN()),
			expectedVal: 0,
		},
		{
			name:         "Valor não numérico conta como ausente",
			extra:        actions(ActionConversationStarted, nil, ActionLead, 3.0),
			expectedVal:  3,
			expectedType: stringPtr(ActionLead),
		},
		{
			name:         "Valor negativo conta como ausente",
			extra:        actions(ActionMessagingConnection, -1.0, ActionFirstReply, 2.0),
			expectedVal:  2,
			expectedType: stringPtr(ActionFirstReply),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolver.Resolve(tt.extra, tt.fallback)

			assert.Equal(t, tt.expectedVal, result.Value)
			assert.Equal(t, tt.expectedType, result.ActionType)
		})
	}
}

func TestResolver_Deterministic(t *testing.T) {
	resolver := DefaultResolver()
	extra := actions(ActionPixelLead, 3.0, ActionOnsiteLead, 8.0)

	first := resolver.Resolve(extra, floatPtr(1))
	second := resolver.Resolve(extra, floatPtr(1))

	assert.Equal(t, first, second)
}

func TestNewResolver_CustomPrecedence(t *testing.T) {
	resolver := NewResolver(Precedence{Primary: []string{ActionLead}})
	extra := actions(ActionConversationStarted, 10.0, ActionLead, 1.0)

	result := resolver.Resolve(extra, nil)

	require.NotNil(t, result.ActionType)
	assert.Equal(t, ActionLead, *result.ActionType)
	assert.Equal(t, 1.0, result.Value)
}

func TestNewResolver_EmptyUsesDefaults(t *testing.T) {
	assert.Equal(t, DefaultPrecedence(), NewResolver(Precedence{}).Precedence())
}

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "Conversões registradas", ActionLabel(nil))
	assert.Equal(t, "Conversas iniciadas", ActionLabel(stringPtr(ActionConversationStarted)))
	assert.Equal(t, "Lead (onsite)", ActionLabel(stringPtr(ActionOnsiteLead)))
	assert.Equal(t, "custom_event", ActionLabel(stringPtr("custom_event")))
}
