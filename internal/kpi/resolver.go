package kpi

import (
	"math"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

const (
	ActionConversationStarted = "onsite_conversion.messaging_conversation_started_7d"
	ActionMessagingConnection = "onsite_conversion.total_messaging_connection"
	ActionFirstReply          = "onsite_conversion.messaging_first_reply"
	ActionPixelLead           = "offsite_conversion.fb_pixel_lead"
	ActionLead                = "lead"
	ActionOmniPurchase        = "omni_purchase"
	ActionConversion          = "action.conversion"
	ActionLeadGeneration      = "lead_generation"
	ActionOnsiteLead          = "onsite_conversion.lead"
	ActionPurchase            = "purchase"
	ActionPixelPurchase       = "offsite_conversion.fb_pixel_purchase"
)

// Precedence define a ordem em que os tipos de ação são considerados como resultado principal
type Precedence struct {
	Primary  []string
	Fallback []string
}

func DefaultPrecedence() Precedence {
	return Precedence{
		Primary: []string{
			ActionConversationStarted,
			ActionMessagingConnection,
			ActionFirstReply,
			ActionPixelLead,
			ActionLead,
			ActionOmniPurchase,
		},
		Fallback: []string{
			ActionConversion,
			ActionLeadGeneration,
			ActionOnsiteLead,
		},
	}
}

type Resolver struct {
	precedence Precedence
}

// NewResolver usa DefaultPrecedence quando as duas listas vierem vazias
func NewResolver(precedence Precedence) *Resolver {
	if len(precedence.Primary) == 0 && len(precedence.Fallback) == 0 {
		precedence = DefaultPrecedence()
	}

	return &Resolver{
		precedence: Precedence{
			Primary:  append([]string(nil), precedence.Primary...),
			Fallback: append([]string(nil), precedence.Fallback...),
		},
	}
}

func DefaultResolver() *Resolver {
	return NewResolver(DefaultPrecedence())
}

func (r *Resolver) Precedence() Precedence {
	return Precedence{
		Primary:  append([]string(nil), r.precedence.Primary...),
		Fallback: append([]string(nil), r.precedence.Fallback...),
	}
}

// Resolve escolhe o resultado principal da linha. A presença da ação decide, não a magnitude:
// um zero explícito numa ação prioritária ganha de um valor maior numa ação posterior.
func (r *Resolver) Resolve(extra domain.ExtraMetrics, fallbackGenericCount *float64) domain.ResolvedConversion {
	if resolved, ok := firstPresentAction(extra, r.precedence.Primary); ok {
		return resolved
	}

	if resolved, ok := firstPresentAction(extra, r.precedence.Fallback); ok {
		return resolved
	}

	return domain.ResolvedConversion{Value: nonNegative(fallbackGenericCount)}
}

func firstPresentAction(extra domain.ExtraMetrics, candidates []string) (domain.ResolvedConversion, bool) {
	for _, actionType := range candidates {
		value := ActionValue(extra, actionType)
		if value == nil || *value < 0 {
			continue
		}

		matched := actionType
		return domain.ResolvedConversion{Value: *value, ActionType: &matched}, true
	}

	return domain.ResolvedConversion{}, false
}

func nonNegative(value *float64) float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) || *value < 0 {
		return 0
	}
	return *value
}
