package kpi

const genericConversionLabel = "Conversões registradas"

var actionLabels = map[string]string{
	ActionConversationStarted: "Conversas iniciadas",
	ActionMessagingConnection: "Conexões de mensagem",
	ActionFirstReply:          "Primeira resposta em mensagem",
	ActionPixelLead:           "Lead (pixel)",
	ActionLead:                "Lead",
	ActionOmniPurchase:        "Compra",
	ActionConversion:          "Conversões (padrão)",
	ActionLeadGeneration:      "Geração de leads",
	ActionOnsiteLead:          "Lead (onsite)",
}

// ActionLabel devolve o nome exibido para o tipo de ação; tipos sem rótulo são exibidos como vieram
func ActionLabel(actionType *string) string {
	if actionType == nil {
		return genericConversionLabel
	}

	if label, ok := actionLabels[*actionType]; ok {
		return label
	}
	return *actionType
}
