package exporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

var reportHeader = []string{
	"Campanha",
	"Objetivo",
	"Tipo de resultado",
	"Ação principal",
	"Resultados",
	"Investimento",
	"Custo por resultado",
	"Receita",
	"ROAS",
	"Impressões",
	"Cliques",
	"CTR",
	"CPC",
	"CPM",
}

func (f *brazilianFormatter) row(kpi domain.AggregatedKPI) []string {
	objective := notAvailable
	if kpi.Objective != nil {
		objective = *kpi.Objective
	}

	return []string{
		kpi.EntityID,
		objective,
		string(kpi.ResultLabel),
		kpi.PrimaryActionLabel,
		f.Decimal(kpi.ResultValue),
		f.Currency(kpi.Spend),
		f.OptionalCurrency(kpi.CostPerResult),
		f.OptionalCurrency(kpi.Revenue),
		f.Roas(kpi.Roas),
		f.Integer(kpi.Impressions),
		f.Integer(kpi.Clicks),
		f.Percent(kpi.CTR),
		f.OptionalCurrency(kpi.CPC),
		f.OptionalCurrency(kpi.CPM),
	}
}

// renderCSV usa ";" como separador porque a vírgula é o separador decimal em pt-BR
func renderCSV(kpis []domain.AggregatedKPI) ([]byte, error) {
	formatter := newBrazilianFormatter()

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	writer.Comma = ';'

	if err := writer.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho do CSV: %w", err)
	}
	for _, kpi := range kpis {
		if err := writer.Write(formatter.row(kpi)); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha do CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("erro ao gerar CSV: %w", err)
	}

	return buffer.Bytes(), nil
}

func renderMarkdown(kpis []domain.AggregatedKPI, summary domain.KPISummary, filters domain.KPIFilters) []byte {
	formatter := newBrazilianFormatter()

	var b strings.Builder
	fmt.Fprintf(&b, "# Relatório de KPIs\n\n")
	fmt.Fprintf(&b, "- Workspace: %s\n", filters.WorkspaceID)
	fmt.Fprintf(&b, "- Plataforma: %s\n", filters.PlatformKey)
	fmt.Fprintf(&b, "- Período: %s a %s\n\n",
		filters.StartDate.Format("02/01/2006"), filters.EndDate.Format("02/01/2006"))

	fmt.Fprintf(&b, "## Resumo\n\n")
	fmt.Fprintf(&b, "| Investimento | %s | Custo médio por resultado | ROAS médio |\n", summary.ResultLabel)
	fmt.Fprintf(&b, "| --- | --- | --- | --- |\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		formatter.Currency(summary.TotalSpend),
		formatter.Decimal(summary.TotalResults),
		formatter.OptionalCurrency(summary.AvgCostPerResult),
		formatter.Roas(summary.AvgRoas),
	)

	fmt.Fprintf(&b, "## Campanhas\n\n")
	b.WriteString(markdownRow(reportHeader))
	separator := make([]string, len(reportHeader))
	for i := range separator {
		separator[i] = "---"
	}
	b.WriteString(markdownRow(separator))

	for _, kpi := range kpis {
		b.WriteString(markdownRow(formatter.row(kpi)))
	}

	return []byte(b.String())
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(cell, "|", "\\|")
	}
	return "| " + strings.Join(escaped, " | ") + " |\n"
}
