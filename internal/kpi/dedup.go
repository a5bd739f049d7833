package kpi

import (
	"time"

	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
)

// keyPart distingue um campo ausente de qualquer valor presente, inclusive string vazia
type keyPart struct {
	value   string
	present bool
}

func partOf(value *string) keyPart {
	if value == nil {
		return keyPart{}
	}
	return keyPart{value: *value, present: true}
}

// identityKey identifica um fato lógico: (metric_date, breakdown_value_key, granularity, ad_set_id, ad_id)
type identityKey struct {
	metricDate        string
	breakdownValueKey keyPart
	granularity       keyPart
	adSetID           keyPart
	adID              keyPart
}

func identityOf(row domain.RawMetricRow) identityKey {
	granularity := keyPart{}
	if row.Granularity != nil {
		granularity = keyPart{value: string(*row.Granularity), present: true}
	}

	return identityKey{
		metricDate:        row.MetricDate.Format(time.DateOnly),
		breakdownValueKey: partOf(row.BreakdownValueKey),
		granularity:       granularity,
		adSetID:           partOf(row.AdSetID),
		adID:              partOf(row.AdID),
	}
}

// DeduplicateBreakdowns mantém uma linha por identidade, a de synced_at mais recente.
// Sem synced_at nos dois lados, vence a que aparece depois na entrada.
// A saída segue a ordem da primeira ocorrência de cada identidade.
func DeduplicateBreakdowns(rows []domain.RawMetricRow) []domain.RawMetricRow {
	result := make([]domain.RawMetricRow, 0, len(rows))
	positions := make(map[identityKey]int, len(rows))

	for _, row := range rows {
		key := identityOf(row)

		pos, seen := positions[key]
		if !seen {
			positions[key] = len(result)
			result = append(result, row)
			continue
		}

		if supersedes(row, result[pos]) {
			result[pos] = row
		}
	}

	return result
}

// supersedes assume que candidate aparece depois de current na entrada
func supersedes(candidate, current domain.RawMetricRow) bool {
	switch {
	case candidate.SyncedAt == nil && current.SyncedAt == nil:
		return true
	case candidate.SyncedAt == nil:
		return false
	case current.SyncedAt == nil:
		return true
	default:
		return !candidate.SyncedAt.Before(*current.SyncedAt)
	}
}

type entityKey struct {
	workspaceID       string
	platformAccountID string
	campaignID        keyPart
}

// DeduplicateByEntity aplica DeduplicateBreakdowns separadamente para cada
// (workspace, conta, campanha), já que a identidade do fato não inclui a campanha.
func DeduplicateByEntity(rows []domain.RawMetricRow) []domain.RawMetricRow {
	partitions := make(map[entityKey][]domain.RawMetricRow)
	order := make([]entityKey, 0)

	for _, row := range rows {
		key := entityKey{
			workspaceID:       row.WorkspaceID,
			platformAccountID: row.PlatformAccountID,
			campaignID:        partOf(row.CampaignID),
		}

		if _, ok := partitions[key]; !ok {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], row)
	}

	result := make([]domain.RawMetricRow, 0, len(rows))
	for _, key := range order {
		result = append(result, DeduplicateBreakdowns(partitions[key])...)
	}

	return result
}
