package domain

import "time"

// SyncResult resume uma sincronização de conta de plataforma
type SyncResult struct {
	PlatformAccountID string        `json:"platform_account_id"`
	Campaigns         int           `json:"campaigns"`
	MetricRows        int64         `json:"metric_rows"`
	BreakdownRows     int64         `json:"breakdown_rows"`
	Batches           int           `json:"batches"`
	Duration          time.Duration `json:"duration"`
}
