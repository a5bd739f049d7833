package domain

import "time"

type PlatformAccount struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	PlatformKey string    `json:"platform_key"`
	ExternalID  string    `json:"external_id"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	UpdatedAt   time.Time `json:"updated_at"`
}
