package domain

import "time"

const CampaignStatusActive = "ACTIVE"

type Campaign struct {
	ID                string    `json:"id"`
	PlatformAccountID string    `json:"platform_account_id"`
	ExternalID        string    `json:"external_id"`
	Name              string    `json:"name"`
	Objective         *string   `json:"objective"`
	Status            string    `json:"status"`
	UpdatedAt         time.Time `json:"updated_at"`
}
