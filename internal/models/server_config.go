package models

// ServerConfig holds the per-server settings
type ServerConfig struct {
	// ServerID is the Discord guild these settings belong to
	ServerID string `json:"server_id" db:"server_id"`

	// AlertLeadMinutes is the informational default lead before a session starts
	AlertLeadMinutes int `json:"alert_lead_minutes" db:"alert_lead_minutes"`

	// Timezone is an IANA zone name used to interpret scheduled times
	Timezone string `json:"timezone" db:"timezone"`

	// Language is the preferred language code
	Language string `json:"lang" db:"lang"`
}
