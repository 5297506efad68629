// Package domain contains core domain types for the webdump bot.
package domain

// Credential holds the Notion access details a user supplies during onboarding.
// At most one record exists per user; absence of a record means the user still
// has to complete setup.
type Credential struct {
	UserID           string `json:"user_id"`
	IntegrationToken string `json:"integration_token"`
	DatabaseID       string `json:"database_id"`
}

// Complete returns true if both Notion identifiers have been captured.
func (c *Credential) Complete() bool {
	return c.IntegrationToken != "" && c.DatabaseID != ""
}
