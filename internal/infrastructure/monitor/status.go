package monitor

import "time"

type Status struct {
	PostgreSQL    bool      `json:"postgresql"`
	Redis         bool      `json:"redis"`
	GrantBuffer   bool      `json:"grantBuffer"`
	PendingGrants int       `json:"pendingGrants"`
	LastCheck     time.Time `json:"lastCheck"`
}
