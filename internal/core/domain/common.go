package domain

import "time"

// SystemUserID is the fixed identity attributed to actions performed by
// scheduled jobs and other flows where no authenticated caller exists.
// Seeded by the initial migration.
const SystemUserID = "00000000-0000-0000-0000-000000000001"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
