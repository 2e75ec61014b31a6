package domain

import "time"

// SubjectType identifies the kind of principal a token was issued to.
// The bridge only has one: the operator reviewing the audit log.
type SubjectType string

const (
	SubjectTypeAdmin SubjectType = "ADMIN"
)

// Token represents issued authentication token metadata.
type Token struct {
	SubjectID string
	Subject   SubjectType
	ExpiresAt time.Time
	IssuedAt  time.Time
}
