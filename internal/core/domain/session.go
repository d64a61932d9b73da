package domain

import "time"

// SessionTTL is the fixed lifetime of a session token. Sessions are never renewed.
const SessionTTL = 7 * 24 * time.Hour

// SessionClaim is the identity recovered from a verified session token.
type SessionClaim struct {
	UserID    string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is a freshly minted token together with the claim it encodes.
type Session struct {
	Token string
	Claim SessionClaim
}
