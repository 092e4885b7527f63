package token

import "time"

// Maker is an interface for managing session tokens
type Maker interface {
	// CreateToken creates a new token for a specific email and duration
	CreateToken(email string, duration time.Duration) (string, error)

	// VerifyToken checks if the token is valid and returns its payload
	VerifyToken(token string) (*Payload, error)
}
