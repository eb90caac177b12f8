// Package models defines the persisted record types of the fleet service.
package models

import "time"

// User is an identity record. Salt and Key hold the hex-encoded password
// salt and PBKDF2-derived verification key; the plaintext password is never
// stored. Username is unique and immutable after signup.
type User struct {
	ID        string
	UserName  string
	Salt      string
	Key       string
	CreatedAt time.Time
}
