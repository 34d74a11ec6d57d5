// Package models defines server-side data models persisted in the database.
package models

// Account is a registered user. SessionToken holds the single live session;
// it is nil until the first session is issued and after logout.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	SessionToken *string
}
