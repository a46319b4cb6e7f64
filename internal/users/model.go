// Package users manages document owners. Identity is asserted by the caller
// (there is no credential flow); a user row exists to anchor document
// ownership and to release everything the user stored when the row goes away.
package users

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}
