// Package tool holds small shared helpers.
package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered UUID string, used for primary keys
// so index pages fill in insert order.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}
