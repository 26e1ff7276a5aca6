package admin

import "time"

// Admin is a staff credential permitted to access the protected review endpoints.
// Admins are provisioned out of band (see cmd/adminctl); there is no registration
// endpoint.
type Admin struct {
	ID           string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
