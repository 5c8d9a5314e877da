package booking

import "github.com/arcn-hotels/service-booking/internal/domain"

// Client is an immutable value object describing the person making a
// booking. It has no identity of its own beyond its user id.
type Client struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	UserEmail      string `json:"user_email"`
	UserPersonalID int    `json:"user_personal_id"`
	Cellphone      int    `json:"cellphone"`
}

// Validate checks all required client fields, failing fast on the first
// violation. Email format is not validated here.
func (c Client) Validate() error {
	if c.UserID == "" {
		return domain.NewValidationError("client user ID is required")
	}
	if c.Name == "" {
		return domain.NewValidationError("client name is required")
	}
	if c.UserEmail == "" {
		return domain.NewValidationError("client email is required")
	}
	if c.UserPersonalID <= 0 {
		return domain.NewValidationError("client personal ID must be positive")
	}
	if c.Cellphone <= 0 {
		return domain.NewValidationError("client cellphone must be positive")
	}
	return nil
}
