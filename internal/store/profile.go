// Package store persists named device configurations.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/nekoflow/nekodev/internal/device"
)

// Profile is a named device configuration.
type Profile struct {
	Name      string        `json:"name"`
	Config    device.Config `json:"config"`
	Note      string        `json:"note,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ErrInvalidName is returned for profile names that are not safe file names.
var ErrInvalidName = errors.New("invalid profile name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// ValidateName checks that name can be stored.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Validate checks the profile name and its device config.
func (p *Profile) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return nil
}
