package store

// Store defines the interface for device profile persistence.
// Implementations must be thread-safe and handle concurrent access gracefully.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if the profile doesn't exist (for Load/Delete)
//   - Return ErrInvalidName for names that cannot be used as a file name
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveProfile atomically saves a profile under profile.Name.
	// If a profile already exists with this name, it is overwritten and
	// its CreatedAt is kept.
	SaveProfile(profile *Profile) error

	// LoadProfile retrieves the named profile.
	// Returns ErrNotFound if no profile exists with this name.
	LoadProfile(name string) (*Profile, error)

	// ListProfiles returns all readable profiles sorted by name.
	// The returned slice may be empty if no profiles exist.
	ListProfiles() ([]*Profile, error)

	// DeleteProfile removes the named profile.
	// Returns ErrNotFound if no profile exists with this name.
	DeleteProfile(name string) error
}

// ErrNotFound is returned when a requested profile does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing profile error.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return "profile not found: " + e.Name
	}
	return "profile not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
