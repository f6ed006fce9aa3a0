package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const profileExt = ".json"

// FSStore implements the Store interface using filesystem-based persistence.
// Profiles are stored as <baseDir>/profiles/<name>.json.
//
// Thread-safety: This implementation uses atomic file operations (rename)
// and does not require locks.
type FSStore struct {
	baseDir string
	now     func() time.Time
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSStore{
		baseDir: baseDir,
		now:     time.Now,
	}, nil
}

func (fs *FSStore) profilesDir() string {
	return filepath.Join(fs.baseDir, "profiles")
}

func (fs *FSStore) profilePath(name string) string {
	return filepath.Join(fs.profilesDir(), name+profileExt)
}

// SaveProfile atomically saves a profile.
// Uses temp file + rename pattern to ensure atomicity.
func (fs *FSStore) SaveProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(fs.profilesDir(), 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	now := fs.now().UTC()
	existing, err := fs.LoadProfile(profile.Name)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		profile.CreatedAt = now
	default:
		slog.Warn("Overwriting unreadable profile", "name", profile.Name, "error", err)
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	// Each save writes its own temp file so concurrent saves of one name
	// never share a rename source; the last rename wins.
	finalPath := fs.profilePath(profile.Name)
	tmp, err := os.CreateTemp(fs.profilesDir(), profile.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp profile file: %w", err)
	}
	tempPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp profile file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp profile file: %w", err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename profile file: %w", err)
	}

	slog.Debug("Profile saved", "name", profile.Name, "path", finalPath)
	return nil
}

// LoadProfile retrieves the named profile.
func (fs *FSStore) LoadProfile(name string) (*Profile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	path := fs.profilePath(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Name: name}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to deserialize profile %s: %w", name, err)
	}

	slog.Debug("Profile loaded", "name", name, "path", path)
	return &profile, nil
}

// ListProfiles returns all readable profiles sorted by name.
func (fs *FSStore) ListProfiles() ([]*Profile, error) {
	entries, err := os.ReadDir(fs.profilesDir())
	if os.IsNotExist(err) {
		return []*Profile{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	profiles := []*Profile{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), profileExt) {
			continue // Skip temp files and stray directories
		}

		name := strings.TrimSuffix(entry.Name(), profileExt)
		profile, err := fs.LoadProfile(name)
		if err != nil {
			slog.Warn("Failed to load profile for listing", "name", name, "error", err)
			continue
		}
		profiles = append(profiles, profile)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	slog.Debug("Listed profiles", "count", len(profiles))
	return profiles, nil
}

// DeleteProfile removes the named profile.
func (fs *FSStore) DeleteProfile(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	path := fs.profilePath(name)
	if err := os.Remove(path); os.IsNotExist(err) {
		return &NotFoundError{Name: name}
	} else if err != nil {
		return fmt.Errorf("failed to remove profile file: %w", err)
	}

	slog.Debug("Profile deleted", "name", name, "path", path)
	return nil
}
