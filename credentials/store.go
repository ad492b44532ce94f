// ABOUTME: Durable credential storage for access token, refresh token, and cached user
// ABOUTME: Reads never fail upward; missing or corrupt data is treated as absent

package credentials

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tutorlink/tutorlink-go/models"
)

// Store persists exactly three logical keys: the access token, the
// refresh token, and the cached user profile. Reads treat any failure
// as absence so callers only ever see "not authenticated".
type Store interface {
	// AccessToken returns the stored access token, or "" if absent.
	AccessToken() string
	// RefreshToken returns the stored refresh token, or "" if absent.
	RefreshToken() string
	// User returns the cached user profile, or nil if absent.
	User() *models.UserProfile
	// SetTokens writes both tokens. Callers treat absence of either
	// read as "not authenticated", so a partial write cannot produce a
	// usable half-credential.
	SetTokens(access, refresh string) error
	// SetUser caches the user profile.
	SetUser(user *models.UserProfile) error
	// ClearAll removes all three keys. Idempotent; never fails from the
	// caller's perspective since logout must not be blocked by storage.
	ClearAll()
}

const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
	userFile         = "user.json"
)

// FileStore keeps each key in its own file under a directory, written
// atomically via temp file and rename.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) AccessToken() string {
	return s.readString(accessTokenFile)
}

func (s *FileStore) RefreshToken() string {
	return s.readString(refreshTokenFile)
}

func (s *FileStore) User() *models.UserProfile {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read cached user", "error", err)
		}
		return nil
	}

	var user models.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		slog.Warn("Cached user is corrupt, treating as absent", "error", err)
		return nil
	}
	return &user
}

func (s *FileStore) SetTokens(access, refresh string) error {
	// Access first, then refresh. Readers require both, so an
	// interrupted write reads back as "not authenticated".
	if err := s.writeFile(accessTokenFile, []byte(access)); err != nil {
		return err
	}
	return s.writeFile(refreshTokenFile, []byte(refresh))
}

func (s *FileStore) SetUser(user *models.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.writeFile(userFile, data)
}

func (s *FileStore) ClearAll() {
	for _, name := range []string{accessTokenFile, refreshTokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove credential file", "file", name, "error", err)
		}
	}
}

func (s *FileStore) readString(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read credential file", "file", name, "error", err)
		}
		return ""
	}
	return string(data)
}

// writeFile writes atomically: temp file in the same directory, fsync
// semantics left to the filesystem, then rename over the target.
func (s *FileStore) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filepath.Join(s.dir, name))
}
