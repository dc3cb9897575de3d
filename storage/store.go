// Package storage persists finished batch results as JSON artifacts,
// addressed by session identifier.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/proplens/proplens/models"
)

// sessionIDPattern constrains identifiers used as filenames. Anything else
// is rejected rather than sanitized.
var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Artifact is the persisted summary of one finished batch.
type Artifact struct {
	SessionID   string              `json:"sessionId"`
	CompletedAt time.Time           `json:"completedAt"`
	URLCount    int                 `json:"urlCount"`
	Result      *models.BatchResult `json:"result"`
}

// Store writes and reads batch artifacts under a single directory.
type Store struct {
	dir string
}

// New creates the artifact directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Write persists the artifact to <dir>/<sessionId>.json and returns the
// written path.
func (s *Store) Write(a *Artifact) (string, error) {
	if !sessionIDPattern.MatchString(a.SessionID) {
		return "", fmt.Errorf("invalid session id %q", a.SessionID)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal artifact: %w", err)
	}

	path := filepath.Join(s.dir, a.SessionID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// Read loads the artifact for a session. A missing artifact surfaces as an
// error satisfying os.IsNotExist on the unwrapped cause.
func (s *Store) Read(sessionID string) (*Artifact, error) {
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, fmt.Errorf("invalid session id %q", sessionID)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, sessionID+".json"))
	if err != nil {
		return nil, err
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %q: %w", sessionID, err)
	}
	return &a, nil
}
