// Package export writes and reads portable JSON archives of the study log.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/osutil"
)

// Version is the archive format written by this package.
const Version = "1.0"

// Archive is the on-disk export format.
type Archive struct {
	Version    string                 `json:"version"`
	ExportedAt time.Time              `json:"exported_at"`
	Count      int                    `json:"count"`
	Sessions   []models.SessionRecord `json:"sessions"`
	Streak     models.StreakState     `json:"streak"`
}

// New assembles an archive of the given data.
func New(sessions []models.SessionRecord, streak models.StreakState, now time.Time) Archive {
	if sessions == nil {
		sessions = []models.SessionRecord{}
	}

	return Archive{
		Version:    Version,
		ExportedAt: now.UTC(),
		Count:      len(sessions),
		Sessions:   sessions,
		Streak:     streak,
	}
}

// Write encodes a as indented JSON.
func Write(w io.Writer, a Archive) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	return nil
}

// Read decodes an archive written by Write.
func Read(r io.Reader) (Archive, error) {
	var a Archive

	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Archive{}, fmt.Errorf("decode archive: %w", err)
	}

	if a.Version != Version {
		return Archive{}, errUnsupportedVersion.Fmt(a.Version)
	}

	a.Count = len(a.Sessions)

	return a, nil
}

// ToFile writes a to path.
func ToFile(path string, a Archive) error {
	f, err := os.OpenFile(
		path,
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY,
		osutil.FilePermission,
	)
	if err != nil {
		return fmt.Errorf("write json file: %w", err)
	}

	if err := Write(f, a); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// FromFile reads an archive from path.
func FromFile(path string) (Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return Archive{}, err
	}
	defer f.Close()

	return Read(f)
}
