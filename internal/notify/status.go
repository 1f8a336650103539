package notify

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ayoisaiah/studyfocus/internal/osutil"
)

// Status is the content of the status file.
type Status struct {
	EndTime        time.Time `json:"end_time"`
	Method         string    `json:"method"`
	State          string    `json:"state"`
	Indicator      string    `json:"indicator,omitempty"`
	BlockingLevel  string    `json:"blocking_level,omitempty"`
	Remaining      int       `json:"remaining"`
	SwitchAttempts int       `json:"switch_attempts"`
	Blocking       bool      `json:"blocking"`
}

// StatusFile keeps a JSON snapshot of the running session on disk. It also
// serves as the persistent focus indicator.
type StatusFile struct {
	path   string
	status Status
	mu     sync.Mutex
}

func NewStatusFile(path string) *StatusFile {
	return &StatusFile{path: path}
}

// Update applies fn to the current status and rewrites the file. The
// indicator text is preserved unless fn changes it.
func (f *StatusFile) Update(fn func(*Status)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fn(&f.status)

	return f.writeLocked()
}

func (f *StatusFile) ShowIndicator(message string) error {
	return f.Update(func(s *Status) {
		s.Indicator = message
	})
}

func (f *StatusFile) ClearIndicator() error {
	return f.Update(func(s *Status) {
		s.Indicator = ""
	})
}

// Remove deletes the status file. A missing file is not an error.
func (f *StatusFile) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = Status{}

	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func (f *StatusFile) writeLocked() error {
	b, err := json.Marshal(f.status)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(f.path), osutil.DirPermission)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"

	err = os.WriteFile(tmp, b, osutil.FilePermission)
	if err != nil {
		return err
	}

	return os.Rename(tmp, f.path)
}

// ReadStatus loads a status file written by StatusFile.
func ReadStatus(path string) (Status, error) {
	var s Status

	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}

	err = json.Unmarshal(b, &s)

	return s, err
}
