// Package notify delivers reminders to the desktop and mirrors the session
// state into a status file that other tools (and the status command) can
// read.
package notify

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
)

// Desktop sends desktop notifications through beeep.
type Desktop struct {
	send    func(title, message, icon string) error
	icon    string
	enabled bool
}

// NewDesktop returns a Desktop notifier. The icon is looked up as
// <appDir>/icon.png in the XDG data directories; a missing icon is not an
// error. A disabled notifier silently drops every message.
func NewDesktop(appDir string, enabled bool) *Desktop {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(filepath.Join(appDir, "icon.png"))

	return &Desktop{
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		icon:    pathToIcon,
		enabled: enabled,
	}
}

func (d *Desktop) Notify(title, message string) error {
	if !d.enabled {
		return nil
	}

	return d.send(title, message, d.icon)
}
