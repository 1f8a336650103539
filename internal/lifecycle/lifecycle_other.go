//go:build !linux && !darwin

package lifecycle

import "context"

// Watch is a no-op on platforms without terminal job control.
func Watch(_ context.Context, _ Handler) {}
