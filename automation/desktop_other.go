//go:build !windows

package automation

// NewDesktop returns ErrUnsupportedPlatform. The tests drive the Windows build of
// Notepad++ and have no other backend.
func NewDesktop() (Desktop, error) {
	return nil, ErrUnsupportedPlatform
}
