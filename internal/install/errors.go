package install

import (
	"errors"
	"fmt"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

var (
	// ErrNoExtractedFolder indicates the archive did not unpack into a bundle folder.
	ErrNoExtractedFolder = errors.New("archive did not contain a bundle folder")

	// ErrAmbiguousExtract indicates more than one bundle folder was found after extraction.
	ErrAmbiguousExtract = errors.New("more than one bundle folder after extraction")
)

// InstallError reports the phase an installation stopped in.
type InstallError struct {
	// Phase is the phase that failed.
	Phase Phase
	// Path is the file or directory the phase was working on (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *InstallError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s failed (%s): %s", e.Phase, e.Path, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Phase, e.Err)
}

func (e *InstallError) Unwrap() []error { return []error{sierrors.ErrInstall, e.Err} }

// AsInstallError reports whether err can be typed as an *InstallError.
func AsInstallError(err error) (*InstallError, bool) {
	var ie *InstallError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
