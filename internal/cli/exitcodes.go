package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/bonsai/pkg/fsutil"
	"github.com/yaklabco/bonsai/pkg/green"
	"github.com/yaklabco/bonsai/pkg/treefile"
)

// Exit codes for bonsai.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitTreesDiffer indicates diff compared two trees that are not equal.
	ExitTreesDiffer = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates an input file that is not a valid tree.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrTreesDiffer is returned by diff when the trees are not equal.
	ErrTreesDiffer = errors.New("trees differ")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrInvalidUsage wraps bad flag values.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromError maps the error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrTreesDiffer):
		return ExitTreesDiffer
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, treefile.ErrUnknownFormat):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, treefile.ErrInvalidDoc),
		errors.Is(err, green.ErrInvalidText),
		errors.Is(err, green.ErrTextLenOverflow),
		errors.Is(err, green.ErrLengthMismatch),
		errors.Is(err, green.ErrTooLarge):
		return ExitDataError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
