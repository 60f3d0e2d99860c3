package cli

import (
	"fmt"
	"io"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
	"github.com/chazuruo/stratum-installer/internal/install"
	"github.com/chazuruo/stratum-installer/internal/tui"
)

// PrintError reports err to the user with the failed phase and a
// remediation hint when known.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	if sierrors.IsCanceled(err) {
		_, _ = fmt.Fprintln(w, tui.WarningStyle.Render("Canceled"))
		return
	}

	if de, ok := sierrors.AsDirectoryError(err); ok {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", tui.ErrorStyle.Render("Error:"), tui.PathStyle.Render(de.Path), tui.ErrorStyle.Render(de.Reason))
	} else {
		_, _ = fmt.Fprintf(w, "%s %s\n", tui.ErrorStyle.Render("Error:"), err)
	}

	if ie, ok := install.AsInstallError(err); ok {
		_, _ = fmt.Fprintf(w, "Failed during: %s\n", ie.Phase.Title())
		if ie.Phase != install.PhaseScan && ie.Phase != install.PhasePurge {
			_, _ = fmt.Fprintln(w, "Any previous Stratum install was removed before the failure.")
		}
	}

	if hint := sierrors.Hint(err); hint != "" {
		_, _ = fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
