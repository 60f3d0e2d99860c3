package install

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Phase is one step of an installation. Phases run strictly in the order
// listed below and none is ever re-entered.
type Phase string

const (
	// PhaseScan lists the target directory for previous installs and stale archives.
	PhaseScan Phase = "scan"
	// PhasePurge removes everything the scan found.
	PhasePurge Phase = "purge"
	// PhaseDownload streams the archive into the target directory.
	PhaseDownload Phase = "download"
	// PhaseExtract unpacks the archive over the target directory.
	PhaseExtract Phase = "extract"
	// PhaseCleanArchive deletes the downloaded archive.
	PhaseCleanArchive Phase = "clean-archive"
	// PhaseNormalize renames the extracted folder to its canonical name.
	PhaseNormalize Phase = "normalize"
	// PhaseDone is reported once the install is complete.
	PhaseDone Phase = "done"
)

// Phases lists the working phases in execution order.
var Phases = []Phase{PhaseScan, PhasePurge, PhaseDownload, PhaseExtract, PhaseCleanArchive, PhaseNormalize}

// String implements fmt.Stringer.
func (p Phase) String() string { return string(p) }

// Title returns the phase name for display, e.g. "Clean Archive".
func (p Phase) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(p), "-", " "))
}
