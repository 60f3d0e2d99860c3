// Package install replaces the installed resource pack with a freshly
// downloaded tier.
//
// An installation runs six phases in order (scan, purge, download, extract,
// clean-archive, normalize). The first failure stops the run and is reported
// as an *InstallError naming the phase. There is no rollback: a failure after
// the purge phase leaves the target directory without any install, and the
// user is expected to run the installer again.
package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chazuruo/stratum-installer/internal/catalog"
)

// Request is the unit of work passed to Install.
type Request struct {
	// Entry is the tier to install.
	Entry catalog.Entry
	// TargetDir is the resource pack directory.
	TargetDir string
}

// Result describes a completed installation.
type Result struct {
	// Dir is the path of the canonical install directory.
	Dir string
	// Removed lists the previous installs and stale archives that were deleted.
	Removed []string
	// Bytes is the archive size downloaded.
	Bytes int64
}

// Pipeline installs bundle tiers into a target directory.
type Pipeline struct {
	bundle     *catalog.Bundle
	downloader *Downloader
	logger     *log.Logger
	onPhase    func(Phase)
}

// NewPipeline creates a Pipeline that names files after bundle and fetches
// archives with downloader.
func NewPipeline(bundle *catalog.Bundle, downloader *Downloader) *Pipeline {
	return &Pipeline{
		bundle:     bundle,
		downloader: downloader,
		logger:     log.New(io.Discard),
	}
}

// SetLogger sets the diagnostic logger.
func (p *Pipeline) SetLogger(logger *log.Logger) {
	p.logger = logger
}

// OnPhase registers a callback invoked when each phase starts, and with
// PhaseDone after the last one succeeds.
func (p *Pipeline) OnPhase(fn func(Phase)) {
	p.onPhase = fn
}

// Install runs every phase for req. Each phase starts only after the
// previous one has completed.
func (p *Pipeline) Install(ctx context.Context, req Request) (*Result, error) {
	dir := req.TargetDir
	result := &Result{}

	p.enter(PhaseScan)
	installs, archives, err := p.scan(dir)
	if err != nil {
		return nil, &InstallError{Phase: PhaseScan, Path: dir, Err: err}
	}

	p.enter(PhasePurge)
	for _, name := range append(archives, installs...) {
		path := filepath.Join(dir, name)
		p.logger.Info("removing previous install", "path", path)
		if err := os.RemoveAll(path); err != nil {
			return nil, &InstallError{Phase: PhasePurge, Path: path, Err: err}
		}
		result.Removed = append(result.Removed, name)
	}

	p.enter(PhaseDownload)
	archive := filepath.Join(dir, p.bundle.ArchiveName(req.Entry))
	n, err := p.downloader.Download(ctx, req.Entry.URL, archive)
	if err != nil {
		p.discard(archive)
		return nil, &InstallError{Phase: PhaseDownload, Path: req.Entry.URL, Err: err}
	}
	result.Bytes = n

	p.enter(PhaseExtract)
	if err := extractArchive(ctx, archive, dir); err != nil {
		p.discard(archive)
		return nil, &InstallError{Phase: PhaseExtract, Path: archive, Err: err}
	}

	p.enter(PhaseCleanArchive)
	if err := os.Remove(archive); err != nil {
		return nil, &InstallError{Phase: PhaseCleanArchive, Path: archive, Err: err}
	}

	p.enter(PhaseNormalize)
	final, err := p.normalize(dir, req.Entry)
	if err != nil {
		return nil, &InstallError{Phase: PhaseNormalize, Path: dir, Err: err}
	}
	result.Dir = final

	p.enter(PhaseDone)
	return result, nil
}

func (p *Pipeline) enter(phase Phase) {
	p.logger.Debug("phase", "name", phase)
	if p.onPhase != nil {
		p.onPhase(phase)
	}
}

// scan returns the installs of any tier and the leftover archives in dir.
func (p *Pipeline) scan(dir string) (installs, archives []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	for _, e := range entries {
		name := e.Name()
		switch {
		case p.bundle.IsInstalledBundleDirectory(name):
			installs = append(installs, name)
		case !e.IsDir() && p.bundle.IsArchiveName(name):
			archives = append(archives, name)
		}
	}

	return installs, archives, nil
}

// normalize renames the folder the archive unpacked into to the canonical
// "<entry>-<channel>" name and returns its path.
//
// Exactly one extracted folder is expected. None is accepted only if the
// archive unpacked straight into the canonical name.
func (p *Pipeline) normalize(dir string, entry catalog.Entry) (string, error) {
	canonical := p.bundle.InstallDirName(entry)
	target := filepath.Join(dir, canonical)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var extracted []string
	canonicalExists := false
	for _, e := range entries {
		if !e.IsDir() || !p.bundle.IsInstalledBundleDirectory(e.Name()) {
			continue
		}
		if e.Name() == canonical {
			canonicalExists = true
			continue
		}
		extracted = append(extracted, e.Name())
	}

	switch {
	case len(extracted) == 0 && canonicalExists:
		return target, nil
	case len(extracted) == 0:
		return "", fmt.Errorf("%w: expected a %s folder", ErrNoExtractedFolder, canonical)
	case len(extracted) > 1 || canonicalExists:
		if canonicalExists {
			extracted = append(extracted, canonical)
		}
		return "", fmt.Errorf("%w: %s", ErrAmbiguousExtract, strings.Join(extracted, ", "))
	}

	from := filepath.Join(dir, extracted[0])
	p.logger.Info("renaming extracted folder", "from", extracted[0], "to", canonical)
	if err := os.Rename(from, target); err != nil {
		return "", err
	}
	return target, nil
}

// discard removes a partial archive after a failed phase.
func (p *Pipeline) discard(archive string) {
	if err := os.Remove(archive); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("could not remove partial archive", "path", archive, "error", err)
	}
}
