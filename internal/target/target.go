// Package target locates the game's resource pack directory and checks that
// the installer can write to it.
package target

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// Dirs are the directories an install works in.
type Dirs struct {
	// Game is the game's data directory.
	Game string
	// Packs is the resource pack directory the bundle is installed into.
	Packs string
}

// Options override the computed locations. Empty fields use the defaults.
type Options struct {
	// GameDir replaces the per-OS game directory.
	GameDir string
	// PacksDir is the resource pack directory, relative to the game directory
	// unless absolute.
	PacksDir string
	// TargetDir replaces the resource pack directory entirely.
	TargetDir string
}

// DefaultGameDir returns the game directory for the running OS.
func DefaultGameDir() (string, error) {
	return gameDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func gameDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	if goos == "windows" {
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft"), nil
		}
	}

	h, err := home()
	if err != nil {
		return "", &sierrors.DirectoryError{Path: "~", Reason: sierrors.ReasonUnresolved, Err: err}
	}

	switch goos {
	case "windows":
		return filepath.Join(h, "AppData", "Roaming", ".minecraft"), nil
	case "darwin":
		return filepath.Join(h, "Library", "Application Support", "minecraft"), nil
	default:
		return filepath.Join(h, ".minecraft"), nil
	}
}

// Resolve computes the install directories from opts without touching the
// filesystem. With an explicit TargetDir the game directory is not needed
// and Game is left empty.
func Resolve(opts Options) (Dirs, error) {
	if opts.TargetDir != "" {
		return Dirs{Packs: filepath.Clean(opts.TargetDir)}, nil
	}

	game := opts.GameDir
	if game == "" {
		var err error
		if game, err = DefaultGameDir(); err != nil {
			return Dirs{}, err
		}
	}

	packs := opts.PacksDir
	if packs == "" {
		packs = "resourcepacks"
	}
	if !filepath.IsAbs(packs) {
		packs = filepath.Join(game, packs)
	}

	return Dirs{Game: filepath.Clean(game), Packs: filepath.Clean(packs)}, nil
}

// CheckWritable reports a *errors.DirectoryError unless dir exists, is a
// directory, and accepts new files.
func CheckWritable(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &sierrors.DirectoryError{Path: dir, Reason: sierrors.ReasonMissing, Err: err}
	case err != nil:
		return &sierrors.DirectoryError{Path: dir, Reason: sierrors.ReasonUnreadable, Err: err}
	case !info.IsDir():
		return &sierrors.DirectoryError{Path: dir, Reason: sierrors.ReasonNotDir}
	}

	probe := filepath.Join(dir, ".stratum-installer-"+uuid.NewString())
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return &sierrors.DirectoryError{Path: dir, Reason: sierrors.ReasonReadOnly, Err: err}
	}
	_ = f.Close()
	_ = os.Remove(probe)

	return nil
}
