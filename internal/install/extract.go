package install

import (
	"context"
	"fmt"
	"os"

	"github.com/codeclysm/extract/v4"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// extractArchive unpacks the zip at archivePath into dir, overwriting files
// that already exist. The file is handed to the extractor unwrapped so it is
// read in place rather than buffered.
func extractArchive(ctx context.Context, archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := extract.Zip(ctx, f, dir, nil); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: failed to extract archive: %w", sierrors.ErrCanceled, err)
		}
		return fmt.Errorf("failed to extract archive: %w", err)
	}
	return nil
}
