// Package tier maps the user's answer to one of the catalog entries.
package tier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazuruo/stratum-installer/internal/catalog"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// Resolve returns the entry at the index typed by the user.
//
// A blank, non-numeric, negative or out of range answer selects the last
// entry, which is the highest resolution in catalog order. Only an empty
// catalog is an error.
func Resolve(entries []catalog.Entry, raw string) (catalog.Entry, error) {
	if len(entries) == 0 {
		return catalog.Entry{}, sierrors.ErrNoTiersAvailable
	}

	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 0 || i >= len(entries) {
		return entries[len(entries)-1], nil
	}
	return entries[i], nil
}

// IsDefault reports whether raw would fall back to the last entry.
func IsDefault(entries []catalog.Entry, raw string) bool {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	return err != nil || i < 0 || i >= len(entries)
}

// Menu renders the numbered choices shown before asking, one per line:
//
//	[0] Stratum-128x
//	[1] Stratum-256x
func Menu(entries []catalog.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "[%d] %s\n", i, e.Name)
	}
	return b.String()
}
