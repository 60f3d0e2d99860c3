// Package catalog lists the resource pack tiers published on the project host.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one installable tier of the bundle, as returned by the host.
type Entry struct {
	// ID is the host's project identifier.
	ID int64 `json:"id" yaml:"id"`
	// Name is the project name, e.g. "Stratum-256x".
	Name string `json:"name" yaml:"name"`
	// URL is the archive download URL derived from ID.
	URL string `json:"download_url" yaml:"download_url"`
}

// Tier returns the resolution encoded in the name ("Stratum-256x" -> 256),
// or 0 if the name has no tier suffix.
func (e Entry) Tier() int {
	i := strings.LastIndex(e.Name, "-")
	if i < 0 || !strings.HasSuffix(e.Name, "x") {
		return 0
	}
	n, err := strconv.Atoi(e.Name[i+1 : len(e.Name)-1])
	if err != nil {
		return 0
	}
	return n
}

// String implements fmt.Stringer.
func (e Entry) String() string {
	return fmt.Sprintf("%s (#%d)", e.Name, e.ID)
}

// ArchiveURL builds the repository archive URL of a project.
func ArchiveURL(baseURL string, id int64) string {
	return fmt.Sprintf("%s/api/v4/projects/%d/repository/archive.zip", strings.TrimRight(baseURL, "/"), id)
}
