package catalog

import (
	"fmt"
	"regexp"
)

// Bundle describes how a resource pack and its installs are named.
//
// Projects on the host are called "<Name>-<digits>x". An install on disk is
// "<project>-<Channel>", and a freshly extracted archive adds a build suffix:
// "<project>-<Channel>-<sha>".
type Bundle struct {
	Name    string
	Channel string

	project   *regexp.Regexp
	installed *regexp.Regexp
	archive   *regexp.Regexp
}

// NewBundle compiles the name patterns for a bundle.
// name and channel are quoted, so any value is safe.
func NewBundle(name, channel string) *Bundle {
	n := regexp.QuoteMeta(name)
	c := regexp.QuoteMeta(channel)
	return &Bundle{
		Name:      name,
		Channel:   channel,
		project:   regexp.MustCompile(fmt.Sprintf(`^%s-\d+x$`, n)),
		installed: regexp.MustCompile(fmt.Sprintf(`(?i)^%s-\d+x-%s(-\w+)?$`, n, c)),
		archive:   regexp.MustCompile(fmt.Sprintf(`(?i)^%s-\d+x-%s\.zip$`, n, c)),
	}
}

// IsProjectName reports whether a host project is one of the bundle tiers.
// The match is case-sensitive.
func (b *Bundle) IsProjectName(name string) bool {
	return b.project.MatchString(name)
}

// IsInstalledBundleDirectory reports whether a directory entry is an install
// of any tier, either canonical or freshly extracted. Case-insensitive.
func (b *Bundle) IsInstalledBundleDirectory(name string) bool {
	return b.installed.MatchString(name)
}

// IsArchiveName reports whether a file is a downloaded bundle archive.
func (b *Bundle) IsArchiveName(name string) bool {
	return b.archive.MatchString(name)
}

// InstallDirName is the canonical directory name for an installed entry.
func (b *Bundle) InstallDirName(e Entry) string {
	return e.Name + "-" + b.Channel
}

// ArchiveName is the file the archive of an entry is downloaded to.
func (b *Bundle) ArchiveName(e Entry) string {
	return b.InstallDirName(e) + ".zip"
}
