// Package progress renders download progress for the installer.
package progress

import (
	"github.com/chazuruo/stratum-installer/internal/install"
)

// Reporter displays the state of one download.
//
// Init is called once with the declared size (0 when unknown), Update with
// the running byte count, and Finish when the transfer is over, whether or
// not it succeeded. Implementations never fail: rendering problems are
// swallowed so they cannot abort an install.
type Reporter interface {
	Init(total int64)
	Update(received int64)
	Finish()
}

// Hook adapts r to the downloader's progress callback. The first event
// initializes r; every later one updates it.
func Hook(r Reporter) install.ProgressHook {
	started := false
	return func(p install.Progress) {
		if !started {
			started = true
			r.Init(p.Total)
		}
		r.Update(p.Received)
	}
}
