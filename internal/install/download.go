package install

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/charmbracelet/log"

	"github.com/chazuruo/stratum-installer/internal/catalog"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// Progress is a snapshot of a running download.
type Progress struct {
	// Total is the declared size in bytes, 0 when the server sent no length.
	Total int64
	// Received is the number of bytes written so far. It never decreases and
	// never exceeds a known Total.
	Received int64
}

// ProgressHook is called once per received chunk.
type ProgressHook func(Progress)

// Downloader streams archives from the project host to disk.
type Downloader struct {
	httpClient   *http.Client
	userAgent    string
	token        string
	progressHook ProgressHook
	logger       *log.Logger
}

// NewDownloader creates a new Downloader.
func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: http.DefaultClient,
		logger:     log.New(io.Discard),
	}
}

// SetProgressHook sets the progress callback.
func (d *Downloader) SetProgressHook(hook ProgressHook) {
	d.progressHook = hook
}

// SetHTTPClient sets the HTTP client (useful for testing).
func (d *Downloader) SetHTTPClient(client *http.Client) {
	d.httpClient = client
}

// SetToken sets the access token sent with every download. Empty means anonymous.
func (d *Downloader) SetToken(token string) {
	d.token = token
}

// SetUserAgent sets the User-Agent header.
func (d *Downloader) SetUserAgent(ua string) {
	d.userAgent = ua
}

// SetLogger sets the diagnostic logger.
func (d *Downloader) SetLogger(logger *log.Logger) {
	d.logger = logger
}

// SecureURL rewrites http URLs to https. Other schemes are rejected.
func SecureURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid download URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "https":
	case "http":
		u.Scheme = "https"
	default:
		return "", fmt.Errorf("unsupported download URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("download URL %q has no host", raw)
	}
	return u.String(), nil
}

// Download streams rawURL into destPath and returns the number of bytes written.
// The file is closed before Download returns. On error the caller owns
// cleanup of whatever was written.
func (d *Downloader) Download(ctx context.Context, rawURL, destPath string) (int64, error) {
	link, err := SecureURL(rawURL)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if d.token != "" {
		req.Header.Set(catalog.TokenHeader, d.token)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	d.logger.Debug("downloading archive", "url", link, "dest", destPath)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, d.interrupted(ctx, fmt.Errorf("failed to download: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	total := max(resp.ContentLength, 0)
	received, copyErr := d.copy(ctx, f, resp.Body, total)
	closeErr := f.Close()
	if copyErr != nil {
		return received, copyErr
	}
	if closeErr != nil {
		return received, fmt.Errorf("failed to close file: %w", closeErr)
	}

	d.logger.Debug("archive downloaded", "bytes", received, "declared", total)

	return received, nil
}

// copy moves the body to f in chunks, reporting progress after each one.
func (d *Downloader) copy(ctx context.Context, f *os.File, body io.Reader, total int64) (int64, error) {
	var received int64
	d.report(Progress{Total: total, Received: 0})

	buf := make([]byte, 32*1024)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return received, fmt.Errorf("failed to write file: %w", writeErr)
			}
			received += int64(n)
			d.report(Progress{Total: total, Received: received})
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return received, d.interrupted(ctx, fmt.Errorf("download interrupted: %w", err))
		}
	}

	return received, nil
}

func (d *Downloader) report(p Progress) {
	if d.progressHook == nil {
		return
	}
	if p.Total > 0 && p.Received > p.Total {
		p.Received = p.Total
	}
	d.progressHook(p)
}

// interrupted tags err as a cancellation when the context was canceled.
func (d *Downloader) interrupted(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", sierrors.ErrCanceled, err)
	}
	return err
}
