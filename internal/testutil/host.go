package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// Project is a project record served by FakeHost.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FakeHost is a TLS test server speaking the subset of the GitLab v4 API the
// installer uses: the project list and repository archive downloads.
type FakeHost struct {
	Server *httptest.Server

	mu             sync.Mutex
	projects       []Project
	catalogBody    string
	catalogStatus  int
	archives       map[int64][]byte
	truncate       bool
	omitLength     bool
	tokens         []string
	archiveFetches int
}

// NewFakeHost starts a FakeHost that is closed when the test completes.
func NewFakeHost(t *testing.T, projects ...Project) *FakeHost {
	t.Helper()

	h := &FakeHost{
		projects: projects,
		archives: make(map[int64][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v4/projects/{$}", h.serveProjects)
	mux.HandleFunc("GET /api/v4/projects/{id}/repository/archive.zip", h.serveArchive)

	h.Server = httptest.NewTLSServer(mux)
	t.Cleanup(h.Server.Close)

	return h
}

// URL is the base URL of the host.
func (h *FakeHost) URL() string { return h.Server.URL }

// Client returns an HTTP client trusting the host's certificate.
func (h *FakeHost) Client() *http.Client { return h.Server.Client() }

// SetArchive registers the archive served for a project id.
func (h *FakeHost) SetArchive(id int64, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.archives[id] = data
}

// SetCatalogResponse replaces the project list with a raw status and body.
func (h *FakeHost) SetCatalogResponse(status int, body string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.catalogStatus = status
	h.catalogBody = body
}

// TruncateArchives makes archive responses drop the connection halfway through.
func (h *FakeHost) TruncateArchives(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.truncate = v
}

// OmitContentLength makes archive responses stream without a Content-Length.
func (h *FakeHost) OmitContentLength(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.omitLength = v
}

// Tokens returns the Private-Token header of every request received.
func (h *FakeHost) Tokens() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.tokens...)
}

// ArchiveFetches counts archive requests received.
func (h *FakeHost) ArchiveFetches() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.archiveFetches
}

func (h *FakeHost) serveProjects(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.tokens = append(h.tokens, r.Header.Get("Private-Token"))
	status, body, projects := h.catalogStatus, h.catalogBody, h.projects
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
		return
	}
	if projects == nil {
		projects = []Project{}
	}
	_ = json.NewEncoder(w).Encode(projects)
}

func (h *FakeHost) serveArchive(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.tokens = append(h.tokens, r.Header.Get("Private-Token"))
	h.archiveFetches++
	truncate, omitLength := h.truncate, h.omitLength
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	data, ok := h.archives[id]
	h.mu.Unlock()

	if err != nil || !ok {
		http.Error(w, `{"message":"404 Project Not Found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	if !omitLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	}
	w.WriteHeader(http.StatusOK)

	if truncate {
		// Fewer bytes than the declared length: the client sees an unexpected EOF.
		_, _ = w.Write(data[:len(data)/2])
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		return
	}

	// Several writes so progress is reported more than once.
	const chunk = 64
	for off := 0; off < len(data); off += chunk {
		end := min(off+chunk, len(data))
		_, _ = w.Write(data[off:end])
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
