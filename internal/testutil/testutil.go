// Package testutil provides an in-memory AlpPass backend for tests. It
// records every request it serves so tests can assert on call counts and
// ordering, and it can be told to fail specific photo operations to exercise
// the best-effort sync paths.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Rostislav62/alppass/internal/api"
)

// Backend is a fake AlpPass REST API
type Backend struct {
	T      *testing.T
	Server *httptest.Server

	// FailDeletePhoto makes deletes of these photo ids answer 403
	FailDeletePhoto map[int]bool
	// FailUpload makes every upload answer 500
	FailUpload bool

	mu       sync.Mutex
	nextID   int
	perevals map[int]*api.Pereval
	photos   map[int][]api.Photo
	users    map[string]api.User
	updates  []map[string]any
	calls    []string
}

// NewBackend starts a fake backend. It is closed automatically when the
// test finishes.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		T:               t,
		FailDeletePhoto: make(map[int]bool),
		nextID:          1,
		perevals:        make(map[int]*api.Pereval),
		photos:          make(map[int][]api.Photo),
		users:           make(map[string]api.User),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/submitData/", b.handleSubmit)
	mux.HandleFunc("PATCH /api/submitData/{id}/update/", b.handleUpdate)
	mux.HandleFunc("GET /api/submitData/{id}/info/", b.handleInfo)
	mux.HandleFunc("GET /api/submitData/list/{$}", b.handleList)
	mux.HandleFunc("POST /api/uploadImage/", b.handleUpload)
	mux.HandleFunc("DELETE /api/uploadImage/delete/{id}/", b.handleDeletePhoto)
	mux.HandleFunc("GET /api/uploadImage/photos/{id}/", b.handlePhotos)
	mux.HandleFunc("GET /api/auth/users/{email}/", b.handleUser)
	mux.HandleFunc("POST /api/auth/register", b.handleRegister)

	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Server.Close)

	return b
}

// Client returns an api.Client bound to the fake backend
func (b *Backend) Client() *api.Client {
	return api.NewClient(b.Server.URL, 5*time.Second)
}

// AddPereval seeds a record and returns its id
func (b *Backend) AddPereval(p *api.Pereval) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	p.ID = id
	b.perevals[id] = p
	return id
}

// AddPhoto seeds a photo on a record
func (b *Backend) AddPhoto(perevalID int, photo api.Photo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.photos[perevalID] = append(b.photos[perevalID], photo)
}

// AddUser seeds a registered user
func (b *Backend) AddUser(u api.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[u.Email] = u
}

// Pereval returns the stored record, nil if absent
func (b *Backend) Pereval(id int) *api.Pereval {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.perevals[id]
}

// Photos returns the photos currently attached to a record
func (b *Backend) Photos(perevalID int) []api.Photo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.Photo(nil), b.photos[perevalID]...)
}

// Updates returns the partial-update payloads received, in order
func (b *Backend) Updates() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.updates...)
}

// Calls returns every served request as "METHOD path", in arrival order
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// ResetCalls clears the recorded requests
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *Backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)
}

func (b *Backend) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var p api.Pereval
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "bad request body"})
		return
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	p.ID = id
	b.perevals[id] = &p
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"state": 1, "message": nil, "id": id})
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	p, ok := b.perevals[id]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"state": 0, "message": "record not found"})
		return
	}
	if p.Status != api.StatusNew {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "record is not editable"})
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "bad request body"})
		return
	}

	b.mu.Lock()
	b.updates = append(b.updates, fields)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"state": 1})
}

func (b *Backend) handleInfo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	p, ok := b.perevals[id]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items := make([]api.Summary, 0, len(b.perevals))
	for id, p := range b.perevals {
		items = append(items, api.Summary{
			ID:          id,
			BeautyTitle: p.BeautyTitle,
			Title:       p.Title,
			Status:      p.Status,
			AddTime:     p.AddTime,
			Email:       p.User.Email,
		})
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, items)
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if b.FailUpload {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"state": 0, "message": "upload failed"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "bad multipart form"})
		return
	}
	perevalID, _ := strconv.Atoi(r.FormValue("pereval_id"))
	fileName := r.FormValue("file_name")

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "missing image"})
		return
	}
	defer file.Close()
	if _, err := io.Copy(io.Discard, file); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "unreadable image"})
		return
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.photos[perevalID] = append(b.photos[perevalID], api.Photo{
		ID:       id,
		FileName: fileName,
		Title:    r.FormValue("title"),
	})
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"state": 1, "id": id})
}

func (b *Backend) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	if b.FailDeletePhoto[id] {
		writeJSON(w, http.StatusForbidden, map[string]any{"state": 0, "message": "forbidden"})
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"state": 0, "message": "email required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for perevalID, photos := range b.photos {
		for i, p := range photos {
			if p.ID == id {
				b.photos[perevalID] = append(photos[:i], photos[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]any{"state": 1})
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"state": 0, "message": "photo not found"})
}

func (b *Backend) handlePhotos(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	photos := append([]api.Photo{}, b.photos[id]...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"state": 1, "photos": photos})
}

func (b *Backend) handleUser(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	b.mu.Lock()
	u, ok := b.users[email]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var u api.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad request body"})
		return
	}
	if u.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "email required"})
		return
	}

	b.mu.Lock()
	if _, exists := b.users[u.Email]; exists {
		b.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "user already exists"})
		return
	}
	u.ID = b.nextID
	b.nextID++
	b.users[u.Email] = u
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"state": 1, "user": u})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("testutil: failed to encode response: %v", err))
	}
}
