// Package testutils provides a fake catalog API server and a recording
// notification sink for tests.
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hexadmin/catalog-console/internal/models"
)

// FakeAPI is an httptest-backed stand-in for the remote catalog service. Set
// the Fail* fields to a message to make the matching operation reject with it.
type FakeAPI struct {
	server *httptest.Server

	mu sync.Mutex

	APIPath string
	Token   string
	Expired int64

	Pages      map[int][]models.Product
	TotalPages int

	RejectLogin string
	FailList    string
	FailCreate  string
	FailUpdate  string
	FailDelete  string
	FailUpload  string

	UploadedURL string

	ListRequests []int
	CheckCalls   int
	Created      []models.ProductDraft
	Updated      map[string]models.ProductDraft
	Deleted      []string
	Uploaded     []string
	LastAuth     string
}

func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		APIPath:     "testshop",
		Token:       "fake-admin-token",
		Expired:     4102444800000,
		Pages:       map[int][]models.Product{},
		Updated:     map[string]models.ProductDraft{},
		UploadedURL: "https://img.example.com/uploaded.png",
	}

	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)

	return f
}

func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Close shuts the server down early, for transport-failure tests.
func (f *FakeAPI) Close() {
	f.server.Close()
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	adminPrefix := fmt.Sprintf("/api/%s/admin", f.APIPath)
	f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/admin/signin":
		f.handleSignin(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/user/check":
		f.handleCheck(w, r)
	case r.Method == http.MethodGet && r.URL.Path == adminPrefix+"/products":
		f.handleList(w, r)
	case r.Method == http.MethodPost && r.URL.Path == adminPrefix+"/product":
		f.handleCreate(w, r)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, adminPrefix+"/product/"):
		f.handleUpdate(w, r, strings.TrimPrefix(r.URL.Path, adminPrefix+"/product/"))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, adminPrefix+"/product/"):
		f.handleDelete(w, r, strings.TrimPrefix(r.URL.Path, adminPrefix+"/product/"))
	case r.Method == http.MethodPost && r.URL.Path == adminPrefix+"/upload":
		f.handleUpload(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Not found"})
	}
}

func (f *FakeAPI) handleSignin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	reject := f.RejectLogin
	token := f.Token
	expired := f.Expired
	f.mu.Unlock()

	if reject != "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": reject})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token, "expired": expired})
}

// authorize enforces the literal token value; a Bearer prefix is a mismatch.
func (f *FakeAPI) authorize(w http.ResponseWriter, r *http.Request) bool {
	auth := r.Header.Get("Authorization")

	f.mu.Lock()
	f.LastAuth = auth
	ok := auth == f.Token
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Please sign in again"})

		return false
	}

	return true
}

func (f *FakeAPI) handleCheck(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.CheckCalls++
	f.mu.Unlock()

	if !f.authorize(w, r) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeAPI) handleList(w http.ResponseWriter, r *http.Request) {
	if !f.authorize(w, r) {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page == 0 {
		page = 1
	}

	f.mu.Lock()
	f.ListRequests = append(f.ListRequests, page)
	failure := f.FailList
	products := f.Pages[page]
	total := f.TotalPages

	if total == 0 {
		total = len(f.Pages)
	}
	f.mu.Unlock()

	if failure != "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": failure})

		return
	}

	if products == nil {
		products = []models.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
		"pagination": models.Pagination{
			TotalPages:  total,
			CurrentPage: page,
			HasPre:      page > 1,
			HasNext:     page < total,
		},
	})
}

func (f *FakeAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !f.authorize(w, r) {
		return
	}

	var body struct {
		Data models.ProductDraft `json:"data"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Malformed payload"})

		return
	}

	f.mu.Lock()
	failure := f.FailCreate

	if failure == "" {
		f.Created = append(f.Created, body.Data)
	}
	f.mu.Unlock()

	if failure != "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": failure})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeAPI) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	if !f.authorize(w, r) {
		return
	}

	var body struct {
		Data models.ProductDraft `json:"data"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Malformed payload"})

		return
	}

	f.mu.Lock()
	failure := f.FailUpdate

	if failure == "" {
		f.Updated[id] = body.Data
	}
	f.mu.Unlock()

	if failure != "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": failure})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeAPI) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !f.authorize(w, r) {
		return
	}

	f.mu.Lock()
	failure := f.FailDelete

	if failure == "" {
		f.Deleted = append(f.Deleted, id)
	}
	f.mu.Unlock()

	if failure != "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": failure})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !f.authorize(w, r) {
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Malformed upload"})

		return
	}

	file, header, err := r.FormFile("file-to-upload")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Missing file-to-upload field"})

		return
	}
	defer file.Close()

	f.mu.Lock()
	failure := f.FailUpload
	uploadedURL := f.UploadedURL

	if failure == "" {
		f.Uploaded = append(f.Uploaded, header.Filename)
	}
	f.mu.Unlock()

	if failure != "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": failure})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "imageUrl": uploadedURL})
}

// Snapshot accessors, so tests never race the handler goroutines.

func (f *FakeAPI) ListedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]int{}, f.ListRequests...)
}

func (f *FakeAPI) CreatedDrafts() []models.ProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]models.ProductDraft{}, f.Created...)
}

func (f *FakeAPI) UpdatedDraft(id string) (models.ProductDraft, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.Updated[id]

	return d, ok
}

func (f *FakeAPI) DeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string{}, f.Deleted...)
}

func (f *FakeAPI) UploadedFiles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string{}, f.Uploaded...)
}

func (f *FakeAPI) AuthHeaderSeen() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.LastAuth
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
