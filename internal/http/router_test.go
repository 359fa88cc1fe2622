package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"promptforge/internal/enhancer"
	"promptforge/internal/enhancer/mocks"
	"promptforge/internal/storage"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	prompts := storage.NewSavedPromptRepo(db)
	return &Deps{
		Enhancer:    mocks.NewMockService(ctrl),
		Cache:       enhancer.NewCache(),
		Collections: storage.NewCollectionRepo(db, prompts),
		Prompts:     prompts,
		DB:          db,
	}
}

func TestNewRouter(t *testing.T) {
	router := NewRouter(testDeps(t))
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router := NewRouter(testDeps(t))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/enhance exists",
			method:     http.MethodPost,
			path:       "/api/enhance",
			wantStatus: http.StatusBadRequest, // Bad request due to empty body, but route exists
		},
		{
			name:       "GET /api/collections",
			method:     http.MethodGet,
			path:       "/api/collections",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/prompts",
			method:     http.MethodGet,
			path:       "/api/prompts",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/enhance method not allowed",
			method:     http.MethodGet,
			path:       "/api/enhance",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/enhance", nil)
	req.Header.Set("Origin", "chrome-extension://abcdef")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK && w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 200 or 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("preflight response missing Access-Control-Allow-Origin")
	}
}
