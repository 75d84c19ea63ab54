package handler_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/interview-prep/internal/handler"
	"github.com/msomdec/interview-prep/internal/questionbank"
	"github.com/msomdec/interview-prep/internal/repository/snapshot"
	"github.com/msomdec/interview-prep/internal/repository/sqlite"
	"github.com/msomdec/interview-prep/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

func newTestServices(t *testing.T) (*sqlite.DB, *service.AuthService, *service.InterviewService, *service.CoachService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users, err := snapshot.Open(context.Background(), db.Snapshots())
	if err != nil {
		t.Fatalf("open user store: %v", err)
	}

	return db,
		service.NewAuthService(users, testJWTSecret, 4),
		service.NewInterviewService(questionbank.Default(), users, nil),
		service.NewCoachService(sqlite.NewChatRepository(db), nil, 10*time.Millisecond, nil)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, auth, interviews, coach := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, db, auth, interviews, coach, nil, nil, false)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}
