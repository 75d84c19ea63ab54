package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		raw, _ := io.ReadAll(resp.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &out); err != nil {
				t.Fatalf("%s %s: decode %q: %v", method, url, raw, err)
			}
		}
	}
	return resp.StatusCode, out
}

func registerAndLogin(t *testing.T, client *http.Client, baseURL, email string) {
	t.Helper()
	code, _ := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", map[string]string{
		"fullName":        "Integration User",
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", code)
	}

	code, _ = doJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", code)
	}
}

func TestIntegration_RegisterLoginProfileLogout(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	// Unauthenticated access is rejected.
	if code, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/me", nil); code != http.StatusUnauthorized {
		t.Fatalf("me before login: expected 401, got %d", code)
	}

	registerAndLogin(t, client, srv.URL, "integ@example.com")

	code, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/me", nil)
	if code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", code)
	}
	user := body["user"].(map[string]any)
	if user["fullName"] != "Integration User" {
		t.Fatalf("expected fullName 'Integration User', got %v", user["fullName"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("password hash must not be exposed")
	}

	// Mismatched confirmation is a validation error.
	code, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"fullName": "X", "email": "x@example.com", "password": "password123", "confirmPassword": "password124",
	})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatched register: expected 422, got %d", code)
	}

	// Duplicate email conflicts.
	code, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"fullName": "X", "email": "INTEG@example.com", "password": "password123", "confirmPassword": "password123",
	})
	if code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", code)
	}

	code, body = doJSON(t, client, http.MethodPut, srv.URL+"/api/profile", map[string]string{
		"role": "DevOps Engineer", "domain": "Cloud",
	})
	if code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", code)
	}
	if got := body["user"].(map[string]any)["role"]; got != "DevOps Engineer" {
		t.Fatalf("expected role to be updated, got %v", got)
	}

	code, _ = doJSON(t, client, http.MethodPut, srv.URL+"/api/profile", map[string]string{"role": "Wizard"})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid role: expected 422, got %d", code)
	}

	if code, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/logout", nil); code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", code)
	}
	if code, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/me", nil); code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", code)
	}
}

func TestIntegration_TechnicalInterviewFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerAndLogin(t, client, srv.URL, "flow@example.com")

	// Navigation without an interview is lenient.
	code, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/next", nil)
	if code != http.StatusOK || body["active"] != false {
		t.Fatalf("idle next: expected 200 active=false, got %d %v", code, body)
	}
	if code, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/complete", nil); code != http.StatusConflict {
		t.Fatalf("idle complete: expected 409, got %d", code)
	}

	if code, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/interview", map[string]string{"mode": "trivia"}); code != http.StatusUnprocessableEntity {
		t.Fatalf("bad mode: expected 422, got %d", code)
	}

	code, body = doJSON(t, client, http.MethodPost, srv.URL+"/api/interview", map[string]string{"mode": "technical"})
	if code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d", code)
	}
	if body["active"] != true || body["currentIndex"].(float64) != 0 {
		t.Fatalf("start: unexpected session %v", body)
	}

	for i := 0; i < 4; i++ {
		if code, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/answer", map[string]string{"text": "an answer"}); code != http.StatusOK {
			t.Fatalf("answer %d: expected 200, got %d", i, code)
		}
		doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/next", nil)
	}

	_, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/interview", nil)
	if body["isLastQuestion"] != true {
		t.Fatalf("expected to be on the last question, got %v", body)
	}

	doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/skip", nil)

	code, body = doJSON(t, client, http.MethodPost, srv.URL+"/api/interview/complete", nil)
	if code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", code)
	}
	feedback := body["feedback"].(map[string]any)
	if feedback["overallScore"].(float64) != 80 {
		t.Fatalf("expected score 80, got %v", feedback["overallScore"])
	}
	if feedback["scoreBand"] != "Good" {
		t.Fatalf("expected band Good, got %v", feedback["scoreBand"])
	}
	interviewID := body["interview"].(map[string]any)["id"].(string)

	// The session is cleared.
	_, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/interview", nil)
	if body["active"] != false {
		t.Fatalf("expected no active interview after complete, got %v", body)
	}

	_, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/history", nil)
	if body["total"].(float64) != 1 {
		t.Fatalf("expected 1 history entry, got %v", body["total"])
	}
	if got := body["interviews"].([]any)[0].(map[string]any)["id"]; got != interviewID {
		t.Fatalf("expected history entry %s, got %v", interviewID, got)
	}

	_, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/dashboard", nil)
	stats := body["stats"].(map[string]any)
	if stats["completed"].(float64) != 1 || stats["averageScore"].(float64) != 80 {
		t.Fatalf("unexpected dashboard stats %v", stats)
	}

	code, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/results", nil)
	if code != http.StatusOK || body["feedback"].(map[string]any)["overallScore"].(float64) != 80 {
		t.Fatalf("latest results: got %d %v", code, body)
	}

	resp, err := client.Get(srv.URL + "/api/results/" + interviewID + "/report")
	if err != nil {
		t.Fatalf("GET report: %v", err)
	}
	report, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("report: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(report), "Score: 80% (Good)") {
		t.Fatalf("report missing score line:\n%s", report)
	}

	if code, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/results/missing/report", nil); code != http.StatusNotFound {
		t.Fatalf("missing report: expected 404, got %d", code)
	}
}

func TestIntegration_QuestionsByMode(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerAndLogin(t, client, srv.URL, "bank@example.com")

	code, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/questions/behavioral", nil)
	if code != http.StatusOK {
		t.Fatalf("questions: expected 200, got %d", code)
	}
	if n := len(body["questions"].([]any)); n != 5 {
		t.Fatalf("expected 5 behavioral questions, got %d", n)
	}

	if code, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/questions/trivia", nil); code != http.StatusNotFound {
		t.Fatalf("unknown mode: expected 404, got %d", code)
	}
}

func TestIntegration_CoachChat(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerAndLogin(t, client, srv.URL, "coach@example.com")

	code, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/coach/greeting", nil)
	if code != http.StatusOK {
		t.Fatalf("greeting: expected 200, got %d", code)
	}
	if text := body["message"].(map[string]any)["text"].(string); !strings.Contains(text, "Hello Integration User!") {
		t.Fatalf("unexpected greeting %q", text)
	}

	if code, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/coach/messages", map[string]string{"message": "  "}); code != http.StatusUnprocessableEntity {
		t.Fatalf("empty message: expected 422, got %d", code)
	}

	resp, err := client.Post(srv.URL+"/api/coach/messages", "application/json", strings.NewReader(`{"message":"thank you"}`))
	if err != nil {
		t.Fatalf("POST coach message: %v", err)
	}
	stream, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("coach message: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected text/event-stream, got %s", ct)
	}
	out := string(stream)
	for _, want := range []string{"thank you", "coach-typing", "welcome!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("SSE stream missing %q:\n%s", want, out)
		}
	}

	_, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/coach/messages", nil)
	if n := len(body["messages"].([]any)); n != 2 {
		t.Fatalf("expected 2 stored messages, got %d", n)
	}
}

func TestIntegration_QuestionSets(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	if code, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/question-sets", nil); code != http.StatusUnauthorized {
		t.Fatalf("question sets before login: expected 401, got %d", code)
	}

	registerAndLogin(t, client, srv.URL, "sets@example.com")

	code, body := doJSON(t, client, http.MethodGet, srv.URL+"/api/question-sets", nil)
	if code != http.StatusOK {
		t.Fatalf("question sets: expected 200, got %d", code)
	}
	sets := body["sets"].([]any)
	if len(sets) != 3 {
		t.Fatalf("expected 3 sets, got %d", len(sets))
	}
	if got := sets[1].(map[string]any)["category"]; got != "star" {
		t.Fatalf("expected second set to be star, got %v", got)
	}
}
