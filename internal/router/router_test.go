package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/app"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/auth"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/config"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/db"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/models"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/oxidb/oxidbtest"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/repository"
)

const (
	testSecret = "router-test-secret"
	frontend   = "https://frontendpaystacktestmode.onrender.com"
)

type testEnv struct {
	server    *httptest.Server
	uploadDir string
	paystack  *httptest.Server
	oxi       *oxidbtest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	oxi := oxidbtest.NewServer(t)
	pool, err := db.NewPool(context.Background(), oxi.Addr(), 1)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	repo := repository.NewOxiSubmissionRepo(pool)
	if err := repo.EnsureCollection(context.Background()); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}

	ps := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test_x" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"status":false,"message":"Invalid key"}`)
			return
		}
		ref := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")
		status := "abandoned"
		if ref == "paid" {
			status = "success"
		}
		io.WriteString(w, `{"status":true,"message":"Verification successful","data":{"status":"`+status+`","reference":"`+ref+`"}}`)
	}))
	t.Cleanup(ps.Close)

	cfg := &config.Config{
		StoreBackend:      config.BackendOxiDB,
		UploadDir:         t.TempDir(),
		JWTSecret:         testSecret,
		PaystackSecretKey: "sk_test_x",
		PaystackBaseURL:   ps.URL,
		CORSOrigins:       config.DefaultCORSOrigins,
		AdminUsername:     "admin",
		AdminPassword:     "password123",
	}
	srv := httptest.NewServer(New(app.NewWithStore(cfg, repo)))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, uploadDir: cfg.UploadDir, paystack: ps, oxi: oxi}
}

func (e *testEnv) do(t *testing.T, method, path, contentType string, body io.Reader, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp, body := e.do(t, "POST", "/api/admin/login", "application/json",
		strings.NewReader(`{"username":"admin","password":"password123"}`), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %s", resp.StatusCode, body)
	}
	var out struct{ Token string }
	if err := json.Unmarshal([]byte(body), &out); err != nil || out.Token == "" {
		t.Fatalf("login body %q: %v", body, err)
	}
	return out.Token
}

func TestSubmitThenListAsAdmin(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)
	mpw.WriteField("email", "a@b.c")
	mpw.WriteField("username", "ann")
	mpw.WriteField("comment", "hello")
	fw, _ := mpw.CreateFormFile("picture", "My Cat.png")
	fw.Write([]byte("PNGDATA"))
	mpw.Close()

	resp, body := env.do(t, "POST", "/api/submissions", mpw.FormDataContentType(), &buf, nil)
	if resp.StatusCode != http.StatusCreated || body != "Submission saved successfully" {
		t.Fatalf("submit: %d %q", resp.StatusCode, body)
	}

	resp, body = env.do(t, "POST", "/api/submissions", "application/json",
		strings.NewReader(`{"email":"d@e.f","username":"dee","comment":"no file"}`), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("json submit: %d %q", resp.StatusCode, body)
	}

	token := env.login(t)
	resp, body = env.do(t, "GET", "/api/submissions", "", nil, http.Header{"Authorization": {"Bearer " + token}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %d %s", resp.StatusCode, body)
	}
	var subs []models.Submission
	if err := json.Unmarshal([]byte(body), &subs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	first, second := subs[0], subs[1]
	if first.Email != "a@b.c" || first.Status != models.StatusPending || first.Picture == nil {
		t.Fatalf("first = %+v", first)
	}
	if !strings.HasSuffix(*first.Picture, "-my-cat.png") {
		t.Errorf("picture name = %q", *first.Picture)
	}
	data, err := os.ReadFile(filepath.Join(env.uploadDir, *first.Picture))
	if err != nil || string(data) != "PNGDATA" {
		t.Errorf("stored file = %q, %v", data, err)
	}
	if second.Picture != nil {
		t.Errorf("second picture = %v, want nil", *second.Picture)
	}
}

func TestListRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/api/submissions", "", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized || !strings.HasPrefix(body, "Access Denied: No Token Provided") {
		t.Errorf("no token: %d %q", resp.StatusCode, body)
	}

	resp, body = env.do(t, "GET", "/api/submissions", "", nil, http.Header{"Authorization": {"Bearer garbage"}})
	if resp.StatusCode != http.StatusBadRequest || !strings.HasPrefix(body, "Invalid Token") {
		t.Errorf("bad token: %d %q", resp.StatusCode, body)
	}

	expired, err := auth.GenerateToken(testSecret, auth.AdminID, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	resp, _ = env.do(t, "GET", "/api/submissions", "", nil, http.Header{"Authorization": {"Bearer " + expired}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expired token: %d", resp.StatusCode)
	}
}

func TestLoginRejected(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, "POST", "/api/admin/login", "application/json",
		strings.NewReader(`{"username":"admin","password":"wrong"}`), nil)
	if resp.StatusCode != http.StatusUnauthorized || body != "Invalid credentials" {
		t.Errorf("login: %d %q", resp.StatusCode, body)
	}
}

func TestVerifyPayment(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/verify-payment", "application/json", strings.NewReader(`{"reference":"paid"}`), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("paid: %d %s", resp.StatusCode, body)
	}
	var ok struct {
		Message string
		Data    struct {
			Data struct{ Status string }
		}
	}
	if err := json.Unmarshal([]byte(body), &ok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ok.Message != "Payment successful" || ok.Data.Data.Status != "success" {
		t.Errorf("paid body = %s", body)
	}

	resp, body = env.do(t, "POST", "/verify-payment", "application/json", strings.NewReader(`{"reference":"pending"}`), nil)
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Payment failed") {
		t.Errorf("unpaid: %d %s", resp.StatusCode, body)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, "OPTIONS", "/api/submissions", "", nil, http.Header{
		"Origin":                        {frontend},
		"Access-Control-Request-Method": {"POST"},
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != frontend {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, "GET", "/api/health", "", nil, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"store":"oxidb"`) {
		t.Errorf("health: %d %s", resp.StatusCode, body)
	}
}

func TestVerifyPaymentLeavesSubmissionsUntouched(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/submissions", "application/json",
		strings.NewReader(`{"email":"a@b.c","username":"ann","comment":"paid later"}`), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: %d %q", resp.StatusCode, body)
	}
	before := env.oxi.Docs(repository.SubmissionsCollection)
	commandsBefore := len(env.oxi.Commands())

	for _, ref := range []string{"paid", "pending", ""} {
		env.do(t, "POST", "/verify-payment", "application/json",
			strings.NewReader(`{"reference":"`+ref+`"}`), nil)
	}

	if after := env.oxi.Docs(repository.SubmissionsCollection); !reflect.DeepEqual(before, after) {
		t.Errorf("submissions changed: before %v, after %v", before, after)
	}
	if cmds := env.oxi.Commands()[commandsBefore:]; len(cmds) != 0 {
		t.Errorf("verify-payment reached the store: %v", cmds)
	}
}
