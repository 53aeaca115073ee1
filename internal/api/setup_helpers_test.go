package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/db"
	"gorm.io/gorm"
)

type testEnv struct {
	app      *fiber.App
	handler  *Handler
	mailer   *recordingMailer
	database *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "cordial-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mailer := newRecordingMailer()
	handler := NewHandler(database, Config{
		AppURL: "http://localhost:8080",
		Mailer: mailer,
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(handler.SessionGate)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return &testEnv{app: app, handler: handler, mailer: mailer, database: database}
}

func (env *testEnv) request(t *testing.T, method string, target string, payload any, sessionToken string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if sessionToken != "" {
		request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionToken})
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return response
}

func (env *testEnv) rawRequest(t *testing.T, method string, target string, body string, contentType string, sessionToken string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if contentType != "" {
		request.Header.Set(fiber.HeaderContentType, contentType)
	}
	if sessionToken != "" {
		request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionToken})
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	defer response.Body.Close()
	decoded := make(map[string]any)
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	defer response.Body.Close()
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(raw)
}

func sessionCookieValue(response *http.Response) string {
	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// registerAndLogin provisions an account through the public endpoints and
// returns its session token.
func (env *testEnv) registerAndLogin(t *testing.T, name string, email string, password string) string {
	t.Helper()

	response := env.request(t, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, response.StatusCode, readBody(t, response))
	}
	response.Body.Close()

	response = env.request(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	}, "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, response.StatusCode, readBody(t, response))
	}
	response.Body.Close()

	token := sessionCookieValue(response)
	if token == "" {
		t.Fatalf("login %s: no session cookie issued", email)
	}
	return token
}

// firstWorkspaceID triggers the bootstrap listing and returns the default
// workspace's id.
func (env *testEnv) firstWorkspaceID(t *testing.T, sessionToken string) uint {
	t.Helper()

	response := env.request(t, fiber.MethodGet, "/api/workspaces", nil, sessionToken)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("list workspaces: status %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	workspaces, ok := body["workspaces"].([]any)
	if !ok || len(workspaces) == 0 {
		t.Fatalf("list workspaces: unexpected body %v", body)
	}
	workspace := workspaces[0].(map[string]any)
	return uint(workspace["id"].(float64))
}

// recordingMailer captures enqueued messages instead of delivering them.
type recordingMailer struct {
	resetTokens      map[string]string
	invitationTokens map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		resetTokens:      make(map[string]string),
		invitationTokens: make(map[string]string),
	}
}

func (mailer *recordingMailer) EnqueueSendPasswordReset(email string, token string) error {
	mailer.resetTokens[email] = token
	return nil
}

func (mailer *recordingMailer) EnqueueSendInvitation(email string, token string, workspaceName string) error {
	mailer.invitationTokens[email] = token
	return nil
}
