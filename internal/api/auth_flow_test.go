package api

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/winslowhq/cordial/internal/models"
)

func TestAuthLifecycle(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "Alice", "alice@example.com", "password123")

	response := env.request(t, fiber.MethodGet, "/api/auth/user", nil, token)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("GET /api/auth/user with session: status %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	user := body["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Fatalf("user email = %v", user["email"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("user payload leaked the password hash")
	}

	response = env.request(t, fiber.MethodPost, "/api/auth/logout", nil, token)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("logout: status %d", response.StatusCode)
	}
	response.Body.Close()

	response = env.request(t, fiber.MethodGet, "/api/auth/user", nil, token)
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("GET /api/auth/user after logout: status %d, want 401", response.StatusCode)
	}
	response.Body.Close()
}

// The session probe answers 200 with a null user for anonymous callers,
// while the user endpoint treats the same state as 401.
func TestSessionProbeVersusUserEndpoint(t *testing.T) {
	env := newTestEnv(t)

	response := env.request(t, fiber.MethodGet, "/api/auth/session", nil, "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("anonymous session probe: status %d, want 200", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["user"] != nil {
		t.Fatalf("anonymous session probe user = %v, want null", body["user"])
	}

	response = env.request(t, fiber.MethodGet, "/api/auth/user", nil, "")
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("anonymous user endpoint: status %d, want 401", response.StatusCode)
	}
	response.Body.Close()

	token := env.registerAndLogin(t, "Bob", "bob@example.com", "password123")
	response = env.request(t, fiber.MethodGet, "/api/auth/session", nil, token)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("authenticated session probe: status %d", response.StatusCode)
	}
	body = decodeBody(t, response)
	if body["user"] == nil {
		t.Fatal("authenticated session probe returned null user")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "Carol", "carol@example.com", "password123")

	response := env.request(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "carol@example.com",
		"password": "wrong-password",
	}, "")
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password login: status %d, want 401", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["error"] != "invalid credentials" {
		t.Fatalf("wrong password error = %v", body["error"])
	}
}

func TestRegisterValidatesInputAndDuplicates(t *testing.T) {
	env := newTestEnv(t)

	response := env.request(t, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Dave",
		"email":    "not-an-email",
		"password": "short",
	}, "")
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid register: status %d, want 400", response.StatusCode)
	}
	body := decodeBody(t, response)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("invalid register body = %v, want field errors", body)
	}
	if _, flagged := fields["email"]; !flagged {
		t.Fatal("email field error missing")
	}
	if _, flagged := fields["password"]; !flagged {
		t.Fatal("password field error missing")
	}

	env.registerAndLogin(t, "Erin", "erin@example.com", "password123")
	response = env.request(t, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Erin Again",
		"email":    "Erin@Example.com",
		"password": "password456",
	}, "")
	if response.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", response.StatusCode)
	}
	response.Body.Close()
}

func TestExpiredSessionIsRejectedByAPI(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "Frank", "frank@example.com", "password123")

	if err := env.database.Model(&models.Session{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("expire session: %v", err)
	}

	response := env.request(t, fiber.MethodGet, "/api/auth/user", nil, token)
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expired session: status %d, want 401", response.StatusCode)
	}
	response.Body.Close()
}

func TestLoginRateLimiting(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "Grace", "grace@example.com", "password123")

	var lastStatus int
	for attempt := 0; attempt < loginAttemptsLimit+1; attempt++ {
		response := env.request(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "grace@example.com",
			"password": "wrong-password",
		}, "")
		lastStatus = response.StatusCode
		response.Body.Close()
	}
	if lastStatus != fiber.StatusTooManyRequests {
		t.Fatalf("status after exhausting attempts = %d, want 429", lastStatus)
	}

	// A correct password no longer helps until the window expires.
	response := env.request(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "grace@example.com",
		"password": "password123",
	}, "")
	if response.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("locked-out login: status %d, want 429", response.StatusCode)
	}
	response.Body.Close()
}
