package api

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

// The recovery endpoint must answer byte-for-byte identically whether or
// not the address is registered.
func TestForgotPasswordResponseHidesAccountExistence(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "Alice", "alice@example.com", "password123")

	knownResponse := env.request(t, fiber.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "alice@example.com",
	}, "")
	unknownResponse := env.request(t, fiber.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "nobody@example.com",
	}, "")

	if knownResponse.StatusCode != fiber.StatusOK || unknownResponse.StatusCode != fiber.StatusOK {
		t.Fatalf("statuses = %d and %d, want 200 for both", knownResponse.StatusCode, unknownResponse.StatusCode)
	}
	knownBody := readBody(t, knownResponse)
	unknownBody := readBody(t, unknownResponse)
	if knownBody != unknownBody {
		t.Fatalf("bodies differ:\nknown:   %s\nunknown: %s", knownBody, unknownBody)
	}

	if _, issued := env.mailer.resetTokens["alice@example.com"]; !issued {
		t.Fatal("no reset mail enqueued for the registered account")
	}
	if _, issued := env.mailer.resetTokens["nobody@example.com"]; issued {
		t.Fatal("reset mail enqueued for an unknown address")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	env := newTestEnv(t)
	oldToken := env.registerAndLogin(t, "Bob", "bob@example.com", "old-password")

	response := env.request(t, fiber.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "bob@example.com",
	}, "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("forgot-password: status %d", response.StatusCode)
	}
	response.Body.Close()

	resetToken := env.mailer.resetTokens["bob@example.com"]
	if resetToken == "" {
		t.Fatal("no reset token enqueued")
	}

	response = env.request(t, fiber.MethodPost, "/api/auth/reset-password", fiber.Map{
		"token":           resetToken,
		"password":        "new-password",
		"confirmPassword": "new-password",
	}, "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("reset-password: status %d, body %s", response.StatusCode, readBody(t, response))
	}
	response.Body.Close()

	// The pre-reset session is revoked.
	response = env.request(t, fiber.MethodGet, "/api/auth/user", nil, oldToken)
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("old session after reset: status %d, want 401", response.StatusCode)
	}
	response.Body.Close()

	// Old password out, new password in.
	response = env.request(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "bob@example.com",
		"password": "old-password",
	}, "")
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("old password after reset: status %d, want 401", response.StatusCode)
	}
	response.Body.Close()

	response = env.request(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "bob@example.com",
		"password": "new-password",
	}, "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("new password login: status %d", response.StatusCode)
	}
	response.Body.Close()
}

// An unknown token and an expired one get the same 400 message, so a
// probe cannot tell whether the token ever existed.
func TestResetPasswordUnknownTokenMessage(t *testing.T) {
	env := newTestEnv(t)

	response := env.request(t, fiber.MethodPost, "/api/auth/reset-password", fiber.Map{
		"token":           "0000000000000000000000000000000000000000deadbeef",
		"password":        "new-password",
		"confirmPassword": "new-password",
	}, "")
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("unknown token: status %d, want 400", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["error"] != "reset token is invalid or expired" {
		t.Fatalf("unknown token error = %v", body["error"])
	}
}

func TestResetPasswordValidatesConfirmation(t *testing.T) {
	env := newTestEnv(t)

	response := env.request(t, fiber.MethodPost, "/api/auth/reset-password", fiber.Map{
		"token":           "0000000000000000000000000000000000000000deadbeef",
		"password":        "new-password",
		"confirmPassword": "different-password",
	}, "")
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("mismatched confirmation: status %d, want 400", response.StatusCode)
	}
	body := decodeBody(t, response)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("mismatched confirmation body = %v, want field errors", body)
	}
	if _, flagged := fields["confirmPassword"]; !flagged {
		t.Fatal("confirmPassword field error missing")
	}
}
