package services

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "Alice@Example.COM", want: "alice@example.com"},
		{raw: "  bob@example.com  ", want: "bob@example.com"},
		{raw: "", want: ""},
	}

	for _, test := range tests {
		if got := NormalizeEmail(test.raw); got != test.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", test.raw, got, test.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "alice@example.com", wantErr: false},
		{name: "uppercase and padding", email: "  Alice@Example.COM  ", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
		{name: "no at sign", email: "alice.example.com", wantErr: true},
		{name: "no domain", email: "alice@", wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateEmail(test.email)
			if (err != nil) != test.wantErr {
				t.Fatalf("ValidateEmail(%q) = %v, wantErr %v", test.email, err, test.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "long enough", password: "password123", wantErr: false},
		{name: "exactly minimum", password: "12345678", wantErr: false},
		{name: "one short", password: "1234567", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePassword(test.password)
			if (err != nil) != test.wantErr {
				t.Fatalf("ValidatePassword(%q) = %v, wantErr %v", test.password, err, test.wantErr)
			}
		})
	}
}
