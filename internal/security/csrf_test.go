package security

import (
	"errors"
	"testing"

	"gsi-session/internal/domain"
)

func TestValidateDoubleSubmit(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		cookie  string
		wantErr error
	}{
		{"matching", "abc", "abc", nil},
		{"matching_long", "0f1e2d3c4b5a69788796a5b4c3d2e1f0", "0f1e2d3c4b5a69788796a5b4c3d2e1f0", nil},
		{"mismatch", "xyz", "abc", domain.ErrCSRFMismatch},
		{"prefix", "ab", "abc", domain.ErrCSRFMismatch},
		{"case_differs", "ABC", "abc", domain.ErrCSRFMismatch},
		{"missing_body", "", "abc", domain.ErrCSRFMissingBodyToken},
		{"missing_cookie", "abc", "", domain.ErrCSRFMissingCookieToken},
		{"both_missing", "", "", domain.ErrCSRFMissingCookieToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDoubleSubmit(tt.body, tt.cookie)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateDoubleSubmit() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDoubleSubmit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDoubleSubmit_Symmetric(t *testing.T) {
	pairs := [][2]string{{"a", "b"}, {"token-1", "token-2"}, {" ", "  "}}

	for _, p := range pairs {
		if err := ValidateDoubleSubmit(p[0], p[1]); err == nil {
			t.Errorf("ValidateDoubleSubmit(%q, %q) = nil, want error", p[0], p[1])
		}
		if err := ValidateDoubleSubmit(p[1], p[0]); err == nil {
			t.Errorf("ValidateDoubleSubmit(%q, %q) = nil, want error", p[1], p[0])
		}
		if err := ValidateDoubleSubmit(p[0], p[0]); err != nil {
			t.Errorf("ValidateDoubleSubmit(%q, %q) = %v, want nil", p[0], p[0], err)
		}
	}
}
