package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-todo-api/backend/internal/services"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Aa1!aaaa", false},
		{"valid with all classes at max length", "Aa1!aaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"too short", "Aa1!aaa", true},
		{"too long", "Aa1!aaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"missing uppercase", "aa1!aaaa", true},
		{"missing lowercase", "AA1!AAAA", true},
		{"missing digit", "Aa!!aaaa", true},
		{"missing symbol", "Aa1aaaaa", true},
		{"empty", "", true},
		{"letters only", "Aaaaaaaa", true},
		{"scenario password", "Aa1!aaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.ValidatePassword(tt.password)
			if tt.wantErr {
				require.ErrorIs(t, err, services.ErrWeakPassword)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
