package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "password123", user.Password)
		assert.Empty(t, user.HashedPassword)
	})

	t.Run("multibyte name within the character limit", func(t *testing.T) {
		t.Parallel()

		// 200 characters but 600 bytes; the name bound counts characters.
		_, err := NewUser(strings.Repeat("あ", 200), "alice@example.com", "password123")
		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty name",
			userName: "",
			email:    "alice@example.com",
			password: "password123",
			wantErr:  ErrEmptyName,
		},
		{
			name:     "empty email",
			userName: "Alice",
			email:    "",
			password: "password123",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			userName: "Alice",
			email:    "alice.example.com",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			userName: "Alice",
			email:    "alice@localhost",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password too short",
			userName: "Alice",
			email:    "alice@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			userName: "Alice",
			email:    "alice@example.com",
			password: strings.Repeat("p", 73),
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "multibyte name over max length",
			userName: strings.Repeat("あ", 256),
			email:    "alice@example.com",
			password: "password123",
			wantErr:  ErrNameTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewUser(tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from storage has a hash but no plaintext password.
	user, err := NewUser("Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
