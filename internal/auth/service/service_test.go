package service

import (
	"context"
	"testing"
	"time"

	"fashionos_backend/internal/auth/password"
	"fashionos_backend/internal/auth/repository"
	"fashionos_backend/platform/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeUserReader struct {
	users map[string]repository.User
}

func (f *fakeUserReader) GetByEmail(_ context.Context, email string) (repository.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserReader) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }

func TestSignInIssuesAccessToken(t *testing.T) {
	hash, err := password.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	userID := uuid.New()
	repo := &fakeUserReader{users: map[string]repository.User{
		"organizer@fashionos.test": {
			ID:           userID,
			Email:        "organizer@fashionos.test",
			PasswordHash: hash,
			UserType:     "organizer",
			IsActive:     true,
		},
	}}

	svc := New(repo, testConfig{}, nil)
	result, err := svc.SignIn(context.Background(), "organizer@fashionos.test", "correct-horse-battery")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	parsed, err := jwt.Parse(result.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != userID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], userID)
	}
	if claims["role"] != "organizer" {
		t.Errorf("role = %v, want organizer", claims["role"])
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	hash, _ := password.Hash("right-password")
	repo := &fakeUserReader{users: map[string]repository.User{
		"user@fashionos.test": {
			ID:           uuid.New(),
			Email:        "user@fashionos.test",
			PasswordHash: hash,
			UserType:     "user",
			IsActive:     true,
		},
		"disabled@fashionos.test": {
			ID:           uuid.New(),
			Email:        "disabled@fashionos.test",
			PasswordHash: hash,
			UserType:     "user",
			IsActive:     false,
		},
	}}
	svc := New(repo, testConfig{}, nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "user@fashionos.test", "wrong-password"},
		{"unknown email", "nobody@fashionos.test", "right-password"},
		{"disabled account", "disabled@fashionos.test", "right-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(context.Background(), tt.email, tt.password)
			if !apperr.Is(err, apperr.KindUnauthorized) {
				t.Fatalf("err = %v, want unauthorized", err)
			}
			if err.Error() != "invalid credentials" {
				t.Errorf("error message %q leaks detail", err.Error())
			}
		})
	}
}
