package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/clinicare/clinic-backend/internal/auth"
	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/repository/postgres"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email     string
	firstName string
	lastName  string
	password  string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:     fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		firstName: "Test",
		lastName:  "User",
		password:  "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the first and last name
func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hash, err := auth.NewArgon2idHasher().Hash(b.password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Email:        b.email,
		FirstName:    b.firstName,
		LastName:     b.lastName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the /token and /token/refresh payloads
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login performs the form-encoded password login and returns the raw
// response so callers can inspect cookies and headers.
func Login(t *testing.T, ts *TestServer, email, password string) *http.Response {
	t.Helper()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	resp, err := http.Post(ts.URL("/token"), "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	return resp
}

// BuildAndAuthenticate creates a user in the database, logs in through the
// API and returns the user together with a valid access token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	resp := Login(t, ts, user.Email, password)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	AssertJSONResponse(t, resp, &tokenResp)

	return user, tokenResp.AccessToken
}

// RefreshCookie extracts the refresh_token cookie from a response, failing
// the test when it is absent.
func RefreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refresh_token" {
			return cookie
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

// SeedCodes inserts a small diagnosis-code catalog for tests.
func SeedCodes(t *testing.T, db *gorm.DB) []*domain.Code {
	t.Helper()

	codes := []*domain.Code{
		{ChapterCode: "A", CategoryCode: "01", SubcategoryCode: "X", Title: "Typhoid and paratyphoid fevers", Description: "Infections caused by Salmonella typhi"},
		{ChapterCode: "A", CategoryCode: "01", SubcategoryCode: "1", Title: "Paratyphoid fever A", Description: "Infection caused by Salmonella paratyphi A"},
		{ChapterCode: "A", CategoryCode: "02", SubcategoryCode: "X", Title: "Other salmonella infections", Description: "Salmonella infections other than typhoid"},
		{ChapterCode: "B", CategoryCode: "01", SubcategoryCode: "X", Title: "Varicella", Description: "Chickenpox"},
	}

	if err := postgres.NewCodeRepository(db).UpsertMany(context.Background(), codes); err != nil {
		t.Fatalf("failed to seed codes: %v", err)
	}

	return codes
}
