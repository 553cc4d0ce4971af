package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/clinicare/clinic-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Signup(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful signup",
			request: map[string]string{
				"email":      "alice@x.com",
				"first_name": "Alice",
				"last_name":  "Smith",
				"password":   "secret123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result map[string]interface{}
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "alice@x.com", result["email"])
				assert.Equal(t, "Alice", result["first_name"])
				// The hash must never leave the server
				assert.NotContains(t, result, "password_hash")
				assert.NotContains(t, result, "PasswordHash")
			},
		},
		{
			name: "missing email",
			request: map[string]string{
				"first_name": "Alice",
				"last_name":  "Smith",
				"password":   "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed email",
			request: map[string]string{
				"email":      "not-an-email",
				"first_name": "Alice",
				"last_name":  "Smith",
				"password":   "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			request: map[string]string{
				"email":      "alice@x.com",
				"first_name": "Alice",
				"last_name":  "Smith",
				"password":   "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":      "existing@x.com",
				"first_name": "Bob",
				"last_name":  "Jones",
				"password":   "secret123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@x.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.URL("/signup"), tt.request)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Token(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().
		WithEmail("login@x.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	t.Run("successful login sets cookie and returns bearer token", func(t *testing.T) {
		resp := testutil.Login(t, ts, user.Email, password)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var tokenResp testutil.TokenResponse
		testutil.AssertJSONResponse(t, resp, &tokenResp)
		assert.NotEmpty(t, tokenResp.AccessToken)
		assert.Equal(t, "bearer", tokenResp.TokenType)

		cookie := testutil.RefreshCookie(t, resp)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, int(ts.Config.RefreshTokenTTL.Seconds()), cookie.MaxAge)
		// The refresh token never appears in the response body
		body := tokenRespAsMap(t, tokenResp)
		assert.NotContains(t, body, "refresh_token")
	})

	t.Run("bad credentials are indistinguishable", func(t *testing.T) {
		wrongPassword := testutil.Login(t, ts, user.Email, "wrongpassword")
		defer wrongPassword.Body.Close()
		unknownUser := testutil.Login(t, ts, "nonexistent@x.com", "anything")
		defer unknownUser.Body.Close()

		// Same status, same header, same body for both failure modes
		assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)
		assert.Equal(t, "Bearer", wrongPassword.Header.Get("WWW-Authenticate"))
		assert.Equal(t, "Bearer", unknownUser.Header.Get("WWW-Authenticate"))

		first, err := io.ReadAll(wrongPassword.Body)
		require.NoError(t, err)
		second, err := io.ReadAll(unknownUser.Body)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))

		assert.Empty(t, wrongPassword.Cookies())
		assert.Empty(t, unknownUser.Cookies())
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := testutil.Login(t, ts, user.Email, "")
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func tokenRespAsMap(t *testing.T, tokenResp testutil.TokenResponse) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(tokenResp)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestAuthHandler_Refresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("refresh@x.com").
		Build(t, ts.DB.DB)

	t.Run("missing cookie", func(t *testing.T) {
		resp, err := http.Post(ts.URL("/token/refresh"), "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("invalid cookie", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL("/token/refresh"), nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "not.a.token"})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("rotation issues a fresh pair", func(t *testing.T) {
		login := testutil.Login(t, ts, "refresh@x.com", password)
		defer login.Body.Close()
		testutil.AssertStatusCode(t, login, http.StatusOK)

		var loginResp testutil.TokenResponse
		testutil.AssertJSONResponse(t, login, &loginResp)
		loginCookie := testutil.RefreshCookie(t, login)

		req, err := http.NewRequest(http.MethodPost, ts.URL("/token/refresh"), nil)
		require.NoError(t, err)
		req.AddCookie(loginCookie)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var refreshResp testutil.TokenResponse
		testutil.AssertJSONResponse(t, resp, &refreshResp)
		rotatedCookie := testutil.RefreshCookie(t, resp)

		assert.NotEqual(t, loginResp.AccessToken, refreshResp.AccessToken)
		assert.NotEqual(t, loginCookie.Value, rotatedCookie.Value)
		assert.True(t, rotatedCookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, rotatedCookie.SameSite)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Post(ts.URL("/logout"), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	cookie := testutil.RefreshCookie(t, resp)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

// TestAuthFlow_EndToEnd walks the whole session lifecycle: signup, login,
// protected access, rotation, and the documented no-revocation behavior.
func TestAuthFlow_EndToEnd(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// Signup alice
	signup := postJSON(t, ts.URL("/signup"), map[string]string{
		"email":      "alice@x.com",
		"first_name": "Alice",
		"last_name":  "Smith",
		"password":   "secret123",
	})
	defer signup.Body.Close()
	testutil.AssertStatusCode(t, signup, http.StatusCreated)

	// Login
	login := testutil.Login(t, ts, "alice@x.com", "secret123")
	defer login.Body.Close()
	testutil.AssertStatusCode(t, login, http.StatusOK)

	var loginResp testutil.TokenResponse
	testutil.AssertJSONResponse(t, login, &loginResp)
	accessA1 := loginResp.AccessToken
	cookieR1 := testutil.RefreshCookie(t, login)

	// Protected route with A1 resolves to alice
	listNotes := func(token string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, ts.URL("/consultation"), nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	protected := listNotes(accessA1)
	defer protected.Body.Close()
	testutil.AssertStatusCode(t, protected, http.StatusOK)

	// Refresh with R1 yields a distinct pair
	refreshReq, err := http.NewRequest(http.MethodPost, ts.URL("/token/refresh"), nil)
	require.NoError(t, err)
	refreshReq.AddCookie(cookieR1)

	refresh, err := http.DefaultClient.Do(refreshReq)
	require.NoError(t, err)
	defer refresh.Body.Close()
	testutil.AssertStatusCode(t, refresh, http.StatusOK)

	var refreshResp testutil.TokenResponse
	testutil.AssertJSONResponse(t, refresh, &refreshResp)
	accessA2 := refreshResp.AccessToken
	assert.NotEqual(t, accessA1, accessA2)

	// Current behavior, asserted on purpose: A1 stays valid after A2 is
	// issued because no server-side revocation exists. It only dies when
	// its own expiry passes.
	stillValid := listNotes(accessA1)
	defer stillValid.Body.Close()
	testutil.AssertStatusCode(t, stillValid, http.StatusOK)

	// Missing and garbage tokens are both a plain 401
	noToken, err := http.Get(ts.URL("/consultation"))
	require.NoError(t, err)
	defer noToken.Body.Close()
	testutil.AssertStatusCode(t, noToken, http.StatusUnauthorized)

	garbage := listNotes("garbage")
	defer garbage.Body.Close()
	testutil.AssertStatusCode(t, garbage, http.StatusUnauthorized)
}
