package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/clinicare/clinic-backend/internal/config"
	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/service"
	"github.com/go-playground/validator/v10"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid signup fields", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Signup(r.Context(), service.SignupInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			http.Error(w, "Email already registered", http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [handlers.Signup] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Token implements the password login flow. Credentials arrive form-encoded
// as username/password; the access token goes back in the body and the
// refresh token only ever travels in the cookie.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	pair, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Same response for unknown email and wrong password.
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "Incorrect username or password", http.StatusUnauthorized)
			return
		}
		log.Printf("ERROR [handlers.Token] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: pair.AccessToken, TokenType: "bearer"})
}

// Refresh rotates the session: the cookie's refresh token is exchanged for a
// brand-new access/refresh pair and the cookie is overwritten.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		// ErrUserNotFound means the account vanished after issuance;
		// the client sees the same 401 either way.
		log.Printf("ERROR [handlers.Refresh] %v", err)
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: pair.AccessToken, TokenType: "bearer"})
}

// Logout clears the refresh cookie. Already-issued access tokens stay valid
// until their own expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies(),
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies(),
	})
}

func (h *AuthHandler) secureCookies() bool {
	return h.cfg.Environment != "development" && h.cfg.Environment != "test"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
