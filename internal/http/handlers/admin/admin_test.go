package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/oauth"
	"github.com/ratna-shop/internal/provider"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type stubVerifier struct {
	identity *oauth.Identity
	err      error
}

func (v *stubVerifier) Provider() string { return constants.IdentityProviderGoogle }

func (v *stubVerifier) Verify(ctx context.Context, token string) (*oauth.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func setupOAuthLoginTest(t *testing.T, verifier oauth.Verifier) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.User{}, &models.UserIdentity{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "admin-secret"
	cfg.JWT.ExpireHours = 1
	cfg.UserJWT.SecretKey = "user-secret"
	cfg.UserJWT.ExpireHours = 1

	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)
	identityRepo := repository.NewUserIdentityRepository(db)
	authService := service.NewAuthService(cfg, adminRepo)
	userAuth := service.NewUserAuthService(cfg, userRepo)
	oauthService := service.NewOAuthService(db, []oauth.Verifier{verifier}, adminRepo, userRepo, identityRepo, authService, userAuth)

	return New(&provider.Container{Config: cfg, OAuthService: oauthService}), db
}

func postOAuthLogin(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/oauth/login", h.OAuthLogin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/oauth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestOAuthLoginSignsAdminIn(t *testing.T) {
	verifier := &stubVerifier{identity: &oauth.Identity{
		Provider:  constants.IdentityProviderGoogle,
		SubjectID: "sub-42",
		Email:     "ops@ratna.example",
	}}
	h, db := setupOAuthLoginTest(t, verifier)
	if err := db.Create(&models.Admin{Username: "ops", Email: "ops@ratna.example", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	w := postOAuthLogin(t, h, `{"provider":"google","credential":"tok"}`)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Token string `json:"token"`
			Admin struct {
				Username string `json:"username"`
			} `json:"admin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, w.Body.String())
	}
	if resp.Data.Token == "" {
		t.Fatalf("token should not be empty")
	}
	if resp.Data.Admin.Username != "ops" {
		t.Fatalf("username want ops got %s", resp.Data.Admin.Username)
	}
}

func TestOAuthLoginNoUserFallback(t *testing.T) {
	verifier := &stubVerifier{identity: &oauth.Identity{
		Provider:  constants.IdentityProviderGoogle,
		SubjectID: "sub-43",
		Email:     "shopper@ratna.example",
	}}
	h, db := setupOAuthLoginTest(t, verifier)
	// A customer with the matching email must not sign in here.
	if err := db.Create(&models.User{Email: "shopper@ratna.example", PasswordHash: "x", Status: constants.UserStatusActive}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	w := postOAuthLogin(t, h, `{"provider":"google","credential":"tok"}`)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("status_code want %d got %d", response.CodeNotFound, resp.StatusCode)
	}
}

func TestOAuthLoginInvalidCredential(t *testing.T) {
	verifier := &stubVerifier{err: oauth.ErrTokenInvalid}
	h, _ := setupOAuthLoginTest(t, verifier)

	w := postOAuthLogin(t, h, `{"provider":"google","credential":"bad"}`)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != response.CodeUnauthorized {
		t.Fatalf("status_code want %d got %d", response.CodeUnauthorized, resp.StatusCode)
	}
}
