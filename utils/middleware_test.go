package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildMiddlewareTestApp wires the real role middlewares in front of a stub
// handler so RBAC can be exercised without a database.
func buildMiddlewareTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(AccessToken) })

	ok := func(ctx iris.Context) {
		ctx.JSON(iris.Map{"success": true, "userID": ctx.Values().Get("userID")})
	}

	app.Get("/admin-only", accessTokenVerifierMiddleware, AdminOnlyMiddleware, ok)
	app.Get("/owner-only", accessTokenVerifierMiddleware, VenueOwnerOnlyMiddleware, ok)
	app.Get("/me", accessTokenVerifierMiddleware, UserIDFromTokenMiddleware, ok)
	app.Build()
	return app
}

func signMiddlewareTestToken(id uint, role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(AccessToken{ID: id, Role: role})
	return string(token)
}

func doGet(app *iris.Application, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestAdminOnlyMiddleware(t *testing.T) {
	app := buildMiddlewareTestApp()

	if resp := doGet(app, "/admin-only", ""); resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}
	if resp := doGet(app, "/admin-only", signMiddlewareTestToken(1, "player")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for player role, got %d", resp.Code)
	}
	if resp := doGet(app, "/admin-only", signMiddlewareTestToken(1, "venue_owner")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for venue_owner role, got %d", resp.Code)
	}
	if resp := doGet(app, "/admin-only", signMiddlewareTestToken(1, "admin")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp.Code)
	}
	if resp := doGet(app, "/admin-only", signMiddlewareTestToken(1, "super_admin")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin role, got %d", resp.Code)
	}
}

func TestVenueOwnerOnlyMiddleware(t *testing.T) {
	app := buildMiddlewareTestApp()

	if resp := doGet(app, "/owner-only", signMiddlewareTestToken(2, "player")); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for player role, got %d", resp.Code)
	}
	if resp := doGet(app, "/owner-only", signMiddlewareTestToken(2, "venue_owner")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for venue_owner role, got %d", resp.Code)
	}
	if resp := doGet(app, "/owner-only", signMiddlewareTestToken(2, "admin")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp.Code)
	}
}

func TestUserIDFromTokenMiddleware(t *testing.T) {
	app := buildMiddlewareTestApp()

	resp := doGet(app, "/me", signMiddlewareTestToken(42, "player"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
