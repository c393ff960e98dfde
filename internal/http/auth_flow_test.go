package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"renusboutique/internal/config"
	"renusboutique/internal/http/handlers"
	"renusboutique/internal/repos"
	"renusboutique/internal/services"
)

// Minimal app mirroring the production wiring, with zero auth delays.
func newTestApp(t *testing.T) (*fiber.App, *services.AuthService, *repos.SessionRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sessionRepo := repos.NewSessionRepo(db)
	authSvc := services.NewAuthService(sessionRepo)
	authSvc.Delay = func(time.Duration) {}
	authSvc.Notify = func(string, string) {}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if u := authSvc.CurrentUser(); u != nil {
			c.Locals("user", u)
		}
		return c.Next()
	})

	deps, err := handlers.NewDeps(db, config.Config{DBDSN: ":memory:"}, authSvc)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	app.Get("/", deps.HomeHandler.Home)
	app.Get("/category/:id", deps.HomeHandler.Category)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login/code", deps.AuthHandler.SendCode)
	app.Post("/login/verify", deps.AuthHandler.Verify)
	app.Post("/login/resend", deps.AuthHandler.Resend)
	app.Post("/login/reset", deps.AuthHandler.Reset)
	app.Post("/logout", deps.AuthHandler.Logout)

	return app, authSvc, sessionRepo
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func postForm(t *testing.T, app *fiber.App, path, csrfTok, body string) *http.Response {
	t.Helper()
	form := "csrf=" + csrfTok
	if body != "" {
		form += "&" + body
	}
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestLoginCodeFlow(t *testing.T) {
	app, authSvc, sessionRepo := newTestApp(t)

	var sentCode string
	authSvc.Notify = func(_, code string) { sentCode = code }

	// fetch csrf token from the login form
	respLogin, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	// bad email -> 400, nothing requested
	resp := postForm(t, app, "/login/code", csrfTok, "email=not-an-email")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad email expected 400, got %d", resp.StatusCode)
	}
	if sentCode != "" {
		t.Fatal("no code should have been issued")
	}

	// good email -> code step rendered, a code was observed
	resp = postForm(t, app, "/login/code", csrfTok, "email=priya@example.com")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send code expected 200, got %d", resp.StatusCode)
	}
	if sentCode == "" {
		t.Fatal("expected a code on the delivery channel")
	}

	// wrong code -> 401, ticket kept
	wrong := "000000"
	if wrong == sentCode {
		wrong = "000001"
	}
	resp = postForm(t, app, "/login/verify", csrfTok, "code="+wrong)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong code expected 401, got %d", resp.StatusCode)
	}
	if !authSvc.VerificationSent() {
		t.Fatal("ticket must survive a mismatch")
	}

	// right code -> redirect home, authenticated, session persisted
	resp = postForm(t, app, "/login/verify", csrfTok, "code="+sentCode)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("verify expected redirect, got %d", resp.StatusCode)
	}
	if !authSvc.IsAuthenticated() || authSvc.CurrentUser().Name != "priya" {
		t.Fatalf("bad auth state: %+v", authSvc.CurrentUser())
	}
	if b, _ := sessionRepo.Load(); b == nil {
		t.Fatal("session slot not written")
	}

	// home greets the user
	respHome, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(respHome.Body)
	if !strings.Contains(string(body), "priya") {
		t.Fatal("home page does not show the signed-in user")
	}

	// logout erases the slot; a fresh rehydrate stays anonymous
	resp = postForm(t, app, "/logout", csrfTok, "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout expected redirect, got %d", resp.StatusCode)
	}
	if b, _ := sessionRepo.Load(); b != nil {
		t.Fatal("session slot not erased on logout")
	}
	fresh := services.NewAuthService(sessionRepo)
	fresh.Rehydrate()
	if fresh.IsAuthenticated() {
		t.Fatal("rehydrate after logout must be anonymous")
	}
}

func TestVerifyValidation(t *testing.T) {
	app, authSvc, _ := newTestApp(t)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	postForm(t, app, "/login/code", csrfTok, "email=a@b.com")

	// malformed code input is a caller-level validation error: 400, no state change
	resp := postForm(t, app, "/login/verify", csrfTok, "code=12ab")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short code expected 400, got %d", resp.StatusCode)
	}
	if !authSvc.VerificationSent() {
		t.Fatal("validation failure must not consume the ticket")
	}

	// verify with no pending ticket redirects back to the email step
	authSvc.ResetVerification()
	resp = postForm(t, app, "/login/verify", csrfTok, "code=123456")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("no-ticket verify expected redirect, got %d", resp.StatusCode)
	}
}

func TestResendAndReset(t *testing.T) {
	app, authSvc, _ := newTestApp(t)

	var codes []string
	authSvc.Notify = func(_, code string) { codes = append(codes, code) }

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respLogin, "csrf_")

	postForm(t, app, "/login/code", csrfTok, "email=a@b.com")
	resp := postForm(t, app, "/login/resend", csrfTok, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resend expected 200, got %d", resp.StatusCode)
	}
	if len(codes) != 2 {
		t.Fatalf("want 2 issued codes, got %d", len(codes))
	}
	if authSvc.VerificationEmail() != "a@b.com" {
		t.Fatal("resend must keep the ticket email")
	}

	// resend with nothing pending just bounces to the form
	authSvc.ResetVerification()
	resp = postForm(t, app, "/login/resend", csrfTok, "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("idle resend expected redirect, got %d", resp.StatusCode)
	}

	// reset returns to the email step
	postForm(t, app, "/login/code", csrfTok, "email=b@c.com")
	resp = postForm(t, app, "/login/reset", csrfTok, "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("reset expected redirect, got %d", resp.StatusCode)
	}
	if authSvc.VerificationSent() {
		t.Fatal("reset must clear the ticket")
	}
}
