package handlers

import (
	"errors"

	"renusboutique/internal/log"
	"renusboutique/internal/services"
	"renusboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// ensureSID tags the browser with a session cookie used for audit-log
// correlation.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// LoginForm shows the email step, or the code step when a code is already in
// flight.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if h.Auth.IsAuthenticated() {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{
		"Sent":  h.Auth.VerificationSent(),
		"Email": h.Auth.VerificationEmail(),
	})
}

// SendCode handles the email step: validate, then ask the auth service for a
// one-time code.
func (h *AuthHandler) SendCode(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		log.Security(c, "auth.code.request.fail", map[string]any{"reason": "bad_email_format"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "login", fiber.Map{"Sent": false, "Err": "Please enter a valid email address"})
	}

	msg, err := h.Auth.RequestCode(email)
	if err != nil {
		log.Error(c, "auth.code.request.error", err, map[string]any{"email": email})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "login", fiber.Map{"Sent": false, "Err": "Failed to send verification code"})
	}

	log.Audit(c, "auth.code.requested", map[string]any{"email": email, "sid": sid})
	return render(c, "login", fiber.Map{"Sent": true, "Email": email, "Msg": msg})
}

// Verify handles the code step. A wrong code re-renders the code step with
// the ticket intact so the visitor may retry.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	sid := ensureSID(c)
	code, ok := validate.Code(c.FormValue("code"))
	if !ok {
		log.Security(c, "auth.verify.fail", map[string]any{"reason": "bad_code_format"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "login", fiber.Map{
			"Sent": true, "Email": h.Auth.VerificationEmail(),
			"Err": "Enter the 6-digit code from your email",
		})
	}

	u, err := h.Auth.VerifyCode(code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingCode):
			return c.Redirect("/login")
		case errors.Is(err, services.ErrInvalidCode):
			log.Security(c, "auth.verify.fail", map[string]any{"email": h.Auth.VerificationEmail(), "sid": sid})
			c.Status(fiber.StatusUnauthorized)
			return render(c, "login", fiber.Map{
				"Sent": true, "Email": h.Auth.VerificationEmail(),
				"Err": "Invalid code. Please try again.",
			})
		default:
			log.Error(c, "auth.verify.error", err, nil)
			c.Status(fiber.StatusInternalServerError)
			return render(c, "login", fiber.Map{
				"Sent": true, "Email": h.Auth.VerificationEmail(),
				"Err": "Something went wrong. Please try again.",
			})
		}
	}

	log.Audit(c, "auth.verify.success", map[string]any{"email": u.Email, "sid": sid})
	return c.Redirect("/")
}

// Resend issues a fresh code for the email already on the ticket.
func (h *AuthHandler) Resend(c *fiber.Ctx) error {
	email := h.Auth.VerificationEmail()
	if email == "" {
		return c.Redirect("/login")
	}
	if _, err := h.Auth.RequestCode(email); err != nil {
		log.Error(c, "auth.code.resend.error", err, map[string]any{"email": email})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "login", fiber.Map{"Sent": true, "Email": email, "Err": "Failed to resend code"})
	}
	log.Audit(c, "auth.code.resent", map[string]any{"email": email})
	return render(c, "login", fiber.Map{"Sent": true, "Email": email, "Msg": "New verification code sent!"})
}

// Reset abandons the pending verification so a different email can be used.
func (h *AuthHandler) Reset(c *fiber.Ctx) error {
	h.Auth.ResetVerification()
	log.Info(c, "auth.verify.reset", nil)
	return c.Redirect("/login")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Auth.Logout()
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
