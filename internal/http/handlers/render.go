package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if the middleware attached one
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// Token set into Locals by the CSRF middleware; fall back to the cookie
	// so hidden form fields are never empty.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}
