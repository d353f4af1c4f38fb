package auth

import "github.com/go-chi/chi/v5"

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/registration", h.registrationHandler)
		r.Post("/login", h.loginHandler)
		r.Post("/verify-otp", h.verifyOtpHandler)
		r.Get("/refresh-token", h.refreshTokenHandler)
	})
}
