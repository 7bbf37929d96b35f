package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      Authenticator
}

func newAuthHandler(auth Authenticator) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login exchanges the admin password for a token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Admin password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Password is required"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid password"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req, "login"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		token, err := h.auth.IssueToken(req.Password)
		if err != nil {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Failed admin login")
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Message: "Login successful", Token: token})
	}
}
