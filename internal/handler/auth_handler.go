package handler

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sehra/internal/app/db"
	"sehra/internal/pkg/auth/jwt"
	"sehra/internal/pkg/errs"
	"sehra/internal/pkg/logx"
	"sehra/internal/pkg/req"
	"sehra/internal/pkg/resp"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies directory credentials and issues a session JWT. The
// token is also accepted inside a WebSocket identity claim.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := strings.TrimSpace(strings.ToLower(input.Email))
		if email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		u, hash, err := deps.Store.UserCredentials(r.Context(), email)
		if err != nil {
			logx.Warn("login: user fetch failed", "email", email, "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		payload := &jwt.Payload{
			UserID: u.ID,
			Email:  u.Email,
			Role:   u.Role,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  u,
		})
	}
}

// HandleGetProfile returns the bearer's directory entry.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		u, err := deps.Store.FindUserByID(r.Context(), identity.UserID)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			logx.Error(err, "profile: user fetch failed", "user_id", identity.UserID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": u})
	}
}
