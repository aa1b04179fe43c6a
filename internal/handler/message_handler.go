package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sehra/internal/pkg/auth/jwt"
	"sehra/internal/pkg/errs"
	"sehra/internal/pkg/logx"
	"sehra/internal/pkg/resp"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HandleListConversation returns the message history between the bearer and
// the user named in the path, newest first. Paging via ?before=<RFC3339>
// and ?limit=<n>.
func HandleListConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		otherID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil || otherID <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		before := time.Now()
		if beforeStr := r.URL.Query().Get("before"); beforeStr != "" {
			parsed, err := time.Parse(time.RFC3339, beforeStr)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			before = parsed
		}

		limit := int32(defaultHistoryLimit)
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.ParseInt(limitStr, 10, 32)
			if err != nil || parsed <= 0 || parsed > maxHistoryLimit {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			limit = int32(parsed)
		}

		msgs, err := deps.Store.ListConversation(r.Context(), identity.UserID, otherID, before, limit)
		if err != nil {
			logx.Error(err, "conversation fetch failed", "user_id", identity.UserID, "other_id", otherID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": msgs})
	}
}

// HandleUnreadCount returns the bearer's total unread message count.
func HandleUnreadCount(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		count, err := deps.Store.CountUnread(r.Context(), identity.UserID)
		if err != nil {
			logx.Error(err, "unread count failed", "user_id", identity.UserID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"count": count})
	}
}
