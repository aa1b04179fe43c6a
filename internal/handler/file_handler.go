package handler

import (
	"net/http"
	"strings"

	"sehra/internal/app/message"
	"sehra/internal/pkg/auth/jwt"
	"sehra/internal/pkg/errs"
	"sehra/internal/pkg/logx"
	"sehra/internal/pkg/randx"
	"sehra/internal/pkg/req"
	"sehra/internal/pkg/resp"
)

type PresignUploadInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignUpload validates the declared attachment and returns a
// presigned PUT URL plus the object key the client should send as the
// message body (type "attachment").
func HandlePresignUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignUploadInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := message.ValidateFileSize(input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := message.ValidateFileType(input.FileName, input.MimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		key := randx.AttachmentKey(identity.UserID, input.FileName)

		url, err := deps.StorageService.PresignUpload(
			r.Context(),
			key,
			strings.ToLower(input.MimeType),
			input.FileSize,
			message.PresignedURLDuration,
		)
		if err != nil {
			logx.Error(err, "presign upload failed", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"uploadUrl": url,
			"fileKey":   key,
		})
	}
}

// HandlePresignDownload returns a presigned GET URL for an attachment key.
func HandlePresignDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		key := r.URL.Query().Get("key")
		if !strings.HasPrefix(key, "attachments/") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		url, err := deps.StorageService.PresignDownload(r.Context(), key, message.PresignedURLDuration)
		if err != nil {
			logx.Error(err, "presign download failed", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"downloadUrl": url,
		})
	}
}
