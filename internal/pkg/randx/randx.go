/*
Package randx generates identifiers used by the realtime gateway and the
attachment storage layer.
*/
package randx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ConnectionID generates a UUID v4 string identifying one live WebSocket connection.
func ConnectionID() string {
	return uuid.New().String()
}

// AttachmentKey builds the object-storage key for an uploaded attachment:
// attachments/<userID>/<uuid><ext>. The extension is taken from fileName and
// lowercased; the original name never reaches the bucket.
func AttachmentKey(userID int64, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("attachments/%d/%s%s", userID, uuid.New().String(), ext)
}
