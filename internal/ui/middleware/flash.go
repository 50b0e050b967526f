package middleware

import (
	"context"
	"strings"
	"time"
)

// flashCookie — cookie одноразового сообщения.
const flashCookie = "flash"

// flashTTL — время жизни сообщения между redirect и показом.
const flashTTL = time.Minute

// Виды сообщений.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash — сообщение, показываемое на следующей странице.
type Flash struct {
	Kind    string
	Message string
}

// SetFlash сохраняет сообщение для следующего запроса.
func SetFlash(ctx context.Context, kind, message string) {
	storage := StorageFromContext(ctx)
	if storage == nil {
		return
	}
	_ = storage.Set(flashCookie, kind+"|"+message, flashTTL)
}

// PopFlash извлекает и удаляет сообщение. ok=false — сообщения нет.
func PopFlash(ctx context.Context) (Flash, bool) {
	storage := StorageFromContext(ctx)
	if storage == nil {
		return Flash{}, false
	}
	raw, ok := storage.Pop(flashCookie)
	if !ok {
		return Flash{}, false
	}
	kind, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return Flash{}, false
	}
	return Flash{Kind: kind, Message: message}, true
}
