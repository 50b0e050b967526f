package handlers

import (
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	apierrors "github.com/bigkaa/mygov-admin/internal/api/errors"
)

// Ограничения QR-кода.
const (
	qrDefaultSize = 256
	qrMaxSize     = 1024
	qrMaxData     = 2048
)

// QRCode отдаёт PNG с QR-кодом параметра data (GET /api/qr).
// size — сторона в пикселях, download=1 — отдать как вложение.
func QRCode(w http.ResponseWriter, r *http.Request) {
	data := r.URL.Query().Get("data")
	if data == "" {
		apierrors.ValidationError(w, "Параметр data обязателен")
		return
	}
	if len(data) > qrMaxData {
		apierrors.ValidationError(w, "Параметр data слишком длинный")
		return
	}

	size := qrDefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > qrMaxSize {
			apierrors.ValidationError(w, "Параметр size должен быть от 64 до 1024")
			return
		}
		size = n
	}

	png, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		apierrors.InternalError(w, "Не удалось построить QR-код")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="qr-code.png"`)
	}
	_, _ = w.Write(png)
}
