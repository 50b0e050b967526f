// Пакет auth — хранение сессии панели в зашифрованных cookies браузера.
// Каждое значение шифруется AES-256-GCM, cookie недоступны из JavaScript.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// CookiePath — путь всех cookies панели.
const CookiePath = "/"

// SessionManager — шифрование значений cookies панели.
type SessionManager struct {
	// gcm — AEAD cipher для шифрования/дешифрования.
	gcm cipher.AEAD
	// secure — использовать Secure flag для cookie (true для HTTPS).
	secure bool
}

// NewSessionManager создаёт новый менеджер сессий.
// key — 32-байтовый ключ для AES-256-GCM.
// Если key пустой — генерируется случайный ключ (непостоянный между рестартами).
func NewSessionManager(key string, secure bool) (*SessionManager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		// base64-ключ ровно на 32 байта, иначе SHA-256 от строки
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &SessionManager{
		gcm:    gcm,
		secure: secure,
	}, nil
}

// Encrypt шифрует значение и возвращает base64-строку.
// name участвует как associated data: значение одной cookie
// нельзя подставить в другую.
func (sm *SessionManager) Encrypt(name, value string) (string, error) {
	nonce := make([]byte, sm.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	ciphertext := sm.gcm.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку, полученную от Encrypt с тем же name.
func (sm *SessionManager) Decrypt(name, encrypted string) (string, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := sm.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := sm.gcm.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", fmt.Errorf("ошибка дешифрования cookie %s: %w", name, err)
	}
	return string(plaintext), nil
}

// Storage возвращает хранилище поверх cookies конкретного запроса.
func (sm *SessionManager) Storage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{
		sm:      sm,
		w:       w,
		r:       r,
		pending: make(map[string]*string),
	}
}

// CookieStorage — хранилище значений в зашифрованных cookies.
// Записи, сделанные в ходе запроса, видны последующим чтениям того же запроса.
// Удовлетворяет интерфейсу session.Storage.
type CookieStorage struct {
	sm *SessionManager
	w  http.ResponseWriter
	r  *http.Request

	mu sync.Mutex
	// pending — изменения текущего запроса; nil — ключ удалён
	pending map[string]*string
}

// Get возвращает значение cookie. Повреждённая или чужая cookie считается отсутствующей.
func (cs *CookieStorage) Get(key string) (string, bool) {
	cs.mu.Lock()
	v, changed := cs.pending[key]
	cs.mu.Unlock()
	if changed {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	cookie, err := cs.r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	value, err := cs.sm.Decrypt(key, cookie.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set записывает зашифрованную cookie со сроком жизни ttl.
func (cs *CookieStorage) Set(key, value string, ttl time.Duration) error {
	encrypted, err := cs.sm.Encrypt(key, value)
	if err != nil {
		return err
	}

	http.SetCookie(cs.w, &http.Cookie{
		Name:     key,
		Value:    encrypted,
		Path:     CookiePath,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   cs.sm.secure,
		SameSite: http.SameSiteLaxMode,
	})

	cs.mu.Lock()
	cs.pending[key] = &value
	cs.mu.Unlock()
	return nil
}

// Remove удаляет cookie.
func (cs *CookieStorage) Remove(key string) {
	http.SetCookie(cs.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cs.sm.secure,
		SameSite: http.SameSiteLaxMode,
	})

	cs.mu.Lock()
	cs.pending[key] = nil
	cs.mu.Unlock()
}

// Pop возвращает значение и сразу удаляет cookie (flash-сообщения).
func (cs *CookieStorage) Pop(key string) (string, bool) {
	v, ok := cs.Get(key)
	if ok {
		cs.Remove(key)
	}
	return v, ok
}

// sha256Key хеширует строковый ключ в 32 bytes через SHA-256.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
