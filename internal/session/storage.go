package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Storage — хранилище пар ключ/значение со сроком жизни записи.
// Реализации: MemoryStorage (процесс) и auth.CookieStorage (cookies браузера).
type Storage interface {
	// Get возвращает значение ключа; false — ключ отсутствует или истёк.
	Get(key string) (string, bool)
	// Set сохраняет значение на ttl.
	Set(key, value string, ttl time.Duration) error
	// Remove удаляет ключ. Отсутствующий ключ — не ошибка.
	Remove(key string)
}

// memoryEntry — значение с собственным сроком жизни.
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage — хранилище в памяти процесса на основе expirable LRU.
// LRU ограничивает число записей и общий максимальный TTL,
// срок жизни отдельной записи проверяется при чтении.
type MemoryStorage struct {
	cache *expirable.LRU[string, memoryEntry]
	now   func() time.Time
}

// NewMemoryStorage создаёт хранилище на size записей.
// maxTTL — верхняя граница срока жизни любой записи.
func NewMemoryStorage(size int, maxTTL time.Duration) *MemoryStorage {
	if size <= 0 {
		size = 64
	}
	return &MemoryStorage{
		cache: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now:   time.Now,
	}
}

// Get возвращает значение, если оно есть и не истекло.
func (m *MemoryStorage) Get(key string) (string, bool) {
	e, ok := m.cache.Get(key)
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.cache.Remove(key)
		return "", false
	}
	return e.value, true
}

// Set сохраняет значение. ttl <= 0 — запись живёт до вытеснения из LRU.
func (m *MemoryStorage) Set(key, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.cache.Add(key, e)
	return nil
}

// Remove удаляет ключ.
func (m *MemoryStorage) Remove(key string) {
	m.cache.Remove(key)
}
