// Пакет session — хранилище сессии администратора: токен, роль, профиль.
// Запись и очистка атомарны для читателей; очистка рассылает событие
// подписчикам, чтобы страницы реагировали на внешний сброс (ответ 401).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
)

// Ключи записей сессии в хранилище.
const (
	KeyToken   = "auth_token"
	KeyRole    = "user_role"
	KeyProfile = "user_data"
)

// DefaultTTL — срок жизни сессии (7 дней).
const DefaultTTL = 7 * 24 * time.Hour

// Причины очистки сессии.
const (
	ReasonLogout       = "logout"
	ReasonUnauthorized = "unauthorized"
)

// Session — снимок текущей сессии.
type Session struct {
	// Token — непрозрачный токен backend
	Token string
	// Role — роль пользователя
	Role string
	// Profile — профиль; nil, если отсутствует или не разбирается
	Profile *model.Profile
}

// EventType — тип события сессии.
type EventType string

const (
	EventSet     EventType = "set"
	EventCleared EventType = "cleared"
)

// Event — уведомление об изменении сессии.
type Event struct {
	Type   EventType
	Reason string
}

// Store — сессия поверх Storage.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	ttl     time.Duration

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// NewStore создаёт хранилище сессии. ttl <= 0 — DefaultTTL.
func NewStore(storage Storage, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		storage: storage,
		ttl:     ttl,
		subs:    make(map[int]func(Event)),
	}
}

// Set сохраняет токен, роль из профиля и сериализованный профиль.
// Предыдущая сессия перезаписывается целиком.
func (s *Store) Set(token string, profile model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("ошибка сериализации профиля: %w", err)
	}

	s.mu.Lock()
	err = s.write(token, profile.Role, string(data))
	if err != nil {
		s.removeAll()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(Event{Type: EventSet})
	return nil
}

func (s *Store) write(token, role, profile string) error {
	if err := s.storage.Set(KeyToken, token, s.ttl); err != nil {
		return fmt.Errorf("ошибка записи токена: %w", err)
	}
	if err := s.storage.Set(KeyRole, role, s.ttl); err != nil {
		return fmt.Errorf("ошибка записи роли: %w", err)
	}
	if err := s.storage.Set(KeyProfile, profile, s.ttl); err != nil {
		return fmt.Errorf("ошибка записи профиля: %w", err)
	}
	return nil
}

// Get возвращает текущую сессию или nil, если нет токена или роли.
func (s *Store) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.storage.Get(KeyToken)
	if !ok || token == "" {
		return nil
	}
	role, ok := s.storage.Get(KeyRole)
	if !ok || role == "" {
		return nil
	}

	sess := &Session{Token: token, Role: role}
	if raw, ok := s.storage.Get(KeyProfile); ok && raw != "" {
		var p model.Profile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			sess.Profile = &p
		}
	}
	return sess
}

// Clear удаляет все записи сессии. Повторный вызов безопасен.
// Подписчики получают событие даже если сессии не было.
func (s *Store) Clear(reason string) {
	s.mu.Lock()
	s.removeAll()
	s.mu.Unlock()

	s.publish(Event{Type: EventCleared, Reason: reason})
}

func (s *Store) removeAll() {
	s.storage.Remove(KeyToken)
	s.storage.Remove(KeyRole)
	s.storage.Remove(KeyProfile)
}

// Subscribe регистрирует обработчик событий сессии.
// Возвращает функцию отписки.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	handlers := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		handlers = append(handlers, fn)
	}
	s.subMu.Unlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// Token возвращает токен текущей сессии или пустую строку.
func (s *Store) Token() string {
	if sess := s.Get(); sess != nil {
		return sess.Token
	}
	return ""
}

// Role возвращает роль текущей сессии или пустую строку.
func (s *Store) Role() string {
	if sess := s.Get(); sess != nil {
		return sess.Role
	}
	return ""
}

// CurrentUser возвращает профиль текущего пользователя или nil.
func (s *Store) CurrentUser() *model.Profile {
	if sess := s.Get(); sess != nil {
		return sess.Profile
	}
	return nil
}

// IsSuperAdmin — роль super_admin.
func (s *Store) IsSuperAdmin() bool {
	return rbac.IsElevated(s.Role())
}

// IsMyGovAdmin — доступ к панели MyGov (mygov_admin или super_admin).
func (s *Store) IsMyGovAdmin() bool {
	return rbac.IsAnyAdmin(s.Role())
}

// IsAdmin — синоним IsMyGovAdmin.
func (s *Store) IsAdmin() bool {
	return s.IsMyGovAdmin()
}

type ctxKey struct{}

// WithStore помещает Store в контекст запроса.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext извлекает Store из контекста. nil — хранилища нет.
func FromContext(ctx context.Context) *Store {
	s, _ := ctx.Value(ctxKey{}).(*Store)
	return s
}

// TokenFromContext возвращает токен сессии из контекста.
// Используется клиентом backend для заголовка Authorization.
func TokenFromContext(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.Token()
	}
	return ""
}

// ClearFromContext очищает сессию из контекста, если она есть.
func ClearFromContext(ctx context.Context, reason string) {
	if s := FromContext(ctx); s != nil {
		s.Clear(reason)
	}
}
