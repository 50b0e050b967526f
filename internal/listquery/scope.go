package listquery

import (
	"strings"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
)

// Actor — текущий пользователь: идентичность и роль.
type Actor struct {
	ID       string
	Username string
	Email    string
	Role     string
}

// ActorFromProfile строит Actor из профиля сессии.
// Идентификатор берётся из id, при отсутствии из _id.
func ActorFromProfile(p *model.Profile, role string) Actor {
	if p == nil {
		return Actor{Role: role}
	}
	return Actor{
		ID:       p.Identity(),
		Username: p.Username,
		Email:    p.Email,
		Role:     role,
	}
}

// Elevated — актор видит все записи.
func (a Actor) Elevated() bool {
	return rbac.IsElevated(a.Role)
}

// Owns сообщает, создана ли запись актором.
// Достаточно совпадения по любому каналу: id (точно), username или email
// (без учёта регистра). Пустые значения не совпадают никогда.
func (a Actor) Owns(creator model.Identity) bool {
	if a.ID != "" && creator.ID != "" && a.ID == creator.ID {
		return true
	}
	if a.Username != "" && creator.Username != "" && strings.EqualFold(a.Username, creator.Username) {
		return true
	}
	if a.Email != "" && creator.Email != "" && strings.EqualFold(a.Email, creator.Email) {
		return true
	}
	return false
}

// Scope ограничивает коллекцию записями актора.
// Для повышенной роли коллекция возвращается без изменений.
func Scope[T any](items []T, actor Actor, creator func(T) model.Identity) []T {
	if actor.Elevated() {
		return items
	}
	scoped := make([]T, 0, len(items))
	for _, item := range items {
		if actor.Owns(creator(item)) {
			scoped = append(scoped, item)
		}
	}
	return scoped
}
