package pager

import (
	"fmt"
	"sync"

	"golang.org/x/xerrors"
)

// ErrDuplicateRegistration возвращается при попытке зарегистрировать
// сессию для сообщения, у которого уже есть активная сессия. Вызывающий
// обязан сначала снять старую регистрацию.
var ErrDuplicateRegistration = xerrors.New("session already registered for message")

// MessageRef однозначно идентифицирует сообщение Telegram.
type MessageRef struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int   `json:"message_id"`
}

// Handler — обработчик активаций, привязанный к сообщению в реестре.
type Handler interface {
	// Authorized сообщает, имеет ли пользователь право на активации.
	Authorized(userID int64) bool
	// HandleControl применяет активацию контрола. Возвращает false, если
	// сессия уже завершена.
	HandleControl(act Activation) bool
}

// Registry — потокобезопасное in-memory хранилище активных сессий
// пагинации. Это единственный источник истины о том, интерактивно ли
// еще сообщение. Записи удаляются только владеющей сессией.
type Registry struct {
	mu       sync.RWMutex
	sessions map[MessageRef]Handler
}

// NewRegistry создает новый экземпляр Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[MessageRef]Handler),
	}
}

// Register привязывает обработчик к сообщению. Если для сообщения уже
// есть запись, возвращается ErrDuplicateRegistration.
func (r *Registry) Register(ref MessageRef, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[ref]; exists {
		return fmt.Errorf("register %d/%d: %w", ref.ChatID, ref.MessageID, ErrDuplicateRegistration)
	}
	r.sessions[ref] = h
	return nil
}

// Deregister снимает регистрацию обработчика. Идемпотентна: отсутствие
// записи не является ошибкой.
func (r *Registry) Deregister(ref MessageRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, ref)
}

// Lookup извлекает обработчик для сообщения.
func (r *Registry) Lookup(ref MessageRef) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.sessions[ref]
	return h, ok
}

// Contains сообщает, есть ли для сообщения активная сессия.
func (r *Registry) Contains(ref MessageRef) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[ref]
	return ok
}

// Len возвращает количество активных сессий.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Refs возвращает идентификаторы всех сообщений с активными сессиями.
func (r *Registry) Refs() []MessageRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]MessageRef, 0, len(r.sessions))
	for ref := range r.sessions {
		refs = append(refs, ref)
	}
	return refs
}
