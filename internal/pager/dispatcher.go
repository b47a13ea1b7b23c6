package pager

import (
	"log/slog"
	"sync"
)

// rejectionText — эфемерный ответ пользователю, не имеющему права
// управлять сессией.
const rejectionText = "Эта навигация доступна только автору запроса."

// Activation — входящая активация контрола на сообщении.
type Activation struct {
	Ref        MessageRef
	UserID     int64
	CallbackID string
	Control    Control
}

type replyKey struct {
	chatID int64
	userID int64
}

// Dispatcher маршрутизирует входящие события взаимодействия к сессиям
// через реестр и держит ожидания текстовых ответов для перехода по
// номеру страницы.
type Dispatcher struct {
	registry  *Registry
	transport Transport
	logger    *slog.Logger

	mu    sync.Mutex
	waits map[replyKey]chan Reply
}

// NewDispatcher создает новый экземпляр Dispatcher.
func NewDispatcher(registry *Registry, transport Transport, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		transport: transport,
		logger:    logger,
		waits:     make(map[replyKey]chan Reply),
	}
}

// OnInteraction обрабатывает активацию контрола. Сообщение без записи в
// реестре не обрабатывается; неавторизованный пользователь получает
// эфемерный отказ, состояние сессии не меняется. Возвращает true, если
// активация была обработана сессией.
func (d *Dispatcher) OnInteraction(act Activation) bool {
	h, ok := d.registry.Lookup(act.Ref)
	if !ok {
		return false
	}

	if !h.Authorized(act.UserID) {
		d.logger.Debug("unauthorized activation",
			slog.Int64("chat_id", act.Ref.ChatID),
			slog.Int("message_id", act.Ref.MessageID),
			slog.Int64("user_id", act.UserID))
		if err := d.transport.Notify(act.CallbackID, rejectionText); err != nil {
			d.logger.Debug("rejection notify failed", slog.String("error", err.Error()))
		}
		return false
	}

	return h.HandleControl(act)
}

// OnTextReply передает текстовый ответ сессии, ожидающей номер страницы
// от этого пользователя в этом чате. Возвращает true, если ответ был
// кем-то востребован.
func (d *Dispatcher) OnTextReply(chatID, userID int64, messageID int, text string) bool {
	key := replyKey{chatID: chatID, userID: userID}

	d.mu.Lock()
	ch, ok := d.waits[key]
	if ok {
		delete(d.waits, key)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}
	// Канал буферизован на один элемент, отправка не блокирует даже при
	// гонке с отменой ожидания.
	ch <- Reply{MessageID: messageID, Text: text}
	return true
}

// AwaitReply регистрирует одноразовое ожидание ответа пользователя в
// чате. Повторная регистрация для той же пары чат/пользователь вытесняет
// предыдущее ожидание: его канал закрывается, и ждущий получает отказ.
func (d *Dispatcher) AwaitReply(chatID, userID int64) (<-chan Reply, func()) {
	key := replyKey{chatID: chatID, userID: userID}
	ch := make(chan Reply, 1)

	d.mu.Lock()
	if old, ok := d.waits[key]; ok {
		close(old)
	}
	d.waits[key] = ch
	d.mu.Unlock()

	cancel := func() {
		d.mu.Lock()
		if d.waits[key] == ch {
			delete(d.waits, key)
		}
		d.mu.Unlock()
	}
	return ch, cancel
}
