package pager

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Options настраивает поведение сессии пагинации.
type Options struct {
	// Timeout — время простоя, после которого сессия завершается сама.
	// Ноль отключает автозавершение.
	Timeout time.Duration
	// JumpTimeout — сколько ждать ответа с номером страницы.
	JumpTimeout time.Duration
	// JumpMinPages — минимум страниц, при котором предлагается переход
	// по номеру.
	JumpMinPages int
	// FooterFormat — шаблон подвала с подстановками {page} и {count}.
	FooterFormat string
	// Labels — подписи кнопок навигации.
	Labels Labels
	// Controls — какие контролы вообще включены. Нулевое значение
	// означает полный набор.
	Controls ControlSet
}

// DefaultOptions возвращает настройки сессии по умолчанию.
func DefaultOptions() Options {
	return Options{
		Timeout:      2 * time.Minute,
		JumpTimeout:  15 * time.Second,
		JumpMinPages: 4,
		FooterFormat: "{page}/{count}",
		Labels:       DefaultLabels(),
		Controls:     AllControls(),
	}
}

// normalized заполняет незаданные поля значениями по умолчанию.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.JumpTimeout <= 0 {
		o.JumpTimeout = def.JumpTimeout
	}
	if o.JumpMinPages <= 0 {
		o.JumpMinPages = def.JumpMinPages
	}
	if o.FooterFormat == "" {
		o.FooterFormat = def.FooterFormat
	}
	if o.Labels == (Labels{}) {
		o.Labels = def.Labels
	}
	if o.Controls == (ControlSet{}) {
		o.Controls = def.Controls
	}
	return o
}

// Reply — входящий текстовый ответ пользователя.
type Reply struct {
	MessageID int
	Text      string
}

// ReplyAwaiter выдает одноразовый канал для ответа пользователя в чате.
// Реализуется диспетчером; функция отмены снимает ожидание.
type ReplyAwaiter interface {
	AwaitReply(chatID, userID int64) (<-chan Reply, func())
}

// Pager связывает реестр, транспорт и источник ответов; фабрика сессий.
type Pager struct {
	registry  *Registry
	transport Transport
	replies   ReplyAwaiter
	logger    *slog.Logger
}

// New создает новый экземпляр Pager.
func New(registry *Registry, transport Transport, replies ReplyAwaiter, logger *slog.Logger) *Pager {
	return &Pager{
		registry:  registry,
		transport: transport,
		replies:   replies,
		logger:    logger,
	}
}

type sessionState int

const (
	stateActive sessionState = iota
	stateAwaitingJump
	stateTerminated
)

// Session владеет состоянием одного живого пагинированного сообщения:
// номером текущей страницы, таймером простоя и ожиданием перехода по
// номеру. Состояние изменяется только собственной логикой переходов.
type Session struct {
	id        string
	ref       MessageRef
	pages     []Page
	defaults  Page
	opts      Options
	enabled   ControlSet
	criterion Criterion

	registry  *Registry
	transport Transport
	replies   ReplyAwaiter
	logger    *slog.Logger

	// mu сериализует переходы: чтение индекса, вычисление нового и само
	// редактирование сообщения выполняются как один критический участок.
	mu    sync.Mutex
	state sessionState
	index int
	done  chan struct{} // закрывается при завершении сессии
}

// Display отображает последовательность страниц новым сообщением в чате.
// При двух и более страницах сообщение получает кнопки навигации и
// регистрируется в реестре; одна или ноль страниц отправляются один раз
// без кнопок и сессию не создают (возвращается nil, nil).
func (p *Pager) Display(chatID int64, pages []Page, defaults Page, opts Options, criterion Criterion) (*Session, error) {
	opts = opts.normalized()
	count := len(pages)

	if count <= 1 {
		if _, err := p.transport.Send(chatID, singleRender(pages, defaults, opts), nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	enabled := opts.Controls
	enabled.Jump = enabled.Jump && count >= opts.JumpMinPages

	text := RenderPage(pages[0], defaults, 1, count, opts.FooterFormat)
	buttons := ComputeControls(1, count, enabled).Buttons(opts.Labels)
	messageID, err := p.transport.Send(chatID, text, buttons)
	if err != nil {
		return nil, err
	}

	return p.start(MessageRef{ChatID: chatID, MessageID: messageID}, pages, defaults, opts, enabled, criterion)
}

// DisplayAt отображает страницы в уже существующем сообщении, редактируя
// его. Если для сообщения еще числится активная сессия, возвращается
// ErrDuplicateRegistration: вызывающий обязан сначала завершить ее.
func (p *Pager) DisplayAt(ref MessageRef, pages []Page, defaults Page, opts Options, criterion Criterion) (*Session, error) {
	opts = opts.normalized()
	count := len(pages)

	if count <= 1 {
		if err := p.transport.Edit(ref.ChatID, ref.MessageID, singleRender(pages, defaults, opts), nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	enabled := opts.Controls
	enabled.Jump = enabled.Jump && count >= opts.JumpMinPages

	s, err := p.start(ref, pages, defaults, opts, enabled, criterion)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.editLocked()
	s.mu.Unlock()
	return s, nil
}

// singleRender строит текст для неинтерактивного результата из нуля или
// одной страницы. Пустой последовательности подвал с номером страницы
// не нужен.
func singleRender(pages []Page, defaults Page, opts Options) string {
	if len(pages) == 0 {
		return RenderPage(defaults, defaults, 1, 0, "")
	}
	return RenderPage(pages[0], defaults, 1, 1, opts.FooterFormat)
}

// start собирает сессию, регистрирует ее и запускает таймер простоя.
func (p *Pager) start(ref MessageRef, pages []Page, defaults Page, opts Options, enabled ControlSet, criterion Criterion) (*Session, error) {
	s := &Session{
		id:        uuid.NewString(),
		ref:       ref,
		pages:     pages,
		defaults:  defaults,
		opts:      opts,
		enabled:   enabled,
		criterion: criterion,
		registry:  p.registry,
		transport: p.transport,
		replies:   p.replies,
		index:     1,
		done:      make(chan struct{}),
	}
	s.logger = p.logger.With(
		slog.String("session_id", s.id),
		slog.Int64("chat_id", ref.ChatID),
		slog.Int("message_id", ref.MessageID),
	)

	if err := p.registry.Register(ref, s); err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		go s.watchIdle(opts.Timeout)
	}

	s.logger.Info("pagination session started", slog.Int("pages", len(pages)))
	return s, nil
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string {
	return s.id
}

// Ref возвращает идентификатор сообщения сессии.
func (s *Session) Ref() MessageRef {
	return s.ref
}

// PageCount возвращает количество страниц.
func (s *Session) PageCount() int {
	return len(s.pages)
}

// CurrentPage возвращает номер текущей страницы.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Terminated сообщает, завершена ли сессия.
func (s *Session) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateTerminated
}

// Authorized сообщает, разрешено ли пользователю управлять сессией.
// Сессия без критерия доступна всем.
func (s *Session) Authorized(userID int64) bool {
	if s.criterion == nil {
		return true
	}
	return s.criterion.Matches(userID)
}

// HandleControl применяет активацию контрола к сессии. Переход с
// неизменившимся номером страницы все равно перерисовывает сообщение.
// Возвращает false, если сессия уже завершена.
func (s *Session) HandleControl(act Activation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateTerminated {
		return false
	}

	switch act.Control {
	case ControlFirst:
		s.index = 1
	case ControlBack:
		if s.index > 1 {
			s.index--
		}
	case ControlNext:
		if s.index < len(s.pages) {
			s.index++
		}
	case ControlLast:
		s.index = len(s.pages)
	case ControlStop:
		s.terminateLocked()
		return true
	case ControlJump:
		s.beginJumpLocked(act.UserID)
		return true
	default:
		return false
	}

	s.editLocked()
	return true
}

// Stop завершает сессию досрочно: снимает регистрацию и убирает кнопки.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terminateLocked()
}

// editLocked перерисовывает сообщение для текущей страницы. Вызывается
// строго под s.mu. Ошибка редактирования проглатывается: сообщение могло
// быть удалено, повторов не делаем.
func (s *Session) editLocked() {
	text := RenderPage(s.pages[s.index-1], s.defaults, s.index, len(s.pages), s.opts.FooterFormat)
	buttons := ComputeControls(s.index, len(s.pages), s.enabled).Buttons(s.opts.Labels)
	if err := s.transport.Edit(s.ref.ChatID, s.ref.MessageID, text, buttons); err != nil {
		s.logger.Warn("page edit failed", slog.String("error", err.Error()))
	}
}

// terminateLocked переводит сессию в терминальное состояние: снимает
// регистрацию, будит таймер простоя и перерисовывает сообщение без
// кнопок. Повторный вызов — no-op: stop и таймаут могут гнаться за
// завершением, побеждает первый взявший s.mu.
func (s *Session) terminateLocked() {
	if s.state == stateTerminated {
		return
	}
	s.state = stateTerminated
	close(s.done)
	s.registry.Deregister(s.ref)

	text := RenderPage(s.pages[s.index-1], s.defaults, s.index, len(s.pages), s.opts.FooterFormat)
	if err := s.transport.Edit(s.ref.ChatID, s.ref.MessageID, text, nil); err != nil {
		s.logger.Debug("terminal edit failed", slog.String("error", err.Error()))
	}
	s.logger.Info("pagination session terminated")
}

// watchIdle завершает сессию по истечении времени простоя. Досрочное
// завершение закрывает done и снимает ожидание.
func (s *Session) watchIdle(timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.done:
		return
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateTerminated {
		return
	}
	s.logger.Info("pagination session idle timeout")
	s.terminateLocked()
}

// beginJumpLocked запускает ожидание номера страницы от пользователя.
// Повторная активация jump во время ожидания нового ожидания не
// порождает: первое остается в силе.
func (s *Session) beginJumpLocked(userID int64) {
	if s.state == stateAwaitingJump {
		return
	}
	if s.replies == nil {
		s.logger.Warn("jump requested without reply source")
		return
	}
	s.state = stateAwaitingJump
	ch, cancel := s.replies.AwaitReply(s.ref.ChatID, userID)
	go s.awaitJump(ch, cancel)
}

// awaitJump ждет от пользователя номер страницы. Ожидание отвязано от
// активации: диспетчер уже вернул управление. Нечисловой, выходящий за
// пределы или совпадающий с текущей страницей номер молча отбрасывается
// без перерисовки; валидный номер применяется, а сообщение с ответом
// удаляется по мере возможности.
func (s *Session) awaitJump(ch <-chan Reply, cancel func()) {
	defer cancel()

	timer := time.NewTimer(s.opts.JumpTimeout)
	defer timer.Stop()

	var reply Reply
	var ok bool
	select {
	case reply, ok = <-ch:
	case <-timer.C:
	case <-s.done:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateTerminated {
		return
	}
	s.state = stateActive

	if !ok {
		return
	}
	target, err := strconv.Atoi(strings.TrimSpace(reply.Text))
	if err != nil {
		return
	}
	if target < 1 || target > len(s.pages) || target == s.index {
		return
	}

	if err := s.transport.Delete(s.ref.ChatID, reply.MessageID); err != nil {
		s.logger.Debug("jump reply delete failed", slog.String("error", err.Error()))
	}
	s.index = target
	s.editLocked()
}
