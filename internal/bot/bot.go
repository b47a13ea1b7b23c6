package bot

import (
	"context"
	"log/slog"

	"telegram-pager-bot/cmd/bot/config"
	"telegram-pager-bot/internal/pager"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	startCommand = "start"
	helpCommand  = "help"
	faqCommand   = "faq"
)

// CommandFunc обрабатывает одну команду бота. Обработчики-коллабораторы
// строят последовательность страниц и передают ее пейджеру, не трогая
// внутренности сессий.
type CommandFunc func(ctx context.Context, msg *tgbotapi.Message)

// Bot — основной объект Telegram-бота с интерактивной пагинацией.
type Bot struct {
	api        *tgbotapi.BotAPI
	cfg        config.BotConfig
	dispatcher *pager.Dispatcher
	pg         *pager.Pager
	pagerOpts  pager.Options
	logger     *slog.Logger
	commands   map[string]CommandFunc

	// Функции-поля позволяют подменять вызовы API в тестах.
	sendMessageFunc func(msg tgbotapi.Chattable) (tgbotapi.Message, error)
	requestFunc     func(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// New создает и инициализирует новый экземпляр бота.
func New(api *tgbotapi.BotAPI, cfg config.BotConfig, dispatcher *pager.Dispatcher, pg *pager.Pager, pagerOpts pager.Options, logger *slog.Logger) *Bot {
	b := &Bot{
		api:             api,
		cfg:             cfg,
		dispatcher:      dispatcher,
		pg:              pg,
		pagerOpts:       pagerOpts,
		logger:          logger,
		commands:        make(map[string]CommandFunc),
		sendMessageFunc: api.Send,
		requestFunc:     api.Request,
	}

	b.RegisterCommand(startCommand, b.handleStart)
	b.RegisterCommand(helpCommand, b.handleHelp)
	b.RegisterCommand(faqCommand, b.handleFAQ)

	return b
}

// RegisterCommand подключает обработчик команды. Команды регистрируются
// до запуска Start и далее не изменяются.
func (b *Bot) RegisterCommand(name string, fn CommandFunc) {
	b.commands[name] = fn
}

// Start запускает основной цикл обработки обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Context cancelled, stopping bot...")
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			switch {
			case update.CallbackQuery != nil:
				b.handleCallback(update.CallbackQuery)
			case update.Message != nil:
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// handleCallback преобразует нажатие кнопки в активацию контрола и
// передает ее диспетчеру.
func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	if q.Message == nil || q.From == nil {
		return
	}

	control, ok := pager.ParseControl(q.Data)
	if !ok {
		b.logger.Debug("unknown callback data", slog.String("data", q.Data))
		return
	}

	act := pager.Activation{
		Ref:        pager.MessageRef{ChatID: q.Message.Chat.ID, MessageID: q.Message.MessageID},
		UserID:     q.From.ID,
		CallbackID: q.ID,
		Control:    control,
	}

	handled := b.dispatcher.OnInteraction(act)
	if !handled {
		b.logger.Debug("unhandled control activation",
			slog.Int64("chat_id", act.Ref.ChatID),
			slog.Int("message_id", act.Ref.MessageID),
			slog.String("control", string(control)))
	}

	// Снимаем «часики» на кнопке. Для отклоненной активации диспетчер уже
	// ответил предупреждением, повторный ответ Telegram отвергнет — это
	// не ошибка.
	if _, err := b.requestFunc(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", slog.String("error", err.Error()))
	}
}

// handleMessage обрабатывает входящее сообщение.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Сначала даем шанс сессии, ожидающей номер страницы, забрать ответ.
	if b.dispatcher.OnTextReply(msg.Chat.ID, msg.From.ID, msg.MessageID, msg.Text) {
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, "Отправьте команду — /help покажет, что я умею.")
	b.sendMessage(reply)
}

// handleCommand обрабатывает команды.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	fn, ok := b.commands[msg.Command()]
	if !ok {
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Я не знаю такой команды.")
		b.sendMessage(reply)
		return
	}
	fn(ctx, msg)
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	replyText := "Добро пожаловать! Я показываю многостраничные ответы одним сообщением:\n" +
		"листайте страницы кнопками под ним, никуда не проматывая чат.\n\n" +
		"Попробуйте /faq, чтобы увидеть пагинацию в действии."
	b.sendMessage(tgbotapi.NewMessage(msg.Chat.ID, replyText))
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	replyText := "Кнопки под многостраничным сообщением:\n" +
		"⏮ — первая страница, ◀ ▶ — назад/вперед, ⏭ — последняя,\n" +
		"🔢 — ответьте номером страницы в течение 15 секунд,\n" +
		"✖ — завершить просмотр.\n\n" +
		"Управлять может только автор запроса."
	b.sendMessage(tgbotapi.NewMessage(msg.Chat.ID, replyText))
}

// handleFAQ показывает страницы FAQ через интерактивную пагинацию.
// Это встроенный коллаборатор пейджера: он лишь строит страницы и
// отдает их на отображение.
func (b *Bot) handleFAQ(ctx context.Context, msg *tgbotapi.Message) {
	if len(b.cfg.FAQ) == 0 {
		b.sendMessage(tgbotapi.NewMessage(msg.Chat.ID, "FAQ пока пуст."))
		return
	}

	pages := make([]pager.Page, 0, len(b.cfg.FAQ))
	for _, e := range b.cfg.FAQ {
		pages = append(pages, pager.Page{Title: e.Question, Description: e.Answer})
	}
	defaults := pager.Page{Author: "FAQ"}

	if _, err := b.pg.Display(msg.Chat.ID, pages, defaults, b.pagerOpts, pager.SameUser(msg.From.ID)); err != nil {
		b.logger.Error("failed to display faq", slog.String("error", err.Error()))
	}
}

func (b *Bot) sendMessage(msg tgbotapi.Chattable) {
	if _, err := b.sendMessageFunc(msg); err != nil {
		b.logger.Error("failed to send message", slog.String("error", err.Error()))
	}
}
