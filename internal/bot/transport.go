package bot

import (
	"fmt"

	"telegram-pager-bot/internal/pager"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Transport реализует pager.Transport поверх Telegram Bot API.
// Функции-поля позволяют подменять вызовы API в тестах.
type Transport struct {
	sendFunc    func(c tgbotapi.Chattable) (tgbotapi.Message, error)
	requestFunc func(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// NewTransport создает транспорт поверх клиента Bot API.
func NewTransport(api *tgbotapi.BotAPI) *Transport {
	return &Transport{
		sendFunc:    api.Send,
		requestFunc: api.Request,
	}
}

// keyboard строит inline-клавиатуру из ряда кнопок.
func keyboard(buttons []pager.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}

// Send отправляет новое сообщение страницы и возвращает его идентификатор.
func (t *Transport) Send(chatID int64, text string, buttons []pager.Button) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := keyboard(buttons); kb != nil {
		msg.ReplyMarkup = *kb
	}

	sent, err := t.sendFunc(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send page message: %w", err)
	}
	return sent.MessageID, nil
}

// Edit редактирует сообщение страницы на месте. Отсутствие кнопок
// убирает клавиатуру.
func (t *Transport) Edit(chatID int64, messageID int, text string, buttons []pager.Button) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = keyboard(buttons)

	if _, err := t.sendFunc(edit); err != nil {
		return fmt.Errorf("failed to edit page message: %w", err)
	}
	return nil
}

// Delete удаляет сообщение.
func (t *Transport) Delete(chatID int64, messageID int) error {
	if _, err := t.requestFunc(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Notify отвечает на callback-запрос всплывающим предупреждением. Это
// эфемерный ответ: его видит только автор нажатия.
func (t *Transport) Notify(callbackID string, text string) error {
	if _, err := t.requestFunc(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}
	return nil
}
