package pager

// Button — одна кнопка навигации под сообщением.
type Button struct {
	Label string // видимый текст кнопки
	Data  string // callback-данные, имя контрола
}

// Transport определяет интерфейс для операций с сообщениями хост-платформы.
// Сессия пагинации ничего не знает о Telegram: реализация для Bot API
// находится в internal/bot.
type Transport interface {
	// Send отправляет новое сообщение с HTML-текстом и кнопками навигации.
	// Возвращает идентификатор созданного сообщения.
	Send(chatID int64, text string, buttons []Button) (int, error)

	// Edit редактирует существующее сообщение на месте. Пустой срез кнопок
	// убирает клавиатуру полностью.
	Edit(chatID int64, messageID int, text string, buttons []Button) error

	// Delete удаляет сообщение.
	Delete(chatID int64, messageID int) error

	// Notify отправляет эфемерное уведомление автору взаимодействия.
	Notify(callbackID string, text string) error
}
