// Package pager реализует интерактивную пагинацию: одно сообщение,
// содержимое которого листается кнопками без повторной отправки.
package pager

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Ограничения ширины при рендеринге. Telegram не переносит длинные
// заголовки сам, поэтому обрезаем их с учетом ширины рун.
const (
	maxTitleWidth      = 120
	maxFieldValueWidth = 512
)

// Field — одно поле страницы (пара имя/значение).
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Page описывает содержимое одной страницы. Все поля необязательны:
// отсутствующее значение при рендеринге заменяется значением из общих
// настроек сессии.
type Page struct {
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
	ImageURL     string
	Fields       []Field
	Timestamp    *time.Time
	Author       string
	Footer       string
}

// merged возвращает страницу, в которой каждое отсутствующее поле заменено
// значением из defaults. Замена выполняется для каждого поля отдельно, а
// не для страницы целиком. Пустой список полей тоже считается отсутствующим: страница с
// нулем полей наследует поля по умолчанию.
func (p Page) merged(defaults Page) Page {
	out := p
	if out.Title == "" {
		out.Title = defaults.Title
	}
	if out.Description == "" {
		out.Description = defaults.Description
	}
	if out.URL == "" {
		out.URL = defaults.URL
	}
	if out.ThumbnailURL == "" {
		out.ThumbnailURL = defaults.ThumbnailURL
	}
	if out.ImageURL == "" {
		out.ImageURL = defaults.ImageURL
	}
	if len(out.Fields) == 0 {
		out.Fields = defaults.Fields
	}
	if out.Timestamp == nil {
		out.Timestamp = defaults.Timestamp
	}
	if out.Author == "" {
		out.Author = defaults.Author
	}
	if out.Footer == "" {
		out.Footer = defaults.Footer
	}
	return out
}

// RenderPage строит HTML-текст сообщения для страницы page с номером index
// из count. Отсутствующие поля берутся из defaults; подвал при отсутствии
// собственного значения форматируется по шаблону footerFormat с
// подстановками {page} и {count}. Функция чистая: никакого состояния
// сессии она не изменяет.
func RenderPage(page, defaults Page, index, count int, footerFormat string) string {
	m := page.merged(defaults)

	var sb strings.Builder

	// Невидимая ссылка в начале текста заставляет Telegram показать
	// превью картинки над сообщением.
	if m.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("<a href=\"%s\">&#8203;</a>", html.EscapeString(m.ImageURL)))
	} else if m.ThumbnailURL != "" {
		sb.WriteString(fmt.Sprintf("<a href=\"%s\">&#8203;</a>", html.EscapeString(m.ThumbnailURL)))
	}

	if m.Author != "" {
		sb.WriteString(fmt.Sprintf("<i>%s</i>\n", html.EscapeString(m.Author)))
	}

	if m.Title != "" {
		title := html.EscapeString(runewidth.Truncate(m.Title, maxTitleWidth, "…"))
		if m.URL != "" {
			sb.WriteString(fmt.Sprintf("<b><a href=\"%s\">%s</a></b>\n", html.EscapeString(m.URL), title))
		} else {
			sb.WriteString(fmt.Sprintf("<b>%s</b>\n", title))
		}
	}

	if m.Description != "" {
		sb.WriteString(html.EscapeString(m.Description))
		sb.WriteString("\n")
	}

	if len(m.Fields) > 0 {
		sb.WriteString("\n")
		var inline []string
		flushInline := func() {
			if len(inline) == 0 {
				return
			}
			sb.WriteString(strings.Join(inline, " | "))
			sb.WriteString("\n")
			inline = inline[:0]
		}
		for _, f := range m.Fields {
			value := runewidth.Truncate(f.Value, maxFieldValueWidth, "…")
			rendered := fmt.Sprintf("<b>%s:</b> %s", html.EscapeString(f.Name), html.EscapeString(value))
			if f.Inline {
				inline = append(inline, rendered)
				continue
			}
			flushInline()
			sb.WriteString(rendered)
			sb.WriteString("\n")
		}
		flushInline()
	}

	footer := m.Footer
	if footer == "" {
		footer = formatFooter(footerFormat, index, count)
	}
	if m.Timestamp != nil {
		stamp := m.Timestamp.Format("2006-01-02 15:04")
		if footer != "" {
			footer = footer + " • " + stamp
		} else {
			footer = stamp
		}
	}
	if footer != "" {
		sb.WriteString(fmt.Sprintf("\n<i>%s</i>", html.EscapeString(runewidth.Truncate(footer, maxTitleWidth, "…"))))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatFooter подставляет номер страницы и количество страниц в шаблон.
func formatFooter(format string, index, count int) string {
	out := strings.ReplaceAll(format, "{page}", strconv.Itoa(index))
	return strings.ReplaceAll(out, "{count}", strconv.Itoa(count))
}
