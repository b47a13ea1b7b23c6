package pager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageMerged(t *testing.T) {
	ts := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	defaults := Page{
		Title:       "Default title",
		Description: "Default description",
		URL:         "https://example.com",
		Fields:      []Field{{Name: "Source", Value: "default"}},
		Timestamp:   &ts,
		Author:      "Default author",
		Footer:      "Default footer",
	}

	t.Run("missing fields fall back individually", func(t *testing.T) {
		page := Page{Title: "Own title"}
		m := page.merged(defaults)

		assert.Equal(t, "Own title", m.Title)
		assert.Equal(t, "Default description", m.Description)
		assert.Equal(t, "https://example.com", m.URL)
		assert.Equal(t, "Default author", m.Author)
		assert.Equal(t, "Default footer", m.Footer)
		assert.Equal(t, &ts, m.Timestamp)
	})

	t.Run("own values are kept", func(t *testing.T) {
		own := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		page := Page{
			Title:       "T",
			Description: "D",
			URL:         "https://other.example.com",
			Fields:      []Field{{Name: "A", Value: "1"}},
			Timestamp:   &own,
			Author:      "A",
			Footer:      "F",
		}
		m := page.merged(defaults)
		assert.Equal(t, page, m)
	})

	t.Run("empty field list falls back to defaults", func(t *testing.T) {
		// Явно пустой список полей означает «использовать значения по
		// умолчанию», а не «не выводить ничего».
		page := Page{Title: "T", Fields: []Field{}}
		m := page.merged(defaults)
		assert.Equal(t, defaults.Fields, m.Fields)
	})
}

func TestRenderPage(t *testing.T) {
	t.Run("footer falls back to format", func(t *testing.T) {
		text := RenderPage(Page{Title: "T"}, Page{}, 2, 5, "{page}/{count}")
		assert.Contains(t, text, "<i>2/5</i>")
	})

	t.Run("page footer wins over format", func(t *testing.T) {
		text := RenderPage(Page{Title: "T", Footer: "custom"}, Page{}, 2, 5, "{page}/{count}")
		assert.Contains(t, text, "<i>custom</i>")
		assert.NotContains(t, text, "2/5")
	})

	t.Run("session footer wins over format", func(t *testing.T) {
		text := RenderPage(Page{Title: "T"}, Page{Footer: "shared"}, 2, 5, "{page}/{count}")
		assert.Contains(t, text, "<i>shared</i>")
	})

	t.Run("html is escaped", func(t *testing.T) {
		text := RenderPage(Page{Title: "<b>", Description: "a & b"}, Page{}, 1, 2, "{page}/{count}")
		assert.Contains(t, text, "&lt;b&gt;")
		assert.Contains(t, text, "a &amp; b")
	})

	t.Run("title is linked when url present", func(t *testing.T) {
		text := RenderPage(Page{Title: "T", URL: "https://example.com"}, Page{}, 1, 2, "{page}/{count}")
		assert.Contains(t, text, `<b><a href="https://example.com">T</a></b>`)
	})

	t.Run("inline fields share a line", func(t *testing.T) {
		page := Page{
			Title: "T",
			Fields: []Field{
				{Name: "A", Value: "1", Inline: true},
				{Name: "B", Value: "2", Inline: true},
				{Name: "C", Value: "3"},
			},
		}
		text := RenderPage(page, Page{}, 1, 2, "{page}/{count}")
		assert.Contains(t, text, "<b>A:</b> 1 | <b>B:</b> 2\n")
		assert.Contains(t, text, "<b>C:</b> 3")
	})

	t.Run("image url renders preview link", func(t *testing.T) {
		text := RenderPage(Page{Title: "T", ImageURL: "https://img.example.com/x.png"}, Page{}, 1, 2, "{page}/{count}")
		assert.Contains(t, text, `<a href="https://img.example.com/x.png">&#8203;</a>`)
	})
}

func TestFormatFooter(t *testing.T) {
	assert.Equal(t, "3/7", formatFooter("{page}/{count}", 3, 7))
	assert.Equal(t, "Страница 1 из 4", formatFooter("Страница {page} из {count}", 1, 4))
	assert.Equal(t, "", formatFooter("", 1, 1))
}
