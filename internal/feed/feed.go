// Package feed держит список новостей экрана и отрисовывает его строками таблицы.
package feed

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"news_reader/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

var ErrOutOfRange = errors.New("position out of range")

// List — адаптер списка: одна строка на новость, в порядке ответа API.
type List struct {
	mu    sync.RWMutex
	items []models.News
	now   func() time.Time
}

func NewList() *List {
	return &List{now: time.Now}
}

// Replace заменяет содержимое списка целиком.
func (l *List) Replace(news []models.News) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]models.News(nil), news...)
}

func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Item возвращает новость в позиции pos (с нуля).
func (l *List) Item(pos int) (models.News, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if pos < 0 || pos >= len(l.items) {
		return models.News{}, fmt.Errorf("%w: %d", ErrOutOfRange, pos)
	}
	return l.items[pos], nil
}

// Items возвращает копию списка.
func (l *List) Items() []models.News {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.News(nil), l.items...)
}

// Row — поля одной строки списка.
func (l *List) Row(pos int, n models.News) []string {
	date := ""
	if !n.Date.IsZero() {
		date = humanize.RelTime(n.Date, l.now(), "ago", "from now")
	}
	return []string{strconv.Itoa(pos + 1), n.Title, n.Section, date, n.Author}
}

// Render пишет список таблицей в w. Номера строк начинаются с 1.
func (l *List) Render(w io.Writer) error {
	items := l.Items()

	table := tablewriter.NewWriter(w)
	table.Header("#", "Title", "Section", "Date", "Author")
	for i, n := range items {
		if err := table.Append(l.Row(i, n)); err != nil {
			return fmt.Errorf("append row %d: %w", i+1, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
