// Package prefs хранит пользовательские настройки поиска: поисковый запрос и порядок сортировки.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultSearchTerm — значение-заглушка: пока пользователь его не сменил, q не передаётся.
	DefaultSearchTerm = "Search for a single term"
	// DefaultOrderBy — порядок сортировки по умолчанию.
	DefaultOrderBy = "newest"
)

// OrderValues — допустимые значения order-by.
var OrderValues = []string{"newest", "oldest", "relevance"}

var ErrInvalidOrder = errors.New("invalid sort order")

// Preferences — сохранённые настройки экрана.
type Preferences struct {
	SearchTerm string `json:"search_term"`
	OrderBy    string `json:"order_by"`
}

// Store читает и пишет Preferences.
type Store interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
}

// Defaults возвращает настройки по умолчанию.
func Defaults() Preferences {
	return Preferences{SearchTerm: DefaultSearchTerm, OrderBy: DefaultOrderBy}
}

// HasSearchTerm сообщает, задал ли пользователь собственный запрос.
func (p Preferences) HasSearchTerm() bool {
	term := strings.TrimSpace(p.SearchTerm)
	return term != "" && term != DefaultSearchTerm
}

// Normalize подставляет значения по умолчанию вместо пустых полей.
func (p Preferences) Normalize() Preferences {
	p.SearchTerm = strings.TrimSpace(p.SearchTerm)
	if p.SearchTerm == "" {
		p.SearchTerm = DefaultSearchTerm
	}
	p.OrderBy = strings.ToLower(strings.TrimSpace(p.OrderBy))
	if p.OrderBy == "" {
		p.OrderBy = DefaultOrderBy
	}
	return p
}

// Validate проверяет, что OrderBy входит в OrderValues.
func (p Preferences) Validate() error {
	for _, o := range OrderValues {
		if p.OrderBy == o {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidOrder, p.OrderBy)
}
