// Package request строит URL поискового запроса из настроек пользователя.
package request

import (
	"fmt"
	"net/url"

	"news_reader/internal/prefs"

	"github.com/google/go-querystring/query"
)

// ShowTags запрашивает авторов публикаций.
const ShowTags = "contributor"

// Params — фиксированные и пользовательские параметры поиска.
type Params struct {
	ShowTags string `url:"show-tags"`
	OrderBy  string `url:"order-by"`
	APIKey   string `url:"api-key"`
	FromDate string `url:"from-date"`
	Query    string `url:"q,omitempty"`
}

// NewParams собирает Params. Query заполняется только для заданного пользователем запроса.
func NewParams(apiKey, fromDate string, p prefs.Preferences) Params {
	p = p.Normalize()
	params := Params{
		ShowTags: ShowTags,
		OrderBy:  p.OrderBy,
		APIKey:   apiKey,
		FromDate: fromDate,
	}
	if p.HasSearchTerm() {
		params.Query = p.SearchTerm
	}
	return params
}

// Build добавляет параметры к base, сохраняя уже имеющиеся в нём параметры.
func Build(base string, params Params) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	values, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}

	q := u.Query()
	for k, vs := range values {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
