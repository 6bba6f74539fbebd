package models

import (
	"net/url"
	"time"
)

// News — одна новость из результатов поиска. После создания не меняется.
type News struct {
	Title   string    `json:"title"`
	Section string    `json:"section"`
	Date    time.Time `json:"date"`
	Author  string    `json:"author,omitempty"`
	URL     string    `json:"url,omitempty"`
}

// SearchResponse — корневой объект ответа поискового API.
type SearchResponse struct {
	Response SearchResult `json:"response"`
}

// SearchResult содержит статус и массив найденных публикаций.
type SearchResult struct {
	Status  string   `json:"status"`
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

// Result представляет одну публикацию в ответе API.
type Result struct {
	WebTitle           string `json:"webTitle"`
	SectionName        string `json:"sectionName"`
	WebPublicationDate string `json:"webPublicationDate"`
	WebURL             string `json:"webUrl"`
	Tags               []Tag  `json:"tags"`
}

// Tag — тег публикации. При show-tags=contributor это автор.
type Tag struct {
	Type     string `json:"type"`
	WebTitle string `json:"webTitle"`
}

// ToNews преобразует Result в News. Невалидный URL и дата отбрасываются.
func (r Result) ToNews() News {
	n := News{
		Title:   r.WebTitle,
		Section: r.SectionName,
		URL:     cleanURL(r.WebURL),
	}
	if t, err := time.Parse(time.RFC3339, r.WebPublicationDate); err == nil {
		n.Date = t
	}
	for _, tag := range r.Tags {
		if tag.Type != "" && tag.Type != "contributor" {
			continue
		}
		if tag.WebTitle != "" {
			n.Author = tag.WebTitle
			break
		}
	}
	return n
}

func cleanURL(raw string) string {
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return raw
}
