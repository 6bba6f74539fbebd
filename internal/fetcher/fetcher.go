package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"news_reader/internal/models"
)

// NewClient возвращает HTTP-клиент с таймаутом timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// FetchNews выполняет GET по url, декодирует JSON и возвращает новости в порядке ответа.
func FetchNews(ctx context.Context, client *http.Client, url string) ([]models.News, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	news := make([]models.News, 0, len(body.Response.Results))
	for _, r := range body.Response.Results {
		news = append(news, r.ToNews())
	}
	return news, nil
}
