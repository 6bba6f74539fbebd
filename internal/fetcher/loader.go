package fetcher

import (
	"context"
	"net/http"
	"time"

	"news_reader/internal/logger"
	"news_reader/internal/metrics"
	"news_reader/internal/models"

	"golang.org/x/sync/singleflight"
)

// Result — итог одной загрузки.
type Result struct {
	News []models.News
	Err  error
}

// Loader выполняет загрузку в фоне. Повторный запрос того же URL, пока первый не завершён,
// присоединяется к нему и не перезапускает загрузку.
type Loader struct {
	client  *http.Client
	metrics *metrics.Metrics
	group   singleflight.Group
}

func NewLoader(client *http.Client, m *metrics.Metrics) *Loader {
	return &Loader{client: client, metrics: m}
}

// Start запускает загрузку url и возвращает канал, в который результат придёт ровно один раз.
// Общая загрузка не отменяется вместе с ctx одного из вызывающих: её ограничивает таймаут клиента.
// Отмена ctx завершает ожидание только для этого вызывающего.
func (l *Loader) Start(ctx context.Context, url string) <-chan Result {
	out := make(chan Result, 1)
	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(url, func() (interface{}, error) {
		return l.load(shared, url)
	})
	go func() {
		defer close(out)
		select {
		case res := <-ch:
			news, _ := res.Val.([]models.News)
			out <- Result{News: news, Err: res.Err}
		case <-ctx.Done():
			out <- Result{Err: ctx.Err()}
		}
	}()
	return out
}

// Load — синхронная обёртка над Start.
func (l *Loader) Load(ctx context.Context, url string) ([]models.News, error) {
	res := <-l.Start(ctx, url)
	return res.News, res.Err
}

func (l *Loader) load(ctx context.Context, url string) ([]models.News, error) {
	log := logger.Log.WithField("service", "loader")
	log.Debug("Fetching news")

	start := time.Now()
	news, err := FetchNews(ctx, l.client, url)
	if l.metrics != nil {
		l.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		log.Errorf("Failed to fetch news: %v", err)
		return nil, err
	}

	log.WithField("items_count", len(news)).Info("News loaded")
	return news, nil
}
