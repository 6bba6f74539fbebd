// Package screen связывает настройки, проверку сети, загрузчик и список в один экран.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"news_reader/internal/browser"
	"news_reader/internal/feed"
	"news_reader/internal/logger"
	"news_reader/internal/metrics"
	"news_reader/internal/models"
	"news_reader/internal/network"
	"news_reader/internal/prefs"
	"news_reader/internal/request"
)

// Сообщения пустого состояния.
const (
	MsgNoConnection = "No internet connection."
	MsgNoNews       = "No news available."
)

// State — состояние экрана.
type State string

const (
	StateLoading      State = "loading"
	StateReady        State = "ready"
	StateNoNews       State = "no_news"
	StateNoConnection State = "no_connection"
)

var ErrNoConnection = errors.New("no internet connection")

// Loader загружает новости по URL.
type Loader interface {
	Load(ctx context.Context, url string) ([]models.News, error)
}

// Options — параметры запроса, не зависящие от настроек пользователя.
type Options struct {
	Endpoint string
	APIKey   string
	FromDate string
}

// Screen — главный экран: список новостей и пустое состояние.
type Screen struct {
	opts    Options
	prefs   prefs.Store
	net     network.Checker
	loader  Loader
	opener  browser.Opener
	metrics *metrics.Metrics

	List *feed.List

	mu    sync.RWMutex
	state State
	empty string
	// seq — номер последней начатой загрузки. Результаты более ранних загрузок отбрасываются.
	seq uint64
}

func New(opts Options, store prefs.Store, checker network.Checker, loader Loader, opener browser.Opener, m *metrics.Metrics) *Screen {
	return &Screen{
		opts:    opts,
		prefs:   store,
		net:     checker,
		loader:  loader,
		opener:  opener,
		metrics: m,
		List:    feed.NewList(),
		state:   StateLoading,
	}
}

// Create проверяет сеть и, если она есть, загружает новости.
// Без сети запрос не выполняется и показывается MsgNoConnection.
func (s *Screen) Create(ctx context.Context) error {
	if !s.net.Connected(ctx) {
		s.resetTo(StateNoConnection, MsgNoConnection)
		s.count("no_connection")
		return ErrNoConnection
	}
	return s.load(ctx)
}

// Reload перечитывает настройки и заменяет список целиком.
func (s *Screen) Reload(ctx context.Context) {
	if err := s.Create(ctx); err != nil {
		logger.Log.WithField("service", "screen").Debugf("Reload finished: %v", err)
	}
}

// Reset очищает список. Незавершённая загрузка после этого список не заполнит.
func (s *Screen) Reset() {
	s.resetTo(StateNoNews, MsgNoNews)
}

// resetTo очищает список, ставит состояние и делает устаревшими все начатые загрузки.
func (s *Screen) resetTo(st State, msg string) {
	s.mu.Lock()
	s.seq++
	s.state = st
	s.empty = msg
	s.List.Clear()
	s.mu.Unlock()
	s.gauge()
}

// Link возвращает новость в позиции pos, если у неё есть URL, и учитывает открытие.
func (s *Screen) Link(pos int) (models.News, error) {
	n, err := s.List.Item(pos)
	if err != nil {
		return models.News{}, err
	}
	if n.URL == "" {
		return n, browser.ErrNoURL
	}
	if s.metrics != nil {
		s.metrics.Opens.Inc()
	}
	return n, nil
}

// Select открывает URL новости в позиции pos.
func (s *Screen) Select(pos int) (models.News, error) {
	n, err := s.Link(pos)
	if err != nil {
		return n, err
	}
	if err := s.opener.Open(n.URL); err != nil {
		return n, fmt.Errorf("open %s: %w", n.URL, err)
	}
	return n, nil
}

// Status возвращает состояние экрана и текст пустого состояния.
func (s *Screen) Status() (State, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.empty
}

// URL строит адрес запроса из текущих настроек.
func (s *Screen) URL(ctx context.Context) (string, error) {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load prefs: %w", err)
	}
	return request.Build(s.opts.Endpoint, request.NewParams(s.opts.APIKey, s.opts.FromDate, p))
}

func (s *Screen) load(ctx context.Context) error {
	log := logger.Log.WithField("service", "screen")

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = StateLoading
	s.empty = ""
	s.mu.Unlock()

	url, err := s.URL(ctx)
	if err != nil {
		s.finish(seq, nil)
		return err
	}

	news, err := s.loader.Load(ctx, url)
	if err != nil {
		log.Warnf("Load failed: %v", err)
	}
	if !s.finish(seq, news) {
		log.WithField("seq", seq).Debug("Dropped result of outdated load")
	}
	return err
}

// finish ставит MsgNoNews как текст пустого состояния и заменяет список,
// если пришли данные. Ошибка и пустой ответ дают одно и то же состояние.
// Результат загрузки seq отбрасывается, если после неё началась другая; тогда возвращается false.
func (s *Screen) finish(seq uint64, news []models.News) bool {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return false
	}
	s.List.Replace(news)
	outcome := "ok"
	s.state = StateReady
	if len(news) == 0 {
		outcome = "empty"
		s.state = StateNoNews
	}
	s.empty = MsgNoNews
	s.mu.Unlock()

	s.gauge()
	s.count(outcome)
	return true
}

func (s *Screen) count(outcome string) {
	if s.metrics != nil {
		s.metrics.Loads.WithLabelValues(outcome).Inc()
	}
}

func (s *Screen) gauge() {
	if s.metrics != nil {
		s.metrics.Items.Set(float64(s.List.Len()))
	}
}

// Prefs возвращает хранилище настроек экрана.
func (s *Screen) Prefs() prefs.Store {
	return s.prefs
}
