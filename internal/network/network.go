// Package network проверяет наличие сетевого подключения перед запросом.
package network

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Checker сообщает, есть ли подключение к сети.
type Checker interface {
	Connected(ctx context.Context) bool
}

// DialChecker считает сеть доступной, если удаётся открыть TCP-соединение с Addr.
type DialChecker struct {
	Addr    string
	Timeout time.Duration
}

// NewDialChecker строит DialChecker для хоста endpoint.
func NewDialChecker(endpoint string, timeout time.Duration) (*DialChecker, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("endpoint has no host: %s", endpoint)
	}
	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	return &DialChecker{Addr: net.JoinHostPort(u.Hostname(), port), Timeout: timeout}, nil
}

func (c *DialChecker) Connected(ctx context.Context) bool {
	d := net.Dialer{Timeout: c.Timeout}
	conn, err := d.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Static всегда возвращает заданное значение. Используется для --offline и тестов.
type Static bool

func (s Static) Connected(context.Context) bool {
	return bool(s)
}
