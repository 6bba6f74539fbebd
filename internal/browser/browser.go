// Package browser открывает ссылки в системном браузере.
package browser

import (
	"errors"

	"github.com/pkg/browser"
)

var ErrNoURL = errors.New("item has no url")

// Opener открывает URL.
type Opener interface {
	Open(url string) error
}

// System открывает URL через браузер операционной системы.
type System struct{}

func (System) Open(url string) error {
	if url == "" {
		return ErrNoURL
	}
	return browser.OpenURL(url)
}

// Recorder запоминает открытые URL вместо запуска браузера.
type Recorder struct {
	Opened []string
}

func (r *Recorder) Open(url string) error {
	if url == "" {
		return ErrNoURL
	}
	r.Opened = append(r.Opened, url)
	return nil
}
