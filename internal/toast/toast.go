// Package toast surfaces user-facing messages.
package toast

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

type Messenger interface {
	PresentToast(msg string)
	PresentError(err error)
}

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type Message struct {
	Time  time.Time `json:"time"`
	Level Level     `json:"level"`
	Text  string    `json:"text"`
}

// Console prints one line per message.
type Console struct {
	mx sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) PresentToast(msg string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	_, _ = fmt.Fprintln(c.w, msg)
}

func (c *Console) PresentError(err error) {
	if err == nil {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	_, _ = fmt.Fprintln(c.w, "error: "+err.Error())
}

// Collector keeps the last size messages.
type Collector struct {
	mx   sync.Mutex
	size int
	msgs []Message
}

func NewCollector(size int) *Collector {
	if size <= 0 {
		size = 50
	}

	return &Collector{size: size}
}

func (c *Collector) add(l Level, text string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.msgs = append(c.msgs, Message{Time: time.Now(), Level: l, Text: text})

	if len(c.msgs) > c.size {
		c.msgs = c.msgs[len(c.msgs)-c.size:]
	}
}

func (c *Collector) PresentToast(msg string) {
	c.add(LevelInfo, msg)
}

func (c *Collector) PresentError(err error) {
	if err != nil {
		c.add(LevelError, err.Error())
	}
}

func (c *Collector) Messages() []Message {
	c.mx.Lock()
	defer c.mx.Unlock()

	res := make([]Message, len(c.msgs))
	copy(res, c.msgs)

	return res
}

// Multi presents every message on all messengers.
type Multi []Messenger

func (m Multi) PresentToast(msg string) {
	for _, x := range m {
		x.PresentToast(msg)
	}
}

func (m Multi) PresentError(err error) {
	for _, x := range m {
		x.PresentError(err)
	}
}

type presentedError struct {
	error
}

func (e presentedError) Unwrap() error {
	return e.error
}

// Presented marks err as already shown to the user.
func Presented(err error) error {
	if err == nil {
		return nil
	}

	return presentedError{err}
}

func IsPresented(err error) bool {
	var pe presentedError

	return errors.As(err, &pe)
}
