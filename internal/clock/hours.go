// Package clock derives the open/closed status of the restaurant from wall-clock time.
package clock

import (
	"fmt"
	"time"
)

const (
	msgOpen   = "Estamos Abertos! Faça seu pedido agora!"
	msgClosed = "Fechado - Abrimos às %02d:00"
)

// Hours is a daily window [Open, Close) in whole hours. When Close <= Open the
// window wraps past midnight.
type Hours struct {
	Open  int
	Close int
}

// DefaultHours is 18:00 to 00:59:59.
var DefaultHours = Hours{Open: 18, Close: 1}

func (h Hours) IsOpen(t time.Time) bool {
	hour := t.Hour()
	if h.Close <= h.Open {
		return hour >= h.Open || hour < h.Close
	}
	return hour >= h.Open && hour < h.Close
}

type Status struct {
	Open    bool
	Message string
	Hours   string
	Now     time.Time
}

func (h Hours) Status(t time.Time) Status {
	msg := msgOpen
	if !h.IsOpen(t) {
		msg = fmt.Sprintf(msgClosed, h.Open)
	}

	return Status{
		Open:    h.IsOpen(t),
		Message: msg,
		Hours:   h.String(),
		Now:     t,
	}
}

func (h Hours) String() string {
	return fmt.Sprintf("Horário: %02d:00 às %02d:00", h.Open, h.Close)
}
