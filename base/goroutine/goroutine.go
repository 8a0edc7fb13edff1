// Package goroutine runs background work that must survive its own panics.
package goroutine

import (
	"runtime/debug"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

// RecoverableGo runs f in a goroutine. The returned channel yields the
// recovered panic, or is closed when f returns normally.
func RecoverableGo(f func()) <-chan *PanicEvent {
	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				panicChan <- &PanicEvent{Panic: p, Stack: debug.Stack()}
				return
			}
			close(panicChan)
		}()
		f()
	}()

	return panicChan
}

// Supervise runs f in the background and starts it again after each panic,
// until f returns normally or c is done. done is closed once it stops.
func Supervise(c ctx.Ctx, name string, f func(ctx.Ctx)) (done <-chan struct{}) {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for restarts := 0; ; restarts++ {
			p := <-RecoverableGo(func() { f(c) })
			if p == nil || c.Err() != nil {
				return
			}
			c.WithFields(log.Fields{
				"routine":  name,
				"panic":    p.Panic,
				"stack":    string(p.Stack),
				"restarts": restarts,
			}).Error("panic recovered, restarting")
		}
	}()
	return stopped
}
