// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"fmt"

	"github.com/gogama/digestx/request"
)

// A HandlerGroup holds one handler chain per Event. Installing a group
// in a Client or Transport lets callers observe each step of a digest
// exchange: the first send, the 401 challenge, the answered resend and
// the end of the exchange.
//
// The zero value is an empty group. Populate it before sharing it;
// PushBack must not be called while exchanges using the group are in
// flight.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the chain for evt. Handlers in a chain run in
// the order they were pushed. PushBack panics if h is nil or evt is not
// a known Event.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("digestx: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic(fmt.Sprintf("digestx: unknown event %d", int(evt)))
	}
	g.chains[evt] = append(g.chains[evt], h)
}

// run calls the chain for evt. A nil group has no handlers.
func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	if g == nil || evt < 0 || int(evt) >= numEvents {
		return
	}
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler observes one step of a digest exchange. It may read the
// Execution, including the parsed challenge once the server has
// answered with 401, but it runs on the goroutine driving the exchange
// and should return promptly.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc lets an ordinary function serve as a Handler.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
