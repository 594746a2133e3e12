// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"github.com/gogama/digestx/answer"
	"github.com/gogama/digestx/request"
)

// A Future is the pending result of an exchange started with Client.Go.
type Future struct {
	done chan struct{}
	e    *request.Execution
}

// Go starts the digest exchange for p on a new goroutine and returns
// immediately. This is the concurrent form of Do: the exchange follows
// exactly the same steps, and the result is the same as Do would have
// returned.
//
// To abandon the exchange, cancel the plan's context. The in-flight
// send then ends as the HTTPDoer's cancellation contract dictates.
//
// Event handlers run on the new goroutine.
func (c *Client) Go(p *request.Plan, username, password string) *Future {
	if p == nil {
		panic("digestx: nil plan")
	}
	cred := answer.Credentials{Username: username, Password: password}
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.e = c.execute(p, cred)
	}()
	return f
}

// Done returns a channel which is closed when the exchange has ended.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the exchange has ended, then returns its final
// execution state and error, as Client.Do would.
func (f *Future) Wait() (*request.Execution, error) {
	<-f.done
	return f.e, f.e.Err
}
