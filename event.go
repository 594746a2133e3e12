// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client or Transport to observe
// or extend the digest exchange.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// exchange starts.
	//
	// When BeforeExecutionStart fires, the only execution field that
	// has been set is the plan.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each send,
	// at most twice per exchange.
	//
	// When BeforeAttempt fires, the execution's request field is set to
	// the HTTP request that WILL BE sent once all BeforeAttempt handlers
	// have finished. On the resend (Attempt is 1) the request already
	// carries the Authorization header. Handlers may change the request,
	// but it is freshly built from the plan for every send, so changes
	// never carry over to the next send.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after each send,
	// whether it produced a response or a transport error.
	AfterAttempt
	// AfterChallenge identifies the event that occurs after a 401
	// response with a usable Digest challenge has been parsed, and
	// before the answer is computed.
	//
	// When AfterChallenge fires, the execution is in the Challenged
	// state and its challenge field is set.
	AfterChallenge
	// BeforeReadBody identifies the event that occurs before the final
	// response body is read and buffered. It only fires in clients which
	// buffer the body, and only when there is a final response.
	BeforeReadBody
	// AfterExecutionEnd identifies the event that occurs after the
	// exchange ends.
	//
	// When AfterExecutionEnd fires, the execution is in the Done state
	// and its end time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"AfterChallenge",
	"BeforeReadBody",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// digest exchange, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		AfterChallenge,
		BeforeReadBody,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
