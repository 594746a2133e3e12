// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// A State is the position of an Execution within the digest exchange.
//
// Every exchange starts in Pending and ends in Done. The only possible
// paths are:
//
//	Pending → Sent → Done
//	Pending → Sent → Challenged → Done
//	Pending → Sent → Challenged → Resent → Done
//
// An exchange leaves Challenged for Done without a resend when the
// answer cannot be computed or the plan's context is done.
type State int

const (
	// Pending is the state before the first request is sent.
	Pending State = iota
	// Sent is the state after the first send completed, whether with a
	// response or a transport error.
	Sent
	// Challenged is the state after a 401 response carrying a valid
	// Digest challenge was received, while the answer is computed.
	Challenged
	// Resent is the state after the authenticated second send
	// completed.
	Resent
	// Done is the terminal state.
	Done
)

var stateNames = [...]string{
	"Pending",
	"Sent",
	"Challenged",
	"Resent",
	"Done",
}

// String returns the name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}
