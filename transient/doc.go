// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the transport errors which can end a
// digest exchange. The digest client never retries on a transport
// error itself; the classification lets callers and event handlers
// decide what to do with one, for example whether to try the whole
// exchange again, or how to label it in logs.
//
// Package transient depends only on the standard library.
package transient
