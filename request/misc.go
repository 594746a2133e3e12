// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

var errBodyType = errors.New("digestx/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)")

// BodyBytes buffers a body parameter into the byte slice held by a
// Plan. A digest exchange may send the body twice, and hashes it for
// the auth-int quality of protection, so it is always read up front.
//
// A nil body yields a nil slice. A string or []byte is used as it is.
// An io.Reader is read to the end, and an io.ReadCloser is closed
// afterwards whether or not the read succeeded; a read or close error
// is returned with a nil slice. Any other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		return readAndClose(x)
	case io.Reader:
		return readAndClose(io.NopCloser(x))
	default:
		return nil, errBodyType
	}
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	b, err := io.ReadAll(rc)
	closeErr := rc.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
