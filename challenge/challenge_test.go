// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package challenge

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rfc2617Challenge = `Digest realm="testrealm@host.com", qop="auth,auth-int", ` +
	`nonce="dcd98b7102dd2f0e8b11d0f600bfb0c093", opaque="5ccc069c403ebaf9f0171e9517f40e41"`

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		header http.Header
		ok     bool
		check  func(*testing.T, *Challenge)
	}{
		{
			name:   "nil header",
			header: nil,
		},
		{
			name:   "no WWW-Authenticate",
			header: http.Header{"Content-Type": {"text/plain"}},
		},
		{
			name:   "Basic only",
			header: http.Header{"Www-Authenticate": {`Basic realm="test"`}},
		},
		{
			name:   "missing nonce",
			header: http.Header{"Www-Authenticate": {`Digest realm="test", qop="auth"`}},
		},
		{
			name:   "scheme only",
			header: http.Header{"Www-Authenticate": {`Digest`}},
		},
		{
			name:   "simple digest",
			header: http.Header{"Www-Authenticate": {`Digest realm="test", nonce="abc123", qop="auth", algorithm="MD5"`}},
			ok:     true,
			check: func(t *testing.T, c *Challenge) {
				assert.Equal(t, "test", c.Realm)
				assert.Equal(t, "abc123", c.Nonce)
				assert.Equal(t, "MD5", c.Algorithm)
				assert.Equal(t, []string{"auth"}, c.QOP)
				assert.Empty(t, c.Opaque)
			},
		},
		{
			name:   "RFC 2617 example",
			header: http.Header{"Www-Authenticate": {rfc2617Challenge}},
			ok:     true,
			check: func(t *testing.T, c *Challenge) {
				assert.Equal(t, "testrealm@host.com", c.Realm)
				assert.Equal(t, "dcd98b7102dd2f0e8b11d0f600bfb0c093", c.Nonce)
				assert.Equal(t, "5ccc069c403ebaf9f0171e9517f40e41", c.Opaque)
				assert.Equal(t, []string{"auth", "auth-int"}, c.QOP)
				assert.True(t, c.SupportsQOP("auth-int"))
				assert.False(t, c.SupportsQOP("auth-conf"))
			},
		},
		{
			name: "Digest after Basic",
			header: http.Header{"Www-Authenticate": {
				`Basic realm="test"`,
				`Digest realm="second", nonce="n2"`,
			}},
			ok: true,
			check: func(t *testing.T, c *Challenge) {
				assert.Equal(t, "second", c.Realm)
				assert.Equal(t, "n2", c.Nonce)
			},
		},
		{
			name: "first usable Digest wins",
			header: http.Header{"Www-Authenticate": {
				`Digest realm="broken"`,
				`Digest realm="good", nonce="n3"`,
				`Digest realm="later", nonce="n4"`,
			}},
			ok: true,
			check: func(t *testing.T, c *Challenge) {
				assert.Equal(t, "good", c.Realm)
			},
		},
		{
			name:   "lowercase scheme",
			header: http.Header{"Www-Authenticate": {`digest realm="r", nonce="n"`}},
			ok:     true,
			check: func(t *testing.T, c *Challenge) {
				assert.Equal(t, "r", c.Realm)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c, ok := Parse(testCase.header)
			assert.Equal(t, testCase.ok, ok)
			if !testCase.ok {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			testCase.check(t, c)
		})
	}
}

func TestParse_NonCanonicalHeaderKey(t *testing.T) {
	h := make(http.Header)
	h.Add("www-authenticate", `Digest realm="r", nonce="n"`)
	c, ok := Parse(h)
	require.True(t, ok)
	assert.Equal(t, "n", c.Nonce)
}

func TestParseValue(t *testing.T) {
	t.Run("not digest", func(t *testing.T) {
		c, err := ParseValue(`Bearer realm="x"`)
		assert.Nil(t, c)
		assert.Same(t, ErrNotDigest, err)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := ParseValue("")
		assert.Same(t, ErrNotDigest, err)
	})
	t.Run("prefix without separator", func(t *testing.T) {
		_, err := ParseValue(`Digestrealm="x"`)
		assert.Same(t, ErrNotDigest, err)
	})
	t.Run("missing nonce", func(t *testing.T) {
		_, err := ParseValue(`Digest realm="x"`)
		assert.True(t, errors.Is(err, ErrMalformed))
	})
	t.Run("surrounding whitespace", func(t *testing.T) {
		c, err := ParseValue("  Digest   realm=\"x\", nonce=\"y\"  ")
		require.NoError(t, err)
		assert.Equal(t, "x", c.Realm)
		assert.Equal(t, "y", c.Nonce)
	})
}

func TestChallenge_String(t *testing.T) {
	c := &Challenge{
		Realm:     "test",
		Nonce:     "abc123",
		Opaque:    "op",
		Algorithm: "SHA-256",
		QOP:       []string{"auth", "auth-int"},
	}
	s := c.String()
	assert.True(t, strings.HasPrefix(s, "Digest "), s)
	c2, err := ParseValue(s)
	require.NoError(t, err)
	assert.Equal(t, c.Realm, c2.Realm)
	assert.Equal(t, c.Nonce, c2.Nonce)
	assert.Equal(t, c.Opaque, c2.Opaque)
	assert.Equal(t, c.Algorithm, c2.Algorithm)
	assert.Equal(t, c.QOP, c2.QOP)
}

func TestParseValue_QOPList(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		qop   []string
	}{
		{name: "no spaces", value: `Digest realm="r", nonce="n", qop="auth-int,auth"`, qop: []string{"auth-int", "auth"}},
		{name: "spaces", value: `Digest realm="r", nonce="n", qop="auth-int, auth"`, qop: []string{"auth-int", "auth"}},
		{name: "unknown first", value: `Digest realm="r", nonce="n", qop="auth-conf,  auth"`, qop: []string{"auth-conf", "auth"}},
		{name: "empty entries", value: `Digest realm="r", nonce="n", qop="auth, ,"`, qop: []string{"auth"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c, err := ParseValue(testCase.value)
			require.NoError(t, err)
			assert.Equal(t, testCase.qop, c.QOP)
			assert.True(t, c.SupportsQOP("auth"))
		})
	}
}

func TestChallenge_Digest(t *testing.T) {
	c := &Challenge{Realm: "r", Nonce: "n", QOP: []string{"auth"}, Domain: []string{"/a"}}
	d := c.Digest()
	assert.Equal(t, "r", d.Realm)
	assert.Equal(t, "n", d.Nonce)
	assert.Equal(t, []string{"auth"}, d.QOP)
	d.QOP[0] = "changed"
	assert.Equal(t, []string{"auth"}, c.QOP)
}
