// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package answer

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gogama/digestx/challenge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_RFC2617(t *testing.T) {
	// The worked example from RFC 2617 section 3.5.
	c := &challenge.Challenge{
		Realm:  "testrealm@host.com",
		Nonce:  "dcd98b7102dd2f0e8b11d0f600bfb0c093",
		Opaque: "5ccc069c403ebaf9f0171e9517f40e41",
		QOP:    []string{"auth", "auth-int"},
	}
	auth, err := Compute(c, Params{
		Method: "GET",
		URI:    "/dir/index.html",
		Count:  1,
		Cnonce: "0a4f113b",
	}, Credentials{Username: "Mufasa", Password: "Circle Of Life"})

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(auth, "Digest "), auth)
	d := directives(auth)
	assert.Equal(t, "6629fae49393a05397450978507c4ef1", d["response"])
	assert.Equal(t, "Mufasa", d["username"])
	assert.Equal(t, "testrealm@host.com", d["realm"])
	assert.Equal(t, "dcd98b7102dd2f0e8b11d0f600bfb0c093", d["nonce"])
	assert.Equal(t, "/dir/index.html", d["uri"])
	assert.Equal(t, "auth", d["qop"])
	assert.Equal(t, "00000001", d["nc"])
	assert.Equal(t, "0a4f113b", d["cnonce"])
	assert.Equal(t, "5ccc069c403ebaf9f0171e9517f40e41", d["opaque"])
}

func TestCompute_MatchesReferenceFormula(t *testing.T) {
	cred := Credentials{Username: "user", Password: "pass"}
	testCases := []struct {
		name string
		chal challenge.Challenge
		p    Params
		h    func() hash.Hash
	}{
		{
			name: "MD5 auth",
			chal: challenge.Challenge{Realm: "test", Nonce: "abc123", QOP: []string{"auth"}, Algorithm: "MD5"},
			p:    Params{Method: "GET", URI: "/resource"},
			h:    md5.New,
		},
		{
			name: "implicit MD5 with query",
			chal: challenge.Challenge{Realm: "test", Nonce: "abc123", QOP: []string{"auth"}},
			p:    Params{Method: "DELETE", URI: "/resource?id=7&x=y"},
			h:    md5.New,
		},
		{
			name: "SHA-256 auth",
			chal: challenge.Challenge{Realm: "http-auth@example.org", Nonce: "7ypf/xlj9XXwfDPEoM4URrv/xwf94BcCAzFZH4GiTo0v", QOP: []string{"auth"}, Algorithm: "SHA-256"},
			p:    Params{Method: "GET", URI: "/dir/index.html", Count: 3},
			h:    sha256.New,
		},
		{
			name: "auth-int with body",
			chal: challenge.Challenge{Realm: "test", Nonce: "n", QOP: []string{"auth-int"}},
			p:    Params{Method: "POST", URI: "/upload", Body: []byte("hello, world")},
			h:    md5.New,
		},
		{
			name: "auth-int without body",
			chal: challenge.Challenge{Realm: "test", Nonce: "n", QOP: []string{"auth-int"}},
			p:    Params{Method: "POST", URI: "/upload"},
			h:    md5.New,
		},
		{
			name: "RFC 2069 no qop",
			chal: challenge.Challenge{Realm: "test", Nonce: "legacy"},
			p:    Params{Method: "GET", URI: "/old"},
			h:    md5.New,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			chal := testCase.chal
			auth, err := Compute(&chal, testCase.p, cred)
			require.NoError(t, err)
			d := directives(auth)
			assert.Equal(t, testCase.p.URI, d["uri"])
			assert.Equal(t, referenceResponse(testCase.h, &chal, testCase.p, cred, d), d["response"])
		})
	}
}

func TestCompute_FreshCnonce(t *testing.T) {
	c := &challenge.Challenge{Realm: "test", Nonce: "abc123", QOP: []string{"auth"}}
	p := Params{Method: "GET", URI: "/"}
	cred := Credentials{Username: "user", Password: "pass"}
	a1, err := Compute(c, p, cred)
	require.NoError(t, err)
	a2, err := Compute(c, p, cred)
	require.NoError(t, err)
	d1, d2 := directives(a1), directives(a2)
	assert.Len(t, d1["cnonce"], 32)
	assert.NotEqual(t, d1["cnonce"], d2["cnonce"])
	assert.NotEqual(t, d1["response"], d2["response"])
	assert.Equal(t, "00000001", d1["nc"])
	assert.Equal(t, "00000001", d2["nc"])
}

func TestCompute_Concurrent(t *testing.T) {
	c := &challenge.Challenge{Realm: "test", Nonce: "abc123", QOP: []string{"auth"}}
	const n = 16
	var wg sync.WaitGroup
	results := make([]map[string]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cred := Credentials{Username: fmt.Sprintf("user%d", i), Password: fmt.Sprintf("pass%d", i)}
			auth, err := Compute(c, Params{Method: "GET", URI: "/r"}, cred)
			if assert.NoError(t, err) {
				results[i] = directives(auth)
			}
		}(i)
	}
	wg.Wait()
	for i, d := range results {
		require.NotNil(t, d)
		cred := Credentials{Username: fmt.Sprintf("user%d", i), Password: fmt.Sprintf("pass%d", i)}
		assert.Equal(t, cred.Username, d["username"])
		assert.Equal(t, referenceResponse(md5.New, c, Params{Method: "GET", URI: "/r"}, cred, d), d["response"])
	}
}

func TestCompute_Unsupported(t *testing.T) {
	cred := Credentials{Username: "user", Password: "pass"}
	testCases := []struct {
		name  string
		chal  challenge.Challenge
		cause error
	}{
		{
			name:  "unknown algorithm",
			chal:  challenge.Challenge{Realm: "r", Nonce: "n", Algorithm: "SHA1", QOP: []string{"auth"}},
			cause: ErrUnsupportedAlgorithm,
		},
		{
			name:  "MD5-sess",
			chal:  challenge.Challenge{Realm: "r", Nonce: "n", Algorithm: "MD5-sess", QOP: []string{"auth"}},
			cause: ErrUnsupportedAlgorithm,
		},
		{
			name:  "SHA-256-sess",
			chal:  challenge.Challenge{Realm: "r", Nonce: "n", Algorithm: "SHA-256-sess", QOP: []string{"auth"}},
			cause: ErrUnsupportedAlgorithm,
		},
		{
			name:  "SHA-512-256-sess",
			chal:  challenge.Challenge{Realm: "r", Nonce: "n", Algorithm: "SHA-512-256-SESS", QOP: []string{"auth"}},
			cause: ErrUnsupportedAlgorithm,
		},
		{
			name:  "unknown qop",
			chal:  challenge.Challenge{Realm: "r", Nonce: "n", QOP: []string{"auth-conf"}},
			cause: ErrUnsupportedQOP,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			chal := testCase.chal
			auth, err := Compute(&chal, Params{Method: "GET", URI: "/"}, cred)
			assert.Empty(t, auth)
			var compErr *ComputationError
			require.True(t, errors.As(err, &compErr))
			assert.True(t, errors.Is(err, testCase.cause))
			assert.Equal(t, chal.Algorithm, compErr.Algorithm)
			assert.Equal(t, chal.QOP, compErr.QOP)
			assert.Contains(t, err.Error(), "digestx/answer: cannot answer challenge: ")
		})
	}
}

func TestSelectQOP(t *testing.T) {
	q, err := selectQOP(&challenge.Challenge{QOP: []string{"auth-int", "auth"}})
	assert.NoError(t, err)
	assert.Equal(t, "auth", q)
	q, err = selectQOP(&challenge.Challenge{QOP: []string{"auth-int"}})
	assert.NoError(t, err)
	assert.Equal(t, "auth-int", q)
	q, err = selectQOP(&challenge.Challenge{})
	assert.NoError(t, err)
	assert.Equal(t, "", q)
}

func TestCompute_ParsedQOPList(t *testing.T) {
	cred := Credentials{Username: "user", Password: "pass"}
	for _, qop := range []string{"auth-int, auth", "auth-conf, auth", "auth ,auth-int"} {
		t.Run(qop, func(t *testing.T) {
			c, err := challenge.ParseValue(`Digest realm="test", nonce="abc123", qop="` + qop + `"`)
			require.NoError(t, err)
			q, err := selectQOP(c)
			require.NoError(t, err)
			assert.Equal(t, "auth", q)

			p := Params{Method: "GET", URI: "/resource"}
			auth, err := Compute(c, p, cred)
			require.NoError(t, err)
			d := directives(auth)
			assert.Equal(t, "auth", d["qop"])
			assert.Equal(t, referenceResponse(md5.New, c, p, cred, d), d["response"])
		})
	}
}

func TestCredentials_NeverFormatsPassword(t *testing.T) {
	cred := Credentials{Username: "alice", Password: "s3cr3t"}
	for _, s := range []string{
		fmt.Sprint(cred),
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%s", cred),
		fmt.Sprintf("%#v", cred),
	} {
		assert.Contains(t, s, "alice")
		assert.NotContains(t, s, "s3cr3t")
	}
}

func TestNewCnonce(t *testing.T) {
	c := NewCnonce()
	assert.Regexp(t, `^[0-9a-f]{32}$`, c)
	assert.NotEqual(t, c, NewCnonce())
}

var directiveRE = regexp.MustCompile(`([a-zA-Z]+)=(?:"([^"]*)"|([^,\s]+))`)

// directives splits an Authorization header value into its directives.
func directives(s string) map[string]string {
	m := make(map[string]string)
	for _, match := range directiveRE.FindAllStringSubmatch(strings.TrimPrefix(s, "Digest "), -1) {
		if match[2] != "" {
			m[match[1]] = match[2]
		} else {
			m[match[1]] = match[3]
		}
	}
	return m
}

// referenceResponse computes the RFC 2617/7616 response directive
// independently of the digest library, using the nc and cnonce
// actually sent.
func referenceResponse(h func() hash.Hash, c *challenge.Challenge, p Params, cred Credentials, sent map[string]string) string {
	hx := func(s string) string {
		hh := h()
		hh.Write([]byte(s))
		return hex.EncodeToString(hh.Sum(nil))
	}
	ha1 := hx(cred.Username + ":" + c.Realm + ":" + cred.Password)
	qop := sent["qop"]
	ha2 := hx(p.Method + ":" + p.URI)
	if qop == "auth-int" {
		ha2 = hx(p.Method + ":" + p.URI + ":" + hx(string(p.Body)))
	}
	if qop == "" {
		return hx(ha1 + ":" + c.Nonce + ":" + ha2)
	}
	return hx(strings.Join([]string{ha1, c.Nonce, sent["nc"], sent["cnonce"], qop, ha2}, ":"))
}
