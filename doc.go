// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package digestx provides transparent HTTP Digest Authentication (RFC 2617
and RFC 7616) for HTTP clients, within a simple and familiar interface.

A digest exchange sends the request once. If the server replies 401
Unauthorized with a Digest challenge in its WWW-Authenticate header, the
answer is computed from the challenge, the request and the credentials,
and an equivalent request is sent once more with the Authorization
header added. The second response is final, whatever its status. Any
other response, including a 401 without a usable challenge, is returned
as it is.

Create a Client to begin making requests.

	client := &digestx.Client{}
	ex, err := client.Get("https://www.example.com/private", "user", "pass")
	...
	ex, err := client.Post("https://www.example.com/upload",
		"application/json", &buf, "user", "pass")

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &digestx.Client{
		HTTPDoer: doer,
	}

To run an exchange without blocking, use Go and wait on the returned
Future:

	f := client.Go(plan, "user", "pass")
	...
	ex, err := f.Wait()

Code which already works with http.Request and http.Response can use
Send, or install a Transport in a standard client:

	resp, err := digestx.Send(http.DefaultClient, req, "user", "pass")
	...
	hc := &http.Client{
		Transport: &digestx.Transport{Username: "user", Password: "pass"},
	}

To hook into the fine-grained details of the exchange, install a handler
into the appropriate handler chain. Packages eventlog and eventotel
provide ready-made handlers for structured logging, tracing and
metrics.

	handlers := &digestx.HandlerGroup{}
	handlers.PushBack(digestx.AfterChallenge, digestx.HandlerFunc(
		func(_ digestx.Event, e *request.Execution) {
			fmt.Println("challenged by realm", e.Challenge.Realm)
		}),
	)
	client := &digestx.Client{
		HTTPDoer: doer,
		Handlers: handlers,
	}

Errors fall into three kinds. A request which cannot be captured for
replay fails with a *request.SnapshotError before anything is sent. A
failed send fails with the transport error, wrapped in a *url.Error by
Client. A challenge which cannot be answered fails with an
*answer.ComputationError. A 401 response is never an error.

No challenge, nonce or credential is ever cached between exchanges, and
no exchange sends more than two requests.
*/
package digestx
