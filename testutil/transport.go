package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
)

var ErrNoResponseQueued = errors.New("testutil: no response queued")

// StubResponse is a canned httpclient.Response.
type StubResponse struct {
	Status  int
	Payload []byte
}

func (r *StubResponse) StatusCode() int { return r.Status }
func (r *StubResponse) Body() []byte    { return r.Payload }

func JSONResponse(status int, body any) *StubResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}

	return &StubResponse{Status: status, Payload: payload}
}

func RawResponse(status int, payload string) *StubResponse {
	return &StubResponse{Status: status, Payload: []byte(payload)}
}

type step struct {
	resp httpclient.Response
	err  error
}

// FakeTransport replays queued responses in order and records every request it
// receives. The last queued step is repeated once the queue is drained.
type FakeTransport struct {
	mu    sync.Mutex
	steps []step
	calls []*httpclient.Outgoing
}

func NewFakeTransport(responses ...httpclient.Response) *FakeTransport {
	transport := &FakeTransport{
		mu:    sync.Mutex{},
		steps: make([]step, 0, len(responses)),
		calls: nil,
	}

	for _, resp := range responses {
		transport.Queue(resp)
	}

	return transport
}

func (f *FakeTransport) Queue(resp httpclient.Response) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.steps = append(f.steps, step{resp: resp, err: nil})

	return f
}

func (f *FakeTransport) QueueError(err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.steps = append(f.steps, step{resp: nil, err: err})

	return f
}

func (f *FakeTransport) Send(_ context.Context, out *httpclient.Outgoing) (httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, out)

	if len(f.steps) == 0 {
		return nil, ErrNoResponseQueued
	}

	next := f.steps[0]
	if len(f.steps) > 1 {
		f.steps = f.steps[1:]
	}

	return next.resp, next.err
}

func (f *FakeTransport) Calls() []*httpclient.Outgoing {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*httpclient.Outgoing(nil), f.calls...)
}

func (f *FakeTransport) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// LastCall returns the most recent request or nil when nothing was sent.
func (f *FakeTransport) LastCall() *httpclient.Outgoing {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return nil
	}

	return f.calls[len(f.calls)-1]
}
