package transportfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/transport"
)

var _ transport.Transport = (*FakeTransport)(nil)

// Call records a single Request invocation.
type Call struct {
	Path    string
	Params  *oauthmodel.Params
	Options transport.RequestOptions
}

// Response is a canned reply. When Err is set it is returned instead of Payload.
type Response struct {
	Payload map[string]any
	Err     error
}

// FakeTransport records every request and replies from a queue of canned responses.
// Once the queue is drained it replies with an empty payload.
type FakeTransport struct {
	calls     []Call
	responses []Response
	lock      sync.Mutex
}

func NewFakeTransport(responses ...Response) *FakeTransport {
	return &FakeTransport{responses: responses}
}

// Enqueue appends canned responses.
func (ft *FakeTransport) Enqueue(responses ...Response) {
	ft.lock.Lock()
	defer ft.lock.Unlock()
	ft.responses = append(ft.responses, responses...)
}

func (ft *FakeTransport) Request(ctx context.Context, path string, params *oauthmodel.Params, opts ...transport.RequestOption) (map[string]any, error) {
	ft.lock.Lock()
	defer ft.lock.Unlock()

	ft.calls = append(ft.calls, Call{
		Path:    path,
		Params:  params.Clone(),
		Options: transport.ApplyOptions(opts...),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(ft.responses) == 0 {
		return map[string]any{}, nil
	}
	resp := ft.responses[0]
	ft.responses = ft.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Payload, nil
}

// Calls returns the recorded requests in order.
func (ft *FakeTransport) Calls() []Call {
	ft.lock.Lock()
	defer ft.lock.Unlock()
	return append([]Call(nil), ft.calls...)
}
