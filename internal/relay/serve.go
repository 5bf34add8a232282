package relay

import (
	"context"
	"fmt"
)

// Envelope carries a request across the channel boundary together with the
// channel its reply must go to. Reply should be buffered. When Ctx is set the
// handler runs with it instead of Serve's context.
type Envelope struct {
	Ctx     context.Context
	Request Request
	Reply   chan<- Response
}

// Serve answers envelopes from inbox until ctx ends or inbox is closed, then
// waits for in-flight requests. Envelopes for unknown actions get an error reply
// so channel senders never block forever.
func (r *Relay) Serve(ctx context.Context, inbox <-chan Envelope) error {
	r.logger.Info("relay started")
	defer r.logger.Info("relay stopped")

	for {
		select {
		case <-ctx.Done():
			r.Wait()
			return nil
		case env, ok := <-inbox:
			if !ok {
				r.Wait()
				return nil
			}

			reqCtx := env.Ctx
			if reqCtx == nil {
				reqCtx = ctx
			}

			reply := env.Reply
			if !r.OnMessage(reqCtx, env.Request, func(resp Response) { reply <- resp }) {
				reply <- Response{
					ID:    env.Request.ID,
					Error: fmt.Sprintf("%v: %q", ErrUnhandled, env.Request.Action),
				}
			}
		}
	}
}
