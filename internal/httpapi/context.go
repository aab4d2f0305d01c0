package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// handlerContext derives the context for outbound work: canceled when the client goes
// away, when the server shuts down, or after chatTimeout when one is set. Values of the
// request context are preserved.
func handlerContext(r *http.Request, withTimeout bool) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(r.Context())
	stop := context.AfterFunc(serverBaseCtx, cancel)
	if withTimeout && chatTimeout > 0 {
		tctx, tcancel := context.WithTimeout(ctx, chatTimeout)
		return tctx, func() { tcancel(); stop(); cancel() }
	}
	return ctx, func() { stop(); cancel() }
}
