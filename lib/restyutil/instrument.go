// Package restyutil captures the full request/response traffic of a resty
// client, for debugging protocol conversations that are hard to reconstruct
// from spans alone.
package restyutil

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives one rendered HTTP exchange per request, keyed by
// a monotonically increasing id.
type InstrumentOutput interface {
	Write(id string, contents string)
}

type ctxKey int

const exchangeIdKey ctxKey = 0

type instrument struct {
	output  InstrumentOutput
	tracer  trace.Tracer
	counter atomic.Uint64
}

// InstrumentClient hooks tracing and exchange capture into client. A nil
// tracer defaults to a "resty" tracer; a nil output makes this a no-op.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if output == nil {
		return
	}
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	i := &instrument{output: output, tracer: tracer}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i *instrument) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
	id := strconv.FormatUint(i.counter.Add(1), 10)
	req.SetContext(context.WithValue(ctx, exchangeIdKey, id))
	return nil
}

func (i *instrument) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	// request attributes are set here because RawRequest is not populated
	// yet in onBeforeRequest
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

	if id, ok := ctx.Value(exchangeIdKey).(string); ok {
		i.output.Write(id, formatExchange(res))
	}
	return nil
}

func (i *instrument) onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
}
