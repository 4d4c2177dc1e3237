package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/pkg/logger"
)

type Kind string

const (
	KindCommand Kind = "command"
	KindQuery   Kind = "query"
)

// Operation names a request and the replies it answers with.
type Operation struct {
	Name       string `json:"name"`
	Reply      string `json:"reply"`
	ErrorReply string `json:"error_reply"`
	Kind       Kind   `json:"kind"`
}

// Handler runs one operation against its raw JSON payload.
type Handler func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// Result is the answer to a single Dispatch call. Reply is the operation's success reply
// when Err is nil and its error reply otherwise.
type Result struct {
	Operation string
	Reply     string
	Data      interface{}
	Err       error
}

type registration struct {
	op      Operation
	handler Handler
}

type Dispatcher struct {
	handlers map[string]registration
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		handlers: make(map[string]registration),
		logger:   log,
	}
}

// Register binds handler to op. The error reply defaults to the reply name with an
// "-error" suffix.
func (d *Dispatcher) Register(op Operation, handler Handler) {
	if op.ErrorReply == "" {
		op.ErrorReply = op.Reply + "-error"
	}
	if op.Kind == "" {
		op.Kind = KindCommand
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[op.Name] = registration{op: op, handler: handler}
}

// Lookup returns the registered operation called name.
func (d *Dispatcher) Lookup(name string) (Operation, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	reg, ok := d.handlers[name]
	return reg.op, ok
}

// Operations lists the catalog sorted by name.
func (d *Dispatcher) Operations() []Operation {
	d.mu.RLock()
	ops := make([]Operation, 0, len(d.handlers))
	for _, reg := range d.handlers {
		ops = append(ops, reg.op)
	}
	d.mu.RUnlock()

	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Dispatch runs the named operation and reports its outcome to the caller only. A
// handler panic is turned into an INTERNAL error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, payload json.RawMessage) (res Result) {
	res.Operation = name

	d.mu.RLock()
	reg, ok := d.handlers[name]
	d.mu.RUnlock()
	if !ok {
		res.Reply = name + "-error"
		res.Err = domain.WrapError(domain.ErrCodeNotFound, domain.ErrUnknownOperation.Message, fmt.Errorf("%q", name))
		return res
	}

	log := logger.WithRequestID(ctx, d.logger).With(zap.String("operation", name))
	defer func() {
		if r := recover(); r != nil {
			log.Error("operation panicked", zap.Any("panic", r))
			res.Data = nil
			res.Reply = reg.op.ErrorReply
			res.Err = domain.WrapError(domain.ErrCodeInternal, "operation failed", fmt.Errorf("panic: %v", r))
		}
	}()

	data, err := reg.handler(ctx, payload)
	if err != nil {
		if domain.CodeOf(err) == domain.ErrCodeInternal {
			log.Error("operation failed", zap.Error(err))
		} else {
			log.Debug("operation rejected", zap.Error(err))
		}
		res.Reply = reg.op.ErrorReply
		res.Err = err
		return res
	}

	res.Reply = reg.op.Reply
	res.Data = data
	return res
}

// Handle adapts a typed function into a Handler. An empty or null payload leaves the
// request at its zero value.
func Handle[Req any, Res any](fn func(ctx context.Context, req Req) (Res, error)) Handler {
	return func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req Req
		if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &req); err != nil {
				return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err)
			}
		}
		return fn(ctx, req)
	}
}
