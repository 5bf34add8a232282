// Package relay forwards structured plan requests from another execution
// context to the plan lookup API and answers them asynchronously.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"medi-plans/internal/types"
)

const (
	ActionGetPlans      = "getPlans"
	ActionGetPlanDetail = "getPlanDetail"
)

// ErrUnhandled is returned by Call when no handler accepts the request's action
var ErrUnhandled = errors.New("no handler for action")

// Request is an inbound relay message
type Request struct {
	ID             string `json:"id,omitempty"`
	Action         string `json:"action" validate:"required"`
	State          string `json:"state" validate:"required,len=2,alpha"`
	ZipCode        string `json:"zipCode,omitempty" validate:"required_if=Action getPlans"`
	PlanID         string `json:"planId,omitempty" validate:"required_if=Action getPlanDetail"`
	IncludeDetails bool   `json:"includeDetails,omitempty"`
}

// Response is the reply sent back to the requesting context
type Response struct {
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SendResponse delivers a reply to the sender. The relay calls it exactly once per accepted request.
type SendResponse func(Response)

// HandlerFunc serves one action
type HandlerFunc func(ctx context.Context, req Request) (any, error)

// PlanAPI is the subset of the plan lookup client the built-in handlers need.
// Bodies are relayed as the API sent them.
type PlanAPI interface {
	GetPlansForZipRaw(ctx context.Context, state, zipCode string, includeDetails bool) (types.RawJSON, error)
	GetPlanDetailRaw(ctx context.Context, state, planID string) (types.RawJSON, error)
}

type Relay struct {
	handlerMutex sync.RWMutex
	handlers     map[string]HandlerFunc
	validate     *validator.Validate
	messages     *prometheus.CounterVec
	logger       *slog.Logger
	inflight     sync.WaitGroup
}

type Option func(*Relay)

// WithRegisterer records relay message counts in reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Relay) {
		r.messages = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medi_plans",
			Name:      "relay_messages_total",
			Help:      "Relay messages handled by action and outcome.",
		}, []string{"action", "success"})
		reg.MustRegister(r.messages)
	}
}

// NewRelay creates a relay with no handlers registered
func NewRelay(logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		handlers: make(map[string]HandlerFunc),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "relay"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// New creates a relay with the getPlans and getPlanDetail handlers bound to api
func New(api PlanAPI, logger *slog.Logger, opts ...Option) *Relay {
	r := NewRelay(logger, opts...)

	r.RegisterHandler(ActionGetPlans, func(ctx context.Context, req Request) (any, error) {
		data, err := api.GetPlansForZipRaw(ctx, req.State, req.ZipCode, req.IncludeDetails)
		if err != nil {
			return nil, err
		}
		return data, nil
	})
	r.RegisterHandler(ActionGetPlanDetail, func(ctx context.Context, req Request) (any, error) {
		data, err := api.GetPlanDetailRaw(ctx, req.State, req.PlanID)
		if err != nil {
			return nil, err
		}
		return data, nil
	})

	return r
}

// RegisterHandler registers a handler for the given action, replacing any existing one
func (r *Relay) RegisterHandler(action string, handler HandlerFunc) {
	r.handlerMutex.Lock()
	defer r.handlerMutex.Unlock()
	r.handlers[action] = handler
}

func (r *Relay) getHandler(action string) (HandlerFunc, bool) {
	r.handlerMutex.RLock()
	defer r.handlerMutex.RUnlock()
	handler, ok := r.handlers[action]
	return handler, ok
}

// OnMessage accepts a request and returns true when it will answer through
// sendResponse later. Requests for unknown actions return false and are never answered.
func (r *Relay) OnMessage(ctx context.Context, req Request, sendResponse SendResponse) bool {
	handler, ok := r.getHandler(req.Action)
	if !ok {
		r.logger.Debug("ignoring message", "action", req.Action)
		return false
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		sendResponse(r.dispatch(ctx, req, handler))
	}()

	return true
}

func (r *Relay) dispatch(ctx context.Context, req Request, handler HandlerFunc) Response {
	logger := r.logger.With("message_id", req.ID, "action", req.Action)

	resp := Response{ID: req.ID}

	if err := r.validate.StructCtx(ctx, req); err != nil {
		logger.Warn("invalid relay message", "error", err)
		resp.Error = fmt.Sprintf("invalid request: %v", err)
		r.count(req.Action, false)
		return resp
	}

	data, err := handler(ctx, req)
	if err != nil {
		logger.Error("relay handler failed", "error", err)
		resp.Error = err.Error()
		r.count(req.Action, false)
		return resp
	}

	logger.Debug("relay handler succeeded")
	resp.Success = true
	resp.Data = data
	r.count(req.Action, true)

	return resp
}

// Call sends req and waits for the reply or for ctx to end
func (r *Relay) Call(ctx context.Context, req Request) (Response, error) {
	replies := make(chan Response, 1)

	if !r.OnMessage(ctx, req, func(resp Response) { replies <- resp }) {
		return Response{}, fmt.Errorf("%w: %q", ErrUnhandled, req.Action)
	}

	select {
	case resp := <-replies:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Wait blocks until every accepted request has been answered
func (r *Relay) Wait() {
	r.inflight.Wait()
}

func (r *Relay) count(action string, success bool) {
	if r.messages == nil {
		return
	}
	r.messages.WithLabelValues(action, strconv.FormatBool(success)).Inc()
}
