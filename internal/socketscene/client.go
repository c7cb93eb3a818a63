package socketscene

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultDialTimeout = 15 * time.Second
)

var operations = []string{
	scenestore.OpListGates,
	scenestore.OpListWires,
	scenestore.OpCreateGate,
	scenestore.OpUpdateGatePosition,
	scenestore.OpCreateWire,
	scenestore.OpDeleteWire,
}

// ErrClosed is returned for requests issued after Close.
var ErrClosed = errors.New("socket scene client is closed")

// Options configures Dial.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	// Timeout bounds every request. Zero means 10s.
	Timeout time.Duration
}

type request struct {
	RequestID string      `json:"request_id"`
	SceneID   string      `json:"scene_id,omitempty"`
	GateID    string      `json:"gate_id,omitempty"`
	WireID    string      `json:"wire_id,omitempty"`
	GateType  string      `json:"gate_type,omitempty"`
	Position  *geom.Point `json:"position,omitempty"`
	Wire      *model.Wire `json:"wire,omitempty"`
}

type response struct {
	RequestID string       `json:"request_id"`
	Error     string       `json:"error,omitempty"`
	Gates     []model.Gate `json:"gates,omitempty"`
	Wires     []model.Wire `json:"wires,omitempty"`
}

// Client is a scenestore.Store backed by a remote socket.io service.
type Client struct {
	io      *socket.Socket
	emit    func(event string, payload any)
	timeout time.Duration
	newID   func() string

	mu      sync.Mutex
	pending map[string]chan response
	closed  bool
}

var _ scenestore.Store = (*Client)(nil)

func newClient(emit func(string, any), timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		emit:    emit,
		timeout: timeout,
		newID:   uuid.NewString,
		pending: make(map[string]chan response),
	}
}

// Dial connects to the service and returns a ready client.
func Dial(ctx context.Context, o Options) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("store", "socketscene", "url", o.URL)
	logger.Info("Connecting to scene service...")

	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL '%s' must include scheme and host", o.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	c := newClient(func(event string, payload any) {
		io.Emit(event, payload)
	}, o.Timeout)
	c.io = io

	for _, op := range operations {
		io.On(types.EventName(op+".result"), func(data ...any) {
			if err := c.dispatch(data...); err != nil {
				logger.Warn("Dropping malformed reply.", "op", op, "error", err)
			}
		})
	}

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to scene service.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("unknown connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connection attempt failed.", "error", err)
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return c, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(defaultDialTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", defaultDialTimeout)
	}
}

// Close disconnects and fails every pending request with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	pending := c.pending
	c.pending = make(map[string]chan response)
	c.mu.Unlock()

	for id, ch := range pending {
		ch <- response{RequestID: id, Error: ErrClosed.Error()}
	}
	if c.io != nil {
		c.io.Disconnect()
	}
	return nil
}

// dispatch routes a reply to the request waiting on its id.
func (c *Client) dispatch(data ...any) error {
	if len(data) == 0 {
		return errors.New("reply has no payload")
	}
	res, err := decodeResponse(data[0])
	if err != nil {
		return err
	}
	c.mu.Lock()
	ch, ok := c.pending[res.RequestID]
	if ok {
		delete(c.pending, res.RequestID)
	}
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("no pending request with id '%s'", res.RequestID)
	}
	ch <- res
	return nil
}

func (c *Client) call(ctx context.Context, op string, req request) (response, error) {
	req.RequestID = c.newID()
	payload, err := encodePayload(req)
	if err != nil {
		return response{}, scenestore.Wrap(op, err)
	}

	ch := make(chan response, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return response{}, scenestore.Wrap(op, ErrClosed)
	}
	c.pending[req.RequestID] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, req.RequestID)
		c.mu.Unlock()
	}

	ctxlog.FromContext(ctx).Debug("Emitting scene request.", "op", op, "request_id", req.RequestID)
	c.emit(op, payload)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Error != "" {
			return res, scenestore.Wrap(op, errors.New(res.Error))
		}
		return res, nil
	case <-ctx.Done():
		forget()
		return response{}, scenestore.Wrap(op, ctx.Err())
	case <-timer.C:
		forget()
		return response{}, scenestore.Wrap(op, fmt.Errorf("timed out after %v waiting for '%s.result'", c.timeout, op))
	}
}

func (c *Client) ListGates(ctx context.Context, sceneID string) ([]model.Gate, error) {
	res, err := c.call(ctx, scenestore.OpListGates, request{SceneID: sceneID})
	if err != nil {
		return nil, err
	}
	return res.Gates, nil
}

func (c *Client) ListWires(ctx context.Context, sceneID string) ([]model.Wire, error) {
	res, err := c.call(ctx, scenestore.OpListWires, request{SceneID: sceneID})
	if err != nil {
		return nil, err
	}
	return res.Wires, nil
}

func (c *Client) CreateGate(ctx context.Context, sceneID, tag string, pos geom.Point) error {
	_, err := c.call(ctx, scenestore.OpCreateGate, request{SceneID: sceneID, GateType: tag, Position: &pos})
	return err
}

func (c *Client) UpdateGatePosition(ctx context.Context, gateID string, pos geom.Point) error {
	_, err := c.call(ctx, scenestore.OpUpdateGatePosition, request{GateID: gateID, Position: &pos})
	return err
}

func (c *Client) CreateWire(ctx context.Context, w model.Wire) error {
	w.ID = ""
	_, err := c.call(ctx, scenestore.OpCreateWire, request{SceneID: w.SceneID, Wire: &w})
	return err
}

func (c *Client) DeleteWire(ctx context.Context, wireID string) error {
	_, err := c.call(ctx, scenestore.OpDeleteWire, request{WireID: wireID})
	return err
}

// encodePayload turns a request into the generic map form the socket.io
// encoder handles.
func encodePayload(req request) (map[string]any, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return out, nil
}

func decodeResponse(v any) (response, error) {
	var res response
	raw, err := json.Marshal(v)
	if err != nil {
		return res, fmt.Errorf("failed to read reply: %w", err)
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("failed to decode reply: %w", err)
	}
	if res.RequestID == "" {
		return res, errors.New("reply has no request_id")
	}
	return res, nil
}
