package device

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nekoflow/nekodev/internal/accel"
	"github.com/nekoflow/nekodev/internal/opencl"
	"github.com/nekoflow/nekodev/internal/precision"
)

// Handles are the opaque native handles kernels are dispatched with.
// All three are nil for the cpu backend.
type Handles struct {
	Context unsafe.Pointer
	Queue   unsafe.Pointer
	Device  unsafe.Pointer
}

// Context is an initialized device: an execution context, a command queue
// and the device they belong to. It is safe for concurrent use.
type Context struct {
	id        string
	backend   Backend
	precision precision.Precision
	selection accel.Selection
	platform  accel.PlatformInfo
	device    accel.DeviceInfo
	logger    *slog.Logger

	mu     sync.RWMutex
	rt     Runtime
	closed bool
}

type options struct {
	logger *slog.Logger
	opener Opener
}

// Option configures Open and Enumerate.
type Option func(*options)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOpener replaces the runtime the backend discovers and opens devices with.
func WithOpener(op Opener) Option {
	return func(o *options) { o.opener = op }
}

func buildOptions(backend Backend, opts []Option) options {
	o := options{logger: slog.Default()}
	switch backend {
	case BackendCPU:
		o.opener = hostOpener{}
	case BackendOpenCL:
		o.opener = openclOpener{}
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Enumerate lists the platforms and devices a backend can see.
func Enumerate(backend Backend, opts ...Option) ([]accel.PlatformInfo, error) {
	if !backend.known() {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", string(backend))
	}
	o := buildOptions(backend, opts)
	platforms, err := o.opener.Enumerate()
	if err != nil {
		return nil, wrapRuntimeError(backend, err)
	}
	return platforms, nil
}

// Open initializes the device described by cfg.
//
// The returned Context must be released with Close.
func Open(cfg Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(cfg.Backend, opts)

	platforms, err := o.opener.Enumerate()
	if err != nil {
		return nil, wrapRuntimeError(cfg.Backend, err)
	}
	if len(platforms) == 0 {
		return nil, wrapRuntimeError(cfg.Backend, accel.ErrNoDevices)
	}

	sel, err := accel.Select(platforms, cfg.Preference())
	if err != nil {
		return nil, errors.WithMessagef(err, "select %s device", cfg.Backend)
	}
	platform := platforms[sel.Platform]
	dev := platform.Devices[sel.Device]

	if cfg.Precision.RequiresFP64() && !dev.FP64 {
		return nil, errors.Wrapf(ErrPrecisionUnsupported, "%s on %q", cfg.Precision.Name, dev.Name)
	}

	rt, err := o.opener.Open(sel)
	if err != nil {
		return nil, wrapRuntimeError(cfg.Backend, err)
	}
	// The runtime enumerates again on open; trust what it actually opened.
	if d, ok := rt.(describer); ok {
		platform, dev = d.Info()
	}

	c := &Context{
		id:        uuid.NewString(),
		backend:   cfg.Backend,
		precision: cfg.Precision,
		selection: sel,
		platform:  platform,
		device:    dev,
		logger:    o.logger,
		rt:        rt,
	}

	c.logger.Info("Device context opened",
		"id", c.id,
		"backend", c.backend,
		"platform", platform.Name,
		"device", dev.Name,
		"type", dev.Type,
		"precision", c.precision.Name)

	return c, nil
}

// describer is implemented by runtimes that report the device they opened.
type describer interface {
	Info() (accel.PlatformInfo, accel.DeviceInfo)
}

// wrapRuntimeError keeps both ErrBackendUnavailable and the runtime cause matchable.
func wrapRuntimeError(backend Backend, err error) error {
	if errors.Is(err, opencl.ErrNotBuilt) || errors.Is(err, accel.ErrNoDevices) {
		return fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, backend, err)
	}
	return errors.WithMessagef(err, "%s runtime", backend)
}

// ID uniquely identifies this context in logs.
func (c *Context) ID() string { return c.id }

// Backend returns the backend the context was opened on.
func (c *Context) Backend() Backend { return c.backend }

// Precision returns the kernel precision.
func (c *Context) Precision() precision.Precision { return c.precision }

// Selection returns the platform and device indexes that were opened.
func (c *Context) Selection() accel.Selection { return c.selection }

// Platform describes the platform owning the device.
func (c *Context) Platform() accel.PlatformInfo { return c.platform }

// Device describes the opened device.
func (c *Context) Device() accel.DeviceInfo { return c.device }

// Handles returns the native context, queue and device handles. The handles
// are only valid until Close.
func (c *Context) Handles() (Handles, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return Handles{}, ErrClosed
	}
	return Handles{
		Context: c.rt.Context(),
		Queue:   c.rt.Queue(),
		Device:  c.rt.DeviceID(),
	}, nil
}

// Finish blocks until all work submitted to the queue has completed.
func (c *Context) Finish() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.rt.Finish(); err != nil {
		return errors.WithMessagef(err, "finish %s", c.id)
	}
	return nil
}

// Close releases the queue and context. It waits for in-flight Finish calls
// and is a no-op after the first call.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.rt.Close()
	c.rt = nil
	c.logger.Debug("Device context closed", "id", c.id)
	return nil
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
