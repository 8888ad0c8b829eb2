package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"exif-reader/internal/logger"
)

const DefaultTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() {
	f()
}

type component struct {
	name string
	c    Shutdownable
}

// Manager shuts registered components down once, in reverse order of
// registration.
type Manager struct {
	components []component
	logger     logger.Logger
	timeout    time.Duration
	onSignal   func(os.Signal)
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:  log,
		timeout: DefaultTimeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetTimeout bounds how long a single component may take to shut down.
func (m *Manager) SetTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
}

// OnSignal replaces the default reaction to SIGINT/SIGTERM, which is to
// call Shutdown. The GUI uses it to quit the event loop instead.
func (m *Manager) OnSignal(handler func(os.Signal)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSignal = handler
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, c: c})
}

// Listen waits for a termination signal in the background.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			m.logger.Info("shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})

			m.mu.Lock()
			handler := m.onSignal
			m.mu.Unlock()

			if handler != nil {
				handler(sig)
				return
			}
			m.Shutdown()
		case <-m.done:
		}
	}()
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		entry := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			entry.c.Shutdown()
		}()

		select {
		case <-done:
			m.logger.Debug("component shut down", map[string]interface{}{
				"component": entry.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning("component shutdown timeout", map[string]interface{}{
				"component": entry.name,
			})
		}
	}

	m.logger.Info("shutdown sequence completed", nil)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
