package shutdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Manager управляет graceful shutdown сервиса
// Перехватывает SIGINT/SIGTERM и выполняет зарегистрированные shutdown функции в обратном порядке
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	funcs   []shutdownFunc
	mu      sync.Mutex
	once    sync.Once
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

// New создаёт новый Manager с указанным таймаутом на каждую функцию и logger
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		timeout: timeout,
		logger:  logger,
		funcs:   make([]shutdownFunc, 0),
	}
}

// Add регистрирует shutdown функцию с указанным именем
// Функции выполняются в порядке, обратном регистрации
func (m *Manager) Add(name string, fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, shutdownFunc{name: name, fn: fn})
}

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем выполняет Shutdown
func (m *Manager) Wait(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	m.logger.Info("Received shutdown signal, starting graceful shutdown")

	return m.Shutdown()
}

// Shutdown последовательно выполняет зарегистрированные функции, каждую с context.WithTimeout
// Ошибка одной функции не останавливает остальные; все ошибки возвращаются вместе
// Повторный вызов ничего не делает
func (m *Manager) Shutdown() error {
	var errs []error

	m.once.Do(func() {
		m.mu.Lock()
		funcs := make([]shutdownFunc, len(m.funcs))
		copy(funcs, m.funcs)
		m.mu.Unlock()

		for i := len(funcs) - 1; i >= 0; i-- {
			fn := funcs[i]
			m.logger.Info("Executing shutdown function", zap.String("name", fn.name))

			ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
			start := time.Now()
			err := fn.fn(ctx)
			cancel()
			duration := time.Since(start)

			if err != nil {
				m.logger.Error("Shutdown function failed",
					zap.String("name", fn.name),
					zap.Error(err),
					zap.Duration("duration", duration))
				errs = append(errs, fmt.Errorf("%s: %w", fn.name, err))
				continue
			}
			m.logger.Info("Shutdown function completed",
				zap.String("name", fn.name),
				zap.Duration("duration", duration))
		}

		m.logger.Info("Graceful shutdown completed")
	})

	return errors.Join(errs...)
}

// ShutdownHTTPServer возвращает shutdown функцию для http.Server
func ShutdownHTTPServer(srv interface {
	Shutdown(context.Context) error
}) func(context.Context) error {
	return func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}
}

// ShutdownGRPCServer возвращает shutdown функцию для gRPC сервера
// Выполняет GracefulStop с таймаутом, при превышении таймаута вызывает Stop()
func ShutdownGRPCServer(srv interface {
	GracefulStop()
	Stop()
}) func(context.Context) error {
	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return fmt.Errorf("graceful stop timeout exceeded, forced stop")
		}
	}
}

// Close возвращает shutdown функцию для io.Closer (Kafka writer и т.п.)
func Close(c io.Closer) func(context.Context) error {
	return func(ctx context.Context) error {
		return c.Close()
	}
}

// SetHealthNotServing возвращает shutdown функцию для установки health в NOT_SERVING
func SetHealthNotServing(health interface {
	SetNotServing(string)
}) func(context.Context) error {
	return func(ctx context.Context) error {
		health.SetNotServing("")
		return nil
	}
}
