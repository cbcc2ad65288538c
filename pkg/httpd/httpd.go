// Package httpd manages the lifecycle of an HTTP server: listen,
// serve until the context is canceled, then shut down gracefully.
package httpd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr     string
	doneCh   chan error
	handler  http.Handler
	listener net.Listener
	logger   *zap.Logger
	srv      *http.Server
}

func New(addr string, h http.Handler) *Server {
	return &Server{
		addr:    addr,
		handler: h,
		logger:  zap.NewNop(),
	}
}

func (s *Server) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Addr returns the listen address, with the port the kernel picked if
// the configured port was 0.  Valid after Start.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start binds the listen address and serves in the background.  When
// ctx is canceled the server drains in-flight requests for up to
// shutdownTimeout before closing.  Start only fails if the listen
// itself does; serve failures are reported by Wait.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler: s.handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	s.doneCh = make(chan error)
	serveCh := make(chan error)
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveCh <- err
	}()
	go func() {
		var err error
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down")
			timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err = s.srv.Shutdown(timeoutCtx); err != nil {
				s.logger.Warn("Graceful shutdown failed, closing", zap.Error(err))
				s.srv.Close()
			}
			<-serveCh
		case err = <-serveCh:
		}
		s.doneCh <- err
	}()
	s.logger.Info("Listening", zap.String("addr", s.Addr()))
	return nil
}

// Wait blocks until the server has stopped.
func (s *Server) Wait() error {
	return <-s.doneCh
}
