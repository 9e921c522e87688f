// Package transport exposes the broker over concrete byte-message
// request/response carriers. Neither transport contains business logic:
// each inbound frame goes to the broker, each reply goes straight back to
// the client that sent the frame.
package transport

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"

	"seabattle/internal/server"
)

// TCPServer serves newline-framed byte messages over TCP. Each connection
// is strictly request/response: the client sends one frame and reads one
// reply before sending the next.
type TCPServer struct {
	addr   string
	broker *server.Broker
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewTCPServer creates a TCP transport bound to the broker.
func NewTCPServer(addr string, broker *server.Broker, logger *slog.Logger) *TCPServer {
	return &TCPServer{
		addr:   addr,
		broker: broker,
		logger: logger.With(slog.String("component", "tcp")),
	}
}

// Start listens on the configured address and serves connections until ctx
// is cancelled.
func (s *TCPServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("tcp transport listening", slog.String("addr", listener.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.logger.Info("tcp transport stopped")
				return nil
			}
			s.logger.Warn("accept failed", slog.String("error", err.Error()))
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

// Addr returns the bound listener address, or nil before Start.
func (s *TCPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *TCPServer) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	s.logger.Info("client connected", slog.String("remote", remote))

	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		payload := make([]byte, len(scanner.Bytes()))
		copy(payload, scanner.Bytes())

		reply, err := s.broker.Submit(ctx, payload)
		if err != nil {
			return
		}

		if _, err := writer.Write(append(reply, '\n')); err != nil {
			break
		}
		if err := writer.Flush(); err != nil {
			break
		}
	}

	s.logger.Info("client disconnected", slog.String("remote", remote))
}
