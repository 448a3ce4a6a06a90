package daemon

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/pomokit/pomo/internal/protocol"
	"github.com/pomokit/pomo/internal/timer"
)

// readTimeout bounds how long one connection may take to deliver its
// request, so a stalled client cannot pin a handler goroutine.
const readTimeout = 5 * time.Second

// Server accepts one request per connection, dispatches it to the engine
// and writes one response. Connections carry no state beyond that pair.
type Server struct {
	engine   *timer.Engine
	defaults timer.Config
	metrics  *Collector
	log      *slog.Logger

	wg sync.WaitGroup

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// NewServer creates a command server. defaults fills start parameters the
// client leaves unset; metrics may be nil.
func NewServer(engine *timer.Engine, defaults timer.Config, metrics *Collector, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		engine:   engine,
		defaults: defaults,
		metrics:  metrics,
		log:      log,
	}
}

// Serve runs the accept loop until Close. One failing connection only
// logs; the loop keeps accepting.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warn("accept failed", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Close stops accepting and waits for in-flight connections to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ln := s.ln
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 512), protocol.MaxRequestSize)

	if !scanner.Scan() {
		switch err := scanner.Err(); {
		case errors.Is(err, bufio.ErrTooLong):
			s.respond(conn, "", protocol.ErrorResponse(
				fmt.Sprintf("request exceeds %d bytes", protocol.MaxRequestSize)))
		case err != nil:
			s.log.Warn("request read failed", "error", err)
		}
		// EOF without data: the client connected and went away.
		return
	}

	req, err := protocol.DecodeRequest(scanner.Bytes())
	if err != nil {
		s.respond(conn, "", protocol.ErrorResponse("invalid request: malformed JSON"))
		return
	}

	s.respond(conn, req.Command, s.dispatch(req))
}

// dispatch translates one request into one engine call. Engine errors map
// 1:1 onto error responses with the error text as the message.
func (s *Server) dispatch(req *protocol.Request) protocol.Response {
	switch req.Command {
	case protocol.CmdStart:
		return s.handleStart(req.Params)

	case protocol.CmdPause:
		snap, err := s.engine.Pause()
		if err != nil {
			return protocol.ErrorResponse(err.Error())
		}
		return protocol.SuccessResponse("timer paused", snap)

	case protocol.CmdResume:
		snap, err := s.engine.Resume()
		if err != nil {
			return protocol.ErrorResponse(err.Error())
		}
		return protocol.SuccessResponse("timer resumed", snap)

	case protocol.CmdStop:
		snap, err := s.engine.Stop()
		if err != nil {
			return protocol.ErrorResponse(err.Error())
		}
		return protocol.SuccessResponse("timer stopped", snap)

	case protocol.CmdStatus:
		return protocol.SuccessResponse("ok", s.engine.Status())

	default:
		return protocol.ErrorResponse(fmt.Sprintf("unknown command %q", req.Command))
	}
}

// handleStart overlays the request parameters on the configured defaults
// and starts a session.
func (s *Server) handleStart(params *protocol.StartParams) protocol.Response {
	cfg := s.defaults
	task := ""

	if params != nil {
		if params.WorkMinutes != nil {
			cfg.WorkMinutes = *params.WorkMinutes
		}
		if params.BreakMinutes != nil {
			cfg.BreakMinutes = *params.BreakMinutes
		}
		if params.LongBreakMinutes != nil {
			cfg.LongBreakMinutes = *params.LongBreakMinutes
		}
		if params.AutoCycle != nil {
			cfg.AutoCycle = *params.AutoCycle
		}
		if params.FocusMode != nil {
			cfg.FocusMode = *params.FocusMode
		}
		if params.TaskName != nil {
			task = *params.TaskName
		}
	}

	snap, err := s.engine.Start(cfg, task)
	if err != nil {
		return protocol.ErrorResponse(err.Error())
	}
	return protocol.SuccessResponse("timer started", snap)
}

func (s *Server) respond(conn net.Conn, command string, resp protocol.Response) {
	if s.metrics != nil {
		s.metrics.RecordCommand(commandLabel(command), resp.Success())
	}

	data, err := resp.Encode()
	if err != nil {
		s.log.Error("response encoding failed", "error", err)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(readTimeout))
	if _, err := conn.Write(data); err != nil {
		s.log.Warn("response write failed", "error", err)
	}
}

// commandLabel keeps the metrics label set bounded: anything the daemon
// does not recognize counts as "invalid".
func commandLabel(command string) string {
	if protocol.KnownCommand(command) {
		return command
	}
	return "invalid"
}
