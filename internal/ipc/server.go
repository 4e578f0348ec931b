package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"tabtidy/internal/api"
	"tabtidy/internal/daemon"
	"tabtidy/internal/engine"
	"tabtidy/internal/journal"
	"tabtidy/internal/logging"
	"tabtidy/internal/preflight"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("TabTidy", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Organize(req OrganizeRequest, resp *OrganizeResponse) error {
	s.log().Debug("organize requested", logging.Int("threshold", req.Threshold))
	jobID, err := s.daemon.Engine().OrganizeAndClose(s.ctx, req.Threshold, req.AutoClose)
	if err != nil {
		if errors.Is(err, engine.ErrJobActive) {
			resp.Conflict = true
			resp.Message = err.Error()
			return nil
		}
		return err
	}
	resp.JobID = jobID
	resp.Message = "organize complete"
	return nil
}

func (s *service) Close(req CloseRequest, resp *CloseResponse) error {
	s.log().Debug("close requested", logging.Int("threshold", req.Threshold))
	jobID, err := s.daemon.Engine().CloseLowImportance(s.ctx, req.Threshold)
	if err != nil {
		if errors.Is(err, engine.ErrJobActive) {
			resp.Conflict = true
			resp.Message = err.Error()
			return nil
		}
		return err
	}
	resp.JobID = jobID
	resp.Message = "close complete"
	return nil
}

func (s *service) Undo(_ UndoRequest, resp *UndoResponse) error {
	s.log().Debug("undo requested")
	jobID, err := s.daemon.Engine().UndoLastAction(s.ctx)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrJobActive):
			resp.Conflict = true
			resp.Message = err.Error()
			return nil
		case errors.Is(err, journal.ErrNothingToUndo):
			resp.NothingToUndo = true
			resp.Message = err.Error()
			return nil
		}
		return err
	}
	resp.JobID = jobID
	resp.Message = "undo complete"
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Status = api.StatusView{
		Running:       status.Running,
		PID:           status.PID,
		LockFilePath:  status.LockFilePath,
		JournalDBPath: status.JournalDBPath,
		Phase:         string(status.Job.Phase),
		JobID:         status.Job.JobID,
	}
	resp.Checks = api.FromPreflightResults(preflight.RunAll(s.ctx, s.daemon.Config()))
	return nil
}

func (s *service) Journal(_ JournalRequest, resp *JournalResponse) error {
	record, err := s.daemon.Engine().Store().Last(s.ctx)
	if err != nil {
		if errors.Is(err, journal.ErrNothingToUndo) {
			resp.Found = false
			return nil
		}
		return err
	}
	resp.Found = true
	resp.Record = api.FromActionRecord(record)
	return nil
}

func (s *service) SettingGet(req SettingGetRequest, resp *SettingGetResponse) error {
	value, found, err := s.daemon.Engine().Store().GetSetting(s.ctx, req.Key)
	if err != nil {
		return err
	}
	resp.Found = found
	resp.Value = value
	return nil
}

func (s *service) SettingSet(req SettingSetRequest, _ *SettingSetResponse) error {
	return s.daemon.Engine().Store().SetSetting(s.ctx, req.Key, req.Value)
}

func (s *service) SettingRemove(req SettingRemoveRequest, _ *SettingRemoveResponse) error {
	return s.daemon.Engine().Store().RemoveSetting(s.ctx, req.Key)
}

func (s *service) TestNotify(_ TestNotifyRequest, resp *TestNotifyResponse) error {
	if err := s.daemon.TestNotification(s.ctx); err != nil {
		return err
	}
	resp.Message = "test notification sent"
	return nil
}

func (s *service) SyntheticTabs(req SyntheticTabsRequest, resp *SyntheticTabsResponse) error {
	if err := s.daemon.Engine().CreateSyntheticTabs(s.ctx, req.Count); err != nil {
		if errors.Is(err, engine.ErrJobActive) {
			resp.Conflict = true
			resp.Message = err.Error()
			return nil
		}
		return err
	}
	resp.Message = "synthetic tabs created"
	return nil
}

func (s *service) CloseAllButActive(_ CloseAllButActiveRequest, resp *CloseAllButActiveResponse) error {
	if err := s.daemon.Engine().CloseAllButActive(s.ctx); err != nil {
		if errors.Is(err, engine.ErrJobActive) {
			resp.Conflict = true
			resp.Message = err.Error()
			return nil
		}
		return err
	}
	resp.Message = "closed all but active"
	return nil
}
