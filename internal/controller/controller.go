// Package controller implements the central dispatcher process: it
// accepts car registrations and hall calls over TCP, selects a car per
// call, and relays destinations to cars (spec §4.2).
package controller

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/floor"
	"github.com/ManuGH/liftctl/internal/log"
	"github.com/ManuGH/liftctl/internal/metrics"
	"github.com/ManuGH/liftctl/internal/registry"
	"github.com/ManuGH/liftctl/internal/wire"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Server accepts connections and routes each to a car or call session.
type Server struct {
	Registry *registry.Registry
}

// New returns a Server backed by a fresh, empty registry.
func New() *Server {
	return &Server{Registry: registry.New()}
}

// Serve accepts connections on ln until ctx is cancelled or Accept fails,
// handling each on its own goroutine (spec §4.2: "each accepted
// connection is serviced by its own worker").
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		sessionID := uuid.NewString()
		go s.handleConn(ctx, conn, sessionID)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn, sessionID string) {
	defer conn.Close()
	logger := log.WithComponent("controller").With().Str("session", sessionID).Logger()

	payload, err := wire.ReadFrame(conn)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Warn().Err(err).Msg("failed to read first frame")
		}
		return
	}

	switch wire.Sniff(payload) {
	case wire.KindCar:
		s.handleCarSession(ctx, conn, payload, logger)
	case wire.KindCall:
		s.handleCallSession(conn, payload, logger)
	default:
		logger.Warn().Str("payload", payload).Msg("dropping connection with unrecognised first message")
	}
}

// handleCarSession parses the CAR registration, inserts the car into the
// registry, then loops reading STATUS reports until the connection
// closes, at which point the car is removed (spec §4.2).
func (s *Server) handleCarSession(ctx context.Context, conn net.Conn, first string, logger zerolog.Logger) {
	msg, err := wire.ParseCar(first)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed CAR registration")
		return
	}
	low, err := floor.ToInt(msg.Lowest)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed CAR lowest floor")
		return
	}
	high, err := floor.ToInt(msg.Highest)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed CAR highest floor")
		return
	}

	car := s.Registry.Register(msg.Name, low, high, conn)
	logger = logger.With().Str("car", msg.Name).Logger()
	logger.Info().Int("low", low).Int("high", high).Msg("car registered")
	defer func() {
		s.Registry.Remove(msg.Name)
		logger.Info().Msg("car connection closed")
	}()

	for {
		payload, err := wire.ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn().Err(err).Msg("car session read error")
			}
			return
		}

		switch wire.Sniff(payload) {
		case wire.KindStatus:
			status, err := wire.ParseStatus(payload)
			if err != nil {
				logger.Warn().Err(err).Str("payload", payload).Msg("malformed STATUS")
				continue
			}
			parsed, err := parseStatusFields(status)
			if err != nil {
				logger.Warn().Err(err).Str("payload", payload).Msg("malformed STATUS fields")
				continue
			}
			car.SetStatus(parsed.status, parsed.current, parsed.destination)
		default:
			logger.Warn().Str("payload", payload).Msg("unexpected message on car session")
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleCallSession parses the CALL, selects a car via the registry, and
// replies CAR name (then forwards FLOOR src to the car) or UNAVAILABLE
// (spec §4.2).
func (s *Server) handleCallSession(conn net.Conn, first string, logger zerolog.Logger) {
	call, err := wire.ParseCall(first)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed CALL")
		return
	}

	src, err := floor.ToInt(call.Src)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed CALL src")
		return
	}
	dst, err := floor.ToInt(call.Dst)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed CALL dst")
		return
	}

	car, ok := s.Registry.Select(src, dst)
	if !ok {
		metrics.RecordCall("unavailable")
		if err := wire.WriteFrame(conn, wire.Unavailable{}.String()); err != nil {
			logger.Warn().Err(err).Msg("failed to write UNAVAILABLE reply")
		}
		return
	}

	metrics.RecordCall("dispatched")
	car.SetDestination(dst)
	if err := wire.WriteFrame(conn, wire.CarReply{Name: car.Name}.String()); err != nil {
		logger.Warn().Err(err).Msg("failed to write CAR reply")
		return
	}
	if err := wire.WriteFrame(car.Conn, wire.Floor{Target: call.Src}.String()); err != nil {
		logger.Warn().Err(err).Str("car", car.Name).Msg("failed to forward FLOOR to car")
	}
}

type parsedStatus struct {
	status      elevator.Status
	current     int
	destination int
}

func parseStatusFields(s wire.Status) (parsedStatus, error) {
	status, err := elevator.ParseStatus(s.Status)
	if err != nil {
		return parsedStatus{}, err
	}
	current, err := floor.ToInt(s.Current)
	if err != nil {
		return parsedStatus{}, err
	}
	destination, err := floor.ToInt(s.Destination)
	if err != nil {
		return parsedStatus{}, err
	}
	return parsedStatus{status: status, current: current, destination: destination}, nil
}
