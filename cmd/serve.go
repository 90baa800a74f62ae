package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/desertthunder/statsweb/internal/server"
	"github.com/desertthunder/statsweb/internal/shared"
	"github.com/desertthunder/statsweb/internal/telemetry"
	"github.com/desertthunder/statsweb/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web front-end until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if addr := cmd.String("addr"); addr != "" {
		host, port, err := parseAddr(addr)
		if err != nil {
			return err
		}
		cfg.Host, cfg.Port = host, port
	}

	if err := r.openCache(); err != nil {
		r.logger.Warn("serving without cache", "error", err)
	}

	handler, err := r.handler()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, handler, r.logger)
	r.logger.Info("starting statsweb",
		"addr", srv.Addr(),
		"api", r.config.API.BaseURL,
		"cache", r.cache != nil,
		"sentry", r.telemetry,
	)
	return srv.ListenAndServe(ctx)
}

// handler wires the pages behind the middleware chain.
//
// sentryhttp reports panics itself before re-raising them to Recover.
func (r *Runner) handler() (http.Handler, error) {
	app, err := web.New(r.stats,
		web.WithLogger(shared.WithLogger(r.logger, "component", "web")),
		web.WithReporter(telemetry.Report),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build pages: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(
		server.Recover(r.logger, nil),
		telemetry.Middleware,
		server.RequestID,
		tagRequest,
		server.Logging(r.logger),
		server.IdentityToken,
	)
	router.Mount(app)
	return router, nil
}

// tagRequest labels error reports with the request ID.
func tagRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		telemetry.SetTag(req.Context(), "request_id", server.RequestIDFromContext(req.Context()))
		next.ServeHTTP(w, req)
	})
}

func parseAddr(addr string) (string, int, error) {
	host, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("%w: addr %q: %v", shared.ErrInvalidArgument, addr, err)
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("%w: port %q", shared.ErrInvalidArgument, rawPort)
	}
	return host, port, nil
}
