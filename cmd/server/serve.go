package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"clinic-scheduler-api/internal/clinicpb"
	"clinic-scheduler-api/internal/events"
	gweb "clinic-scheduler-api/internal/grpcweb"
	"clinic-scheduler-api/internal/handler"
	"clinic-scheduler-api/internal/middleware"
	"clinic-scheduler-api/internal/obs"
	"clinic-scheduler-api/internal/rest"
	"clinic-scheduler-api/internal/scheduling"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gRPC, gRPC-Web and REST listeners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, log := rt.cfg, rt.log

	// run migrations
	if n, err := rt.st.Migrate(ctx); err != nil {
		return err
	} else if n > 0 {
		log.Info().Int("applied", n).Msg("migrations applied")
	}

	shutdownTracer, err := obs.InitTracer(ctx, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	pub := scheduling.NopPublisher()
	if cfg.RabbitURL != "" {
		p, err := events.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
		log.Info().Str("exchange", cfg.EventsExchange).Msg("publishing appointment events")
	}

	svc, tokens, err := rt.service(pub)
	if err != nil {
		return err
	}
	loc, _ := cfg.Location()
	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	// grpc server
	srv := grpc.NewServer(append(clinicpb.ServerOptions(),
		grpc.ChainUnaryInterceptor(
			middleware.Logging(log),
			middleware.RateLimit(rl),
			middleware.Auth(tokens),
		),
	)...)
	clinicpb.RegisterClinicServiceServer(srv, handler.New(svc, loc))

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return err
	}
	errc := make(chan error, 3)
	go func() {
		log.Info().Str("port", cfg.GRPCPort).Msg("grpc listening")
		errc <- srv.Serve(lis)
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, log)
	if err != nil {
		return err
	}
	defer bridge.Close()
	webSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           bridge.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	restSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           rest.NewRouter(svc, tokens, rl, loc, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	for name, s := range map[string]*http.Server{"grpc-web": webSrv, "rest": restSrv} {
		go func(name string, s *http.Server) {
			log.Info().Str("addr", s.Addr).Msg(name + " listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}(name, s)
	}

	// graceful shutdown
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err = <-errc:
		log.Error().Err(err).Msg("listener failed")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = webSrv.Shutdown(sctx)
	_ = restSrv.Shutdown(sctx)
	srv.GracefulStop()
	return err
}
