package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edirooss/urlparts/internal/config"
	"github.com/edirooss/urlparts/internal/http/handler"
	mw "github.com/edirooss/urlparts/internal/http/middleware"
	"github.com/edirooss/urlparts/internal/redis"
	"github.com/edirooss/urlparts/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	showVersion := flag.Bool("v", false, "print version and exit")
	flag.BoolVar(showVersion, "version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("urlparts-server %s (commit %s, built %s)\n", config.Version, config.GitCommit, config.BuildDate)
		os.Exit(0)
	}

	// Read env
	isDev := os.Getenv("ENV") == "dev"

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := buildLogger()
	defer log.Sync()
	log = log.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Services
	rdb := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisDB, log)
	defer rdb.Close()
	histrepo := redis.NewHistoryRepository(log, rdb, cfg.HistorySize)
	urlsvc := service.NewURLService(log, histrepo)
	summarysvc := service.NewSummaryService(log, histrepo, service.SummaryOptions{
		TTL:               cfg.SummaryTTL,
		AllowStaleOnError: true,
	})

	// Gin router
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = zap.NewStdLog(log.Named("gin")).Writer()
	r := gin.New()
	{
		r.Use(gin.Recovery()) // outermost
		r.Use(mw.RequestID())

		if isDev { // local frontend dev
			r.Use(cors.New(cors.Config{
				AllowOrigins:  append([]string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins...),
				AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowHeaders:  []string{"X-Request-ID", "Content-Type"},
				ExposeHeaders: []string{"X-Request-ID", "X-Total-Count", "X-Cache", "X-Summary-Generated-At"},
				MaxAge:        12 * time.Hour,
			}))
		} else { // behind a TLS-terminating proxy
			if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
				log.Fatal("invalid trusted proxies", zap.Error(err))
			}
			r.Use(secure.New(secure.Config{
				ContentTypeNosniff: true,
				FrameDeny:          true,
				SSLProxyHeaders: map[string]string{
					"X-Forwarded-Proto": "https",
				},
			}))
		}

		r.Use(mw.AccessLog(log.Named("access")))

		r.Use(func(c *gin.Context) {
			// Hard 2MB cap on request bodies; batch payloads are the largest.
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2<<20)
			c.Next()
		})
	}

	handler.Register(r, log, urlsvc, summarysvc, cfg.MaxConcurrentBatch)

	httpsrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,  // kills header-drip Slowloris
		ReadTimeout:       10 * time.Second, // full request read (incl. body)
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ln, err := net.Listen("tcp", httpsrv.Addr)
	if err != nil {
		log.Fatal("listen failed", zap.Error(err))
	}

	log.Info("running HTTP server", zap.String("addr", httpsrv.Addr), zap.String("version", config.Version))
	if err := serve(ctx, httpsrv, ln, 5*time.Second, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("server closed")
}

// serve runs srv on ln until ctx is done, then shuts it down and waits up to
// drainTimeout for in-flight requests before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, drainTimeout time.Duration, log *zap.Logger) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	// Serve returns as soon as Shutdown starts; wait for the drain.
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	return nil
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.DebugLevel)
	return zap.Must(logConfig.Build())
}
