package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/you/dex-scanner/internal/config"
	"github.com/you/dex-scanner/internal/dash"
	"github.com/you/dex-scanner/internal/engine"
	"github.com/you/dex-scanner/internal/metrics"
	"github.com/you/dex-scanner/internal/redisfeed"
	"github.com/you/dex-scanner/internal/scanner"
	"github.com/you/dex-scanner/internal/subs"
	"github.com/you/dex-scanner/internal/types"
	"github.com/you/dex-scanner/internal/ws"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// subscriber bridges the engine's subscription intents onto the websocket
// and the bounded pair tracker.
type subscriber struct {
	conn    *ws.Conn
	tracker *subs.Tracker
	log     *zap.Logger
}

func (s *subscriber) ScannerFilterChanged(f types.Filters) {
	_ = s.conn.UnsubscribeScanner()
	if err := s.conn.SubscribeScanner(f); err != nil {
		s.log.Warn("scanner-filter subscribe failed", zap.Error(err))
	}
}

func (s *subscriber) TrackPairs(entries []types.TokenEntry) {
	s.tracker.Track(entries)
}

func main() {
	cfgPath := flag.String("config", "./config.yaml", "path to config file")
	tabFlag := flag.String("tab", "trending", "initial tab: trending or new")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Warn("received signal, shutting down...")
		cancel()
	}()

	metrics.Serve(ctx, cfg.Metrics.ListenAddr, nil, logger)

	conn := ws.New(cfg.API.WsURL, logger)
	tracker, err := subs.NewTracker(cfg.Subs.MaxPairs, conn, logger)
	if err != nil {
		logger.Fatal("subscription tracker init failed", zap.Error(err))
	}

	client := scanner.NewClient(cfg.API.RestURL, logger)
	sub := &subscriber{conn: conn, tracker: tracker, log: logger}
	eng := engine.New(client, sub, cfg.Scanner.LoadThresholdRows, logger)

	if err := conn.Connect(ctx); err != nil {
		// REST snapshots still work; the engine surfaces the transport
		// error only while no data has loaded
		logger.Warn("websocket connect failed", zap.Error(err))
		eng.OnDisconnect(err)
	} else {
		go func() {
			// no auto-reconnect: when the loop exits the connection stays
			// down until someone restarts the process
			if err := conn.Run(ctx, eng); err != nil && ctx.Err() == nil {
				logger.Warn("websocket loop exited", zap.Error(err))
			}
		}()
	}

	tab := types.TabTrending
	if *tabFlag == string(types.TabNew) {
		tab = types.TabNew
	}
	eng.Start(ctx, tab)

	if cfg.Redis.Enabled {
		pub := redisfeed.NewPublisher(cfg, logger)
		if err := pub.Ping(ctx); err != nil {
			logger.Warn("redis mirror disabled: ping failed", zap.Error(err))
		} else {
			go pub.Run(ctx, eng, 5*time.Second)
			defer pub.Close()
		}
	}

	logger.Info("scanner started",
		zap.String("tab", string(tab)),
		zap.String("rest_url", cfg.API.RestURL),
		zap.String("ws_url", cfg.API.WsURL),
	)

	dash.NewServer(eng, logger).Start(ctx, cfg.Dash.ListenAddr)
}
