package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fogchess/internal/engine"
	"fogchess/internal/server/game"
	httpserver "fogchess/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞；无图形界面的环境会失败，忽略
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getint64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func main() {
	cfg := httpserver.DefaultConfig()
	addr := flag.String("addr", getenv("FOGCHESS_ADDR", cfg.Addr), "listen address")
	aiDelay := flag.Duration("ai-delay", getdur("FOGCHESS_AI_DELAY", 500*time.Millisecond), "engine think delay")
	seed := flag.Int64("seed", getint64("FOGCHESS_SEED", 0), "engine RNG seed (0 = time based)")
	debug := flag.Bool("debug", getenb("FOGCHESS_DEBUG", false), "allow ?debug=1 to return the full board")
	open := flag.Bool("open", false, "open the default browser")
	flag.Parse()

	var log *zap.Logger
	var err error
	if *debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg.Addr = *addr
	cfg.Debug = *debug

	eng := engine.NewEngine(*seed)
	eng.ThinkDelay = *aiDelay
	mgr := game.NewManager(eng, log.Named("game"))
	srv := httpserver.NewServer(cfg, mgr, log.Named("http"))

	done := make(chan struct{})
	go srv.Hub().Run(done)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.Duration("ai_delay", *aiDelay),
		zap.Bool("debug", cfg.Debug))

	if *open {
		// 延迟一点再打开浏览器，等监听就绪
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := cfg.Addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host + "/healthz")
		}()
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	select {
	case <-sigCtx.Done():
		log.Info("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn("graceful shutdown failed", zap.Error(err))
		_ = server.Close()
	}
	close(done)
}
