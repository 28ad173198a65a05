// emoji-arpg-server serves the item sandbox over SSH. Every connection gets
// its own independent game. Build:
//
//	go build -o emoji-arpg-server ./cmd/server
//
// Configuration comes from the environment (or a .env file): SSH_PORT,
// SSH_HOST_KEY, METRICS_ADDR and the ARPG_* settings. Connect with:
//
//	ssh -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"emoji-arpg/internal/config"
	"emoji-arpg/internal/game"
	"emoji-arpg/internal/logger"
	"emoji-arpg/internal/metrics"
	internalssh "emoji-arpg/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg, os.Stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	signer, err := loadOrCreateHostKey(cfg.SSHHostKey, log)
	if err != nil {
		log.Error("host key unavailable", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		httpSrv := newHTTPServer(cfg.MetricsAddr, reg, log)
		go func() {
			log.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", err)
			}
		}()
		defer httpSrv.Close()
	}

	h := &handler{cfg: cfg, log: log, metrics: m, ctx: ctx}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.SSHPort),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("ssh server listening", "port", cfg.SSHPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		log.Error("ssh server failed", "error", err)
		os.Exit(1)
	}
	log.Info("ssh server stopped")
}

// handler runs one game per SSH session.
type handler struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	ctx     context.Context
	nextID  atomic.Int64
}

// handleSession blocks for the duration of the connection so the SSH
// session stays open.
func (h *handler) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	name := sanitizeName(s.User())
	sessionID := fmt.Sprintf("%d-%s", h.nextID.Add(1), name)
	log := logger.WithSession(h.log, sessionID)

	screen, err := internalssh.NewScreen(internalssh.NewSessionTty(s, pty, winCh), sessionTerm(s.Environ()))
	if err != nil {
		fmt.Fprintf(s, "%v\n", err)
		log.Warn("session rejected", "error", err)
		return
	}
	defer screen.Fini()

	g, err := game.New(h.cfg, screen,
		game.WithLogger(log),
		game.WithMetrics(h.metrics),
		game.WithSessionName(name))
	if err != nil {
		log.Error("failed to start game", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()
	go func() {
		select {
		case <-s.Context().Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info("session started", "remote", s.RemoteAddr().String())
	g.Run(ctx)
	log.Info("session ended")
}

// allowedTerms are terminal types we trust to have a terminfo entry. Anything
// else falls back to xterm-256color rather than reaching the filesystem.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// sessionTerm picks the TERM value from a session environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return defaultTerm
}

const maxNameBytes = 16

// sanitizeName strips control characters from an SSH user name and limits
// it to maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	log.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "emoji-arpg server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			log.Warn("could not persist host key", "path", path, "error", err)
		}
	}
	return signer, nil
}
