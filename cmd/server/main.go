// glyphcrawl-server serves the dungeon over SSH. Every connection plays its
// own independent game.
//
//	go build -o glyphcrawl-server ./cmd/server
//	./glyphcrawl-server -config glyphcrawl.toml
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"

	"glyphcrawl/internal/config"
	"glyphcrawl/internal/game"
	"glyphcrawl/internal/logging"
	internalssh "glyphcrawl/internal/ssh"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "", "path to a TOML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	keyFile := flag.String("key", "", "PEM host key path, created if absent (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server stopped")
}

// serve runs the SSH server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, log)
	if err != nil {
		return err
	}

	srv := &gossh.Server{
		Addr: cfg.Server.Addr,
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, log)
		},
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn("shutdown", zap.Error(err))
			return srv.Close()
		}
		return nil
	})
	return g.Wait()
}

// allowedTerms lists the terminal types a client may select. Anything else
// falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const maxNameBytes = 16

// sanitizeName drops control characters from an SSH user name and cuts it to
// maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// termMu serialises the TERM lookup done by tcell while a screen is built.
var termMu sync.Mutex

// handleSession plays one game on the connection. It blocks until the player
// quits or disconnects.
func handleSession(s gossh.Session, cfg *config.Config, base *zap.Logger) {
	log := base.With(
		zap.String("session", uuid.NewString()),
		zap.String("user", sanitizeName(s.User())),
		zap.String("remote", s.RemoteAddr().String()),
	)

	pty, winCh, ok := s.Pty()
	if !ok {
		fmt.Fprintln(s, "glyphcrawl needs a terminal. Connect with: ssh -t <host>")
		return
	}
	term := pty.Term
	if !allowedTerms[term] {
		term = "xterm-256color"
	}

	tty := internalssh.NewTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		log.Warn("terminal setup", zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		log.Warn("screen init", zap.Error(err))
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-s.Context().Done():
			screen.Fini()
		case <-done:
		}
	}()

	log.Info("player connected", zap.String("term", term))
	if err := game.New(screen, cfg, log).Run(); err != nil {
		log.Error("game ended with error", zap.Error(err))
		_ = s.Exit(1)
		return
	}
	log.Info("player left")
}

// loadOrCreateHostKey reads a PEM private key from path, or generates an
// ed25519 key and stores it there.
func loadOrCreateHostKey(path string, log *zap.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", zap.String("path", path))
			return signer, nil
		}
		log.Warn("unreadable host key, generating a new one", zap.String("path", path))
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("host key signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "glyphcrawl server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		log.Warn("host key not saved", zap.String("path", path), zap.Error(err))
	} else {
		log.Info("generated host key", zap.String("path", path))
	}
	return signer, nil
}
