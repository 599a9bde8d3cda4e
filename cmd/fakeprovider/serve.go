package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philiph/zmxy/testfixtures/provider"
)

type serveOptions struct {
	port      int
	mode      string
	keysDir   string
	responses []string
	verbose   bool
}

// keyFiles are the files written to the keys directory.
type keyFiles struct {
	PrivateKey string
	PublicKey  string
}

// setupProvider builds the provider, applies canned responses and writes the
// key files the client needs.
func setupProvider(opts serveOptions) (*provider.Provider, keyFiles, error) {
	mode, err := provider.ParseMode(opts.mode)
	if err != nil {
		return nil, keyFiles{}, err
	}
	p, err := provider.New()
	if err != nil {
		return nil, keyFiles{}, err
	}
	p.SetMode(mode)

	for _, r := range opts.responses {
		method, body, ok := strings.Cut(r, "=")
		if !ok || method == "" {
			return nil, keyFiles{}, fmt.Errorf("invalid --respond %q: want method=json", r)
		}
		if err := p.Respond(method, body); err != nil {
			return nil, keyFiles{}, err
		}
	}

	if err := os.MkdirAll(opts.keysDir, 0o700); err != nil {
		return nil, keyFiles{}, fmt.Errorf("create keys dir: %w", err)
	}
	files := keyFiles{
		PrivateKey: filepath.Join(opts.keysDir, "private.pem"),
		PublicKey:  filepath.Join(opts.keysDir, "zhima.pem"),
	}
	if err := os.WriteFile(files.PrivateKey, p.ClientPrivateKeyPEM(), 0o600); err != nil {
		return nil, keyFiles{}, fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(files.PublicKey, p.PublicKeyPEM(), 0o644); err != nil {
		return nil, keyFiles{}, fmt.Errorf("write public key: %w", err)
	}
	return p, files, nil
}

// configSnippet returns a zmxy.yaml that points at the fake provider.
func configSnippet(files keyFiles, endpoint string) string {
	return fmt.Sprintf(`platform: local
app_id: "1000000"
private_key_file: %s
public_key_file: %s
endpoint: %s
`, files.PrivateKey, files.PublicKey, endpoint)
}

func serve(ctx context.Context, opts serveOptions, stdout io.Writer) error {
	level := zapcore.InfoLevel
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, files, err := setupProvider(opts)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort("localhost", strconv.Itoa(opts.port))
	endpoint := "http://" + addr + "/openapi.do"
	fmt.Fprintf(stdout, "# zmxy.yaml for this provider\n%s\n", configSnippet(files, endpoint))

	srv := &http.Server{
		Addr:              addr,
		Handler:           logRequests(p, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("fake provider listening",
		zap.String("endpoint", endpoint),
		zap.String("mode", opts.mode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs each gateway call with the method it named.
func logRequests(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request served",
			zap.String("http_method", r.Method),
			zap.String("method", r.URL.Query().Get("method")),
			zap.String("app_id", r.URL.Query().Get("app_id")),
			zap.Duration("elapsed", time.Since(start)))
	})
}
