//go:build unit

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/testfixtures/provider"
)

// setupCLI starts a fake provider and writes a config file pointing at it.
func setupCLI(t *testing.T, extra string) (*provider.Provider, string) {
	t.Helper()

	p, endpoint := provider.NewTestServer(t)
	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "zhima.pem")
	if err := os.WriteFile(priv, p.ClientPrivateKeyPEM(), 0o600); err != nil {
		t.Fatalf("write private key: %v", err)
	}
	if err := os.WriteFile(pub, p.PublicKeyPEM(), 0o600); err != nil {
		t.Fatalf("write public key: %v", err)
	}

	cfg := fmt.Sprintf("platform: bmqb\napp_id: \"1000980\"\nprivate_key_file: %s\npublic_key_file: %s\nendpoint: %s\n%s",
		priv, pub, endpoint, extra)
	return p, writeFile(t, dir, "zmxy.yaml", cfg)
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decodeOutput(t *testing.T, out string) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return m
}

// lastLine returns the final non-empty line of out.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[len(lines)-1]
}

// TestCLI_Score verifies a signed call prints its result.
func TestCLI_Score(t *testing.T) {
	p, cfg := setupCLI(t, "")

	code, stdout, stderr := runCLI(t, "--config", cfg, "score", "268807750994492945066168772")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	out := decodeOutput(t, stdout)
	if out["status_code"] != float64(http.StatusOK) {
		t.Errorf("status_code = %v", out["status_code"])
	}
	result, _ := out["result"].(map[string]any)
	if result["zm_score"] != "680" {
		t.Errorf("result = %v", result)
	}
	params, _ := out["params"].(map[string]any)
	if params["open_id"] != "268807750994492945066168772" || params["transaction_id"] == nil {
		t.Errorf("params = %v", params)
	}

	req, ok := p.LastRequest()
	if !ok || req.Method != domain.MethodCreditScore.Name || !req.SignValid {
		t.Errorf("provider saw %+v", req)
	}
}

// TestCLI_Subcommands verifies each business subcommand reaches its method.
func TestCLI_Subcommands(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		method string
		check  func(t *testing.T, params domain.Params)
	}{
		{
			name:   "ivs verify",
			args:   []string{"ivs", "verify", "--name", "张三", "--cert-no", "110101199001011234", "--mobile", "13800138000"},
			method: domain.MethodAntifraudVerify.Name,
			check: func(t *testing.T, params domain.Params) {
				if params["name"] != "张三" || params["mobile"] != "13800138000" || params["cert_type"] != "IDENTITY_CARD" {
					t.Errorf("params = %v", params)
				}
			},
		},
		{
			name:   "ivs score",
			args:   []string{"ivs", "score", "--name", "张三", "--cert-no", "110101199001011234"},
			method: domain.MethodAntifraudScore.Name,
		},
		{
			name:   "ivs watchlist",
			args:   []string{"ivs", "watchlist", "--name", "张三", "--cert-no", "110101199001011234"},
			method: domain.MethodAntifraudRiskList.Name,
		},
		{
			name:   "watchlist",
			args:   []string{"watchlist", "268807750994492945066168772"},
			method: domain.MethodWatchlist.Name,
			check: func(t *testing.T, params domain.Params) {
				if params["open_id"] != "268807750994492945066168772" {
					t.Errorf("params = %v", params)
				}
			},
		},
		{
			name:   "cert init",
			args:   []string{"cert", "init", "--name", "张三", "--cert-no", "110101199001011234"},
			method: domain.MethodCertInit.Name,
		},
		{
			name:   "cert query",
			args:   []string{"cert", "query", "ZM201703093000000727200705771480"},
			method: domain.MethodCertQuery.Name,
			check: func(t *testing.T, params domain.Params) {
				if params["biz_no"] != "ZM201703093000000727200705771480" {
					t.Errorf("params = %v", params)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, cfg := setupCLI(t, "")

			code, stdout, stderr := runCLI(t, append([]string{"--config", cfg}, tc.args...)...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr)
			}
			out := decodeOutput(t, stdout)
			if _, ok := out["result"]; !ok {
				t.Errorf("output has no result: %s", stdout)
			}

			req, ok := p.LastRequest()
			if !ok {
				t.Fatal("provider saw no request")
			}
			if req.Method != tc.method {
				t.Errorf("method = %q, want %q", req.Method, tc.method)
			}
			if !req.SignValid {
				t.Error("provider rejected the signature")
			}
			if tc.check != nil {
				tc.check(t, req.Params)
			}
		})
	}
}

// TestCLI_EncryptRequest verifies the config switch seals params.
func TestCLI_EncryptRequest(t *testing.T) {
	p, cfg := setupCLI(t, "encrypt_request: true\nsign_type: RSA2\n")

	if code, _, stderr := runCLI(t, "--config", cfg, "cert", "query", "ZM1"); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	req, _ := p.LastRequest()
	if !req.Sealed || !req.SignValid {
		t.Errorf("request = %+v, want sealed and valid", req)
	}
	if req.Query.Get("sign_type") != "RSA2" {
		t.Errorf("sign_type = %q", req.Query.Get("sign_type"))
	}
}

// TestCLI_Redirects verifies the URL builders print without any I/O.
func TestCLI_Redirects(t *testing.T) {
	p, cfg := setupCLI(t, "")

	t.Run("authorize", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "--config", cfg, "authorize-url", "--mobile", "13800138000", "--channel", "h5", "--state", "s1")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr)
		}
		out := decodeOutput(t, stdout)
		u, err := url.Parse(fmt.Sprint(out["url"]))
		if err != nil {
			t.Fatalf("url: %v", err)
		}
		if u.Query().Get("method") != domain.MethodAuthorize.Name {
			t.Errorf("method = %q", u.Query().Get("method"))
		}
		if u.Query().Get("sign") == "" {
			t.Error("redirect is not signed")
		}
	})

	t.Run("certification", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "--config", cfg, "cert", "url", "ZM1", "--return-url", "https://app.example.com/done")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr)
		}
		out := decodeOutput(t, stdout)
		params, _ := out["params"].(map[string]any)
		if params["biz_no"] != "ZM1" || params["return_url"] != "https://app.example.com/done" {
			t.Errorf("params = %v", params)
		}
	})

	if n := len(p.Requests()); n != 0 {
		t.Errorf("provider saw %d requests, want 0", n)
	}
}

// TestCLI_OpenID verifies token decryption.
func TestCLI_OpenID(t *testing.T) {
	p, cfg := setupCLI(t, "")
	token, err := p.OpenIDToken("268807750994492945066168772")
	if err != nil {
		t.Fatalf("OpenIDToken() returned error: %v", err)
	}

	code, stdout, stderr := runCLI(t, "--config", cfg, "open-id", token)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if out := decodeOutput(t, stdout); out["open_id"] != "268807750994492945066168772" {
		t.Errorf("output = %v", out)
	}
}

// TestCLI_ExitCodes verifies failures map to stable exit codes.
func TestCLI_ExitCodes(t *testing.T) {
	t.Run("business failure", func(t *testing.T) {
		p, cfg := setupCLI(t, "")
		p.Respond(domain.MethodCreditScore.Name, map[string]any{
			"success":       false,
			"error_code":    "ZMCREDIT.authentication_fail",
			"error_message": "open_id invalid",
		})

		code, stdout, _ := runCLI(t, "--config", cfg, "score", "bad")
		if code != exitBusinessFailure {
			t.Errorf("exit code = %d, want %d", code, exitBusinessFailure)
		}
		out := decodeOutput(t, stdout)
		be, _ := out["business_error"].(map[string]any)
		if be["error_code"] != "ZMCREDIT.authentication_fail" {
			t.Errorf("business_error = %v", out["business_error"])
		}
	})

	t.Run("tampered response", func(t *testing.T) {
		p, cfg := setupCLI(t, "")
		p.SetMode(provider.ModeTampered)

		code, stdout, stderr := runCLI(t, "--config", cfg, "score", "268807750994492945066168772")
		if code != 4 {
			t.Errorf("exit code = %d, want 4", code)
		}
		if stdout != "" {
			t.Errorf("stdout = %q, want nothing", stdout)
		}
		if out := decodeOutput(t, lastLine(stderr)); out["code"] != "signature_invalid" {
			t.Errorf("stderr = %v", out)
		}
	})

	t.Run("http error", func(t *testing.T) {
		p, cfg := setupCLI(t, "")
		p.SetStatus(http.StatusBadGateway)

		if code, _, _ := runCLI(t, "--config", cfg, "score", "x"); code != 5 {
			t.Errorf("exit code = %d, want 5", code)
		}
	})

	t.Run("validation", func(t *testing.T) {
		p, cfg := setupCLI(t, "")

		code, _, stderr := runCLI(t, "--config", cfg, "authorize-url")
		if code != 3 {
			t.Errorf("exit code = %d, want 3", code)
		}
		if !strings.Contains(stderr, "validation_failed") {
			t.Errorf("stderr = %q", stderr)
		}
		if len(p.Requests()) != 0 {
			t.Error("validation failure reached the provider")
		}
	})

	t.Run("missing config", func(t *testing.T) {
		t.Setenv(envAppID, "")
		code, _, stderr := runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "score", "x")
		if code != 2 {
			t.Errorf("exit code = %d, want 2", code)
		}
		if !strings.Contains(stderr, "app_id is required") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		dir := t.TempDir()
		priv := writeFile(t, dir, "private.pem", "not a key")
		pub := writeFile(t, dir, "zhima.pem", "not a key")
		cfg := writeFile(t, dir, "zmxy.yaml", fmt.Sprintf("app_id: \"1\"\nprivate_key_file: %s\npublic_key_file: %s\n", priv, pub))

		if code, _, _ := runCLI(t, "--config", cfg, "score", "x"); code != 2 {
			t.Errorf("exit code = %d, want 2", code)
		}
	})

	t.Run("usage", func(t *testing.T) {
		_, cfg := setupCLI(t, "")
		if code, _, _ := runCLI(t, "--config", cfg, "score"); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
	})
}

// TestCLI_LogFlags verifies the flags override the config file.
func TestCLI_LogFlags(t *testing.T) {
	_, cfg := setupCLI(t, "log:\n  level: error\n")
	logFile := filepath.Join(t.TempDir(), "zmxy.log")

	code, _, stderr := runCLI(t, "--config", cfg, "--log-level", "debug", "--log-file", logFile, "score", "x")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "provider call completed") {
		t.Errorf("log file = %s", data)
	}
	if strings.Contains(stderr, "provider call completed") {
		t.Error("logs went to stderr despite --log-file")
	}

	if code, _, _ := runCLI(t, "--config", cfg, "--log-level", "loud", "score", "x"); code != 2 {
		t.Errorf("bad --log-level exit code = %d, want 2", code)
	}
}

// TestCLI_HelpNeedsNoConfig verifies help runs without a config file.
func TestCLI_HelpNeedsNoConfig(t *testing.T) {
	code, stdout, _ := runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "help")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "authorize-url") {
		t.Errorf("help output = %q", stdout)
	}
}
