package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/love-yuri/qq-music-api/internal/shared"
)

const encPrefix = "\x00\x01"

// newTestProcess re-executes the test binary as the helper program.
func newTestProcess(t *testing.T, timeout time.Duration) *Process {
	t.Helper()
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	return New(os.Args[0], []string{"-test.run=TestHelperProcess", "--"}, timeout, nil)
}

// TestHelperProcess is the fake helper program. It does nothing unless run by newTestProcess.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	action := os.Args[len(os.Args)-1]
	input, _ := io.ReadAll(os.Stdin)

	switch string(input) {
	case "boom":
		fmt.Fprint(os.Stderr, "kaboom\n")
		os.Exit(2)
	case "sleep":
		time.Sleep(5 * time.Second)
	case "silent":
		os.Exit(0)
	}

	switch action {
	case "sign":
		fmt.Printf("zzb%d\n", len(input))
	case "encrypt":
		os.Stdout.Write(append([]byte(encPrefix), input...))
	case "decrypt":
		fmt.Printf("%s\n", bytes.TrimPrefix(input, []byte(encPrefix)))
	default:
		fmt.Fprintf(os.Stderr, "unknown action %s", action)
		os.Exit(1)
	}
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("Sign trims output", func(t *testing.T) {
		p := newTestProcess(t, 0)
		got, err := p.Sign(ctx, `{"comm":{}}`)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "zzb11" {
			t.Errorf("expected zzb11, got %q", got)
		}
	})

	t.Run("Encrypt passes bytes through", func(t *testing.T) {
		p := newTestProcess(t, 0)
		got, err := p.Encrypt(ctx, "payload")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(got) != encPrefix+"payload" {
			t.Errorf("unexpected body %q", got)
		}
	})

	t.Run("Decrypt round trip", func(t *testing.T) {
		p := newTestProcess(t, 0)
		body, err := p.Encrypt(ctx, `{"code":0}`)
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}

		got, err := p.Decrypt(ctx, body)
		if err != nil {
			t.Fatalf("decrypt failed: %v", err)
		}
		if got != `{"code":0}` {
			t.Errorf("expected original payload, got %q", got)
		}
	})

	t.Run("failure includes stderr", func(t *testing.T) {
		p := newTestProcess(t, 0)
		_, err := p.Encrypt(ctx, "boom")
		if !errors.Is(err, shared.ErrHelperFailed) {
			t.Fatalf("expected ErrHelperFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "kaboom") {
			t.Errorf("expected stderr in error, got %v", err)
		}
	})

	t.Run("empty signature is an error", func(t *testing.T) {
		p := newTestProcess(t, 0)
		if _, err := p.Sign(ctx, "silent"); !errors.Is(err, shared.ErrHelperFailed) {
			t.Errorf("expected ErrHelperFailed, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		p := newTestProcess(t, 100*time.Millisecond)
		_, err := p.Sign(ctx, "sleep")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("missing command", func(t *testing.T) {
		p := New("qqm-helper-that-does-not-exist", nil, time.Second, nil)
		if _, err := p.Sign(ctx, "{}"); !errors.Is(err, shared.ErrHelperFailed) {
			t.Errorf("expected ErrHelperFailed, got %v", err)
		}
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("uses configured timeout", func(t *testing.T) {
		p, err := FromConfig(shared.HelperConfig{Command: "node", Args: []string{"helper.js"}, Timeout: "3s"}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.timeout != 3*time.Second {
			t.Errorf("expected 3s timeout, got %s", p.timeout)
		}
		if p.command != "node" || len(p.args) != 1 {
			t.Errorf("unexpected command %s %v", p.command, p.args)
		}
	})

	t.Run("rejects empty command", func(t *testing.T) {
		if _, err := FromConfig(shared.HelperConfig{Command: "  "}, nil); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
