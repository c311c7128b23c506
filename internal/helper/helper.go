// Package helper runs the external program that signs, encrypts and decrypts musics.fcg traffic.
//
// The program is invoked once per operation as
//
//	<command> <args...> sign|encrypt|decrypt
//
// with the input on stdin. Its stdout is the result; stderr is attached to errors.
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/love-yuri/qq-music-api/internal/shared"
)

const (
	actionSign    = "sign"
	actionEncrypt = "encrypt"
	actionDecrypt = "decrypt"
)

// Process implements services.Signer and services.Cipher with an external program.
type Process struct {
	command string
	args    []string
	timeout time.Duration
	logger  *log.Logger
}

// New creates a Process. A non-positive timeout disables the per-call deadline.
func New(command string, args []string, timeout time.Duration, logger *log.Logger) *Process {
	if logger == nil {
		logger = log.Default()
	}
	return &Process{command: command, args: args, timeout: timeout, logger: logger}
}

// FromConfig creates a Process from the [helper] config section.
func FromConfig(cfg shared.HelperConfig, logger *log.Logger) (*Process, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("%w: helper.command is empty", shared.ErrInvalidConfig)
	}
	return New(cfg.Command, cfg.Args, cfg.TimeoutDuration(), logger), nil
}

// Sign returns the signature for payload.
func (p *Process) Sign(ctx context.Context, payload string) (string, error) {
	out, err := p.run(ctx, actionSign, []byte(payload))
	if err != nil {
		return "", err
	}

	sign := strings.TrimSpace(string(out))
	if sign == "" {
		return "", fmt.Errorf("%w: sign produced no output", shared.ErrHelperFailed)
	}
	return sign, nil
}

// Encrypt returns the request body for payload. Output bytes are passed through unchanged.
func (p *Process) Encrypt(ctx context.Context, payload string) ([]byte, error) {
	return p.run(ctx, actionEncrypt, []byte(payload))
}

// Decrypt returns the plaintext of a response body.
func (p *Process) Decrypt(ctx context.Context, body []byte) (string, error) {
	out, err := p.run(ctx, actionDecrypt, body)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

func (p *Process) run(ctx context.Context, action string, input []byte) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := append(append([]string{}, p.args...), action)
	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	p.logger.Debug("helper", "action", action, "input_bytes", len(input), "output_bytes", stdout.Len(), "elapsed", time.Since(start))

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: helper %s after %s", shared.ErrTimeout, action, p.timeout)
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", shared.ErrHelperFailed, action, msg)
	}

	return stdout.Bytes(), nil
}
