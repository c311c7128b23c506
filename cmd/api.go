package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/love-yuri/qq-music-api/internal/codec"
	"github.com/love-yuri/qq-music-api/internal/models"
	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/tidwall/jsonc"
	"github.com/urfave/cli/v3"
)

// APICall sends a raw musics.fcg payload through sign, encrypt and decrypt and prints the
// decrypted response.
//
// The payload may contain comments; it is validated before anything is sent.
func (r *Runner) APICall(ctx context.Context, cmd *cli.Command) error {
	data := cmd.String("data")
	file := cmd.String("file")

	if data == "" && file == "" {
		return fmt.Errorf("%w: either --data or --file must be provided", shared.ErrMissingArgument)
	}
	if data != "" && file != "" {
		return fmt.Errorf("%w: cannot specify both --data and --file", shared.ErrInvalidArgument)
	}

	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		data = string(content)
	}

	payload, err := compactPayload(data)
	if err != nil {
		return err
	}

	svc, err := r.service()
	if err != nil {
		return err
	}

	r.logger.Debug("calling musics.fcg", "bytes", len(payload))

	resp, err := svc.Call(ctx, payload)

	op := models.NewOperation(models.OpAPICall, svc.Credentials().UIN)
	op.Finish(err == nil, resp, err)
	r.record(op)

	if err != nil {
		return err
	}

	if cmd.Bool("pretty") {
		var buf bytes.Buffer
		if json.Indent(&buf, []byte(resp), "", "  ") == nil {
			resp = buf.String()
		}
	}

	return r.writePlain("%s\n", strings.TrimRight(resp, "\n"))
}

// compactPayload checks that data is a JSON object and strips comments and whitespace so the
// signed text matches the bytes that are encrypted. Key order and number literals are kept.
func compactPayload(data string) (string, error) {
	obj, err := codec.TryDecode[map[string]json.RawMessage]([]byte(data))
	if err != nil {
		return "", fmt.Errorf("%w: payload: %v", shared.ErrInvalidInput, err)
	}
	if obj == nil {
		return "", fmt.Errorf("%w: payload must be a JSON object", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, jsonc.ToJSON([]byte(data))); err != nil {
		return "", fmt.Errorf("%w: payload: %v", shared.ErrInvalidInput, err)
	}
	return buf.String(), nil
}
