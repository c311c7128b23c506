package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/love-yuri/qq-music-api/internal/shared"
)

// Download streams the resource at url into w and returns the number of bytes written.
func (s *QQMusicService) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	if url == "" {
		return 0, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidArgument)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("referer", "https://y.qq.com/")
	req.Header.Set("user-agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: download status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read download: %w", err)
	}
	return n, nil
}
