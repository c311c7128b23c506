// QQ Music web API [QQMusicService] implementation
//
// Listing uses the plain fcg_user_created_diss endpoint. Playlist writes and vkey lookups go
// through musics.fcg with signed URLs and encrypted bodies.
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/love-yuri/qq-music-api/internal/codec"
	"github.com/love-yuri/qq-music-api/internal/shared"
)

const (
	defaultPlaylistsURL = "https://c6.y.qq.com/rsc/fcgi-bin/fcg_user_created_diss"
	defaultMusicsURL    = "https://u6.y.qq.com/cgi-bin/musics.fcg"

	// DefaultUserAgent is the browser user agent sent with musics.fcg requests.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

	// DefaultPlaylistSize is the number of playlists requested when no size is given.
	DefaultPlaylistSize = 11

	// MutationSuccessThreshold is the decrypted response length above which a playlist write
	// is reported as successful.
	MutationSuccessThreshold = 200
)

// QQMusicOpts configures a [QQMusicService]. Signer and Cipher are required for every
// musics.fcg operation.
type QQMusicOpts struct {
	Credentials  Credentials
	Signer       Signer
	Cipher       Cipher
	HTTPClient   HTTPClient  // defaults to http.DefaultClient
	Logger       *log.Logger // defaults to log.Default()
	UserAgent    string      // defaults to DefaultUserAgent
	PlaylistsURL string      // overrides the fcg_user_created_diss endpoint
	MusicsURL    string      // overrides the musics.fcg endpoint
}

// QQMusicService calls the QQ Music web API for one account.
type QQMusicService struct {
	creds        Credentials
	signer       Signer
	cipher       Cipher
	httpClient   HTTPClient
	logger       *log.Logger
	userAgent    string
	playlistsURL string
	musicsURL    string
}

// NewQQMusicService creates a new QQ Music service instance.
func NewQQMusicService(opts QQMusicOpts) *QQMusicService {
	s := &QQMusicService{
		creds:        opts.Credentials,
		signer:       opts.Signer,
		cipher:       opts.Cipher,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
		userAgent:    opts.UserAgent,
		playlistsURL: opts.PlaylistsURL,
		musicsURL:    opts.MusicsURL,
	}

	if s.httpClient == nil {
		s.httpClient = http.DefaultClient
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.userAgent == "" {
		s.userAgent = DefaultUserAgent
	}
	if s.playlistsURL == "" {
		s.playlistsURL = defaultPlaylistsURL
	}
	if s.musicsURL == "" {
		s.musicsURL = defaultMusicsURL
	}

	return s
}

// Name returns the service name.
func (s *QQMusicService) Name() string {
	return "QQ Music"
}

// Credentials returns the account the service acts for.
func (s *QQMusicService) Credentials() Credentials {
	return s.creds
}

// GetUserPlaylists lists playlists created by the configured account.
//
// Only the uin is required. Private playlists are included only when a cookie is configured.
// A non-positive size requests [DefaultPlaylistSize] entries.
func (s *QQMusicService) GetUserPlaylists(ctx context.Context, size int) (UserPlaylistsResult, error) {
	if err := s.creds.RequireUIN("GetUserPlaylists"); err != nil {
		return UserPlaylistsResult{}, err
	}
	if size <= 0 {
		size = DefaultPlaylistSize
	}

	endpoint := s.playlistsURL + "?" + fmt.Sprintf(userPlaylistsQuery, url.QueryEscape(s.creds.UIN), size)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return UserPlaylistsResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("referer", "https://y.qq.com/")
	if s.creds.Cookie != "" {
		req.Header.Set("cookie", s.creds.Cookie)
	}

	body, err := s.do(req)
	if err != nil {
		return UserPlaylistsResult{}, err
	}

	return codec.Decode[UserPlaylistsResult](s.logger, body), nil
}

// Call runs an arbitrary musics.fcg payload through the sign, encrypt, POST and decrypt steps
// and returns the decrypted response text.
func (s *QQMusicService) Call(ctx context.Context, payload string) (string, error) {
	return s.call(ctx, "Call", playlistStamp, payload, s.playlistHeaders())
}

// AddSongToPlaylist adds songID to the playlist identified by dirID.
//
// The returned bool follows [MutationSucceeded]; see the package documentation.
func (s *QQMusicService) AddSongToPlaylist(ctx context.Context, dirID int64, songID uint64) (bool, error) {
	return s.mutate(ctx, "AddSongToPlaylist", fmt.Sprintf(addSonglistTemplate, dirID, songID))
}

// DeleteSongFromPlaylist removes songID from the playlist identified by dirID.
func (s *QQMusicService) DeleteSongFromPlaylist(ctx context.Context, dirID int64, songID uint64) (bool, error) {
	return s.mutate(ctx, "DeleteSongFromPlaylist", fmt.Sprintf(delSonglistTemplate, dirID, songID))
}

// GetSongDownloadURL resolves the download URL of song mid in the given format.
//
// When the song is not available an empty string and a nil error are returned and
// "not found" is logged.
func (s *QQMusicService) GetSongDownloadURL(ctx context.Context, mid string, format SongFileFormat) (string, error) {
	if format.Prefix == "" {
		format = DefaultSongFileFormat
	}

	payload := fmt.Sprintf(getEVkeyTemplate, format.Filename(mid), mid)
	headers := http.Header{}
	headers.Set("cookie", s.creds.Cookie)

	text, err := s.call(ctx, "GetSongDownloadURL", vkeyStamp, payload, headers)
	if err != nil {
		return "", err
	}

	result := codec.Decode[SongDownloadURLResult](s.logger, []byte(text))
	if u := result.URL(); u != "" {
		return u, nil
	}

	s.logger.Warn("not found", "mid", mid, "format", format.Name, "code", result.Req1.Code)
	return "", nil
}

// MutationSucceeded reports whether a decrypted playlist write response counts as a success.
// It only compares the length against [MutationSuccessThreshold].
func MutationSucceeded(resp string) bool {
	return len(resp) > MutationSuccessThreshold
}

func (s *QQMusicService) mutate(ctx context.Context, op, payload string) (bool, error) {
	text, err := s.call(ctx, op, playlistStamp, payload, s.playlistHeaders())
	if err != nil {
		return false, err
	}

	ok := MutationSucceeded(text)
	if result, err := codec.TryDecode[MutationResult]([]byte(text)); err == nil {
		s.logger.Debug("playlist write", "op", op, "ok", ok, "length", len(text), "code", result.Code, "req_code", result.Req1.Code)
	} else {
		s.logger.Debug("playlist write", "op", op, "ok", ok, "length", len(text))
	}
	return ok, nil
}

func (s *QQMusicService) playlistHeaders() http.Header {
	h := http.Header{}
	h.Set("cookie", s.creds.Cookie)
	h.Set("accept", "application/octet-stream")
	h.Set("accept-language", "zh-CN,zh;q=0.9,en;q=0.8")
	h.Set("sec-ch-ua-mobile", "?0")
	h.Set("user-agent", s.userAgent)
	return h
}

func (s *QQMusicService) call(ctx context.Context, op, stamp, payload string, headers http.Header) (string, error) {
	if err := s.creds.Require(op); err != nil {
		return "", err
	}
	if s.signer == nil || s.cipher == nil {
		return "", fmt.Errorf("%w: %s requires a signer and cipher", shared.ErrInvalidConfig, op)
	}

	sign, err := s.signer.Sign(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%s: failed to sign payload: %w", op, err)
	}

	body, err := s.cipher.Encrypt(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%s: failed to encrypt payload: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s?_=%s&encoding=ag-1&sign=%s", s.musicsURL, stamp, sign)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = headers

	raw, err := s.do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	text, err := s.cipher.Decrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("%s: failed to decrypt response: %w", op, err)
	}

	s.logger.Debug("musics.fcg", "op", op, "request_bytes", len(body), "response_bytes", len(raw))
	return text, nil
}

func (s *QQMusicService) do(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %s: status %d", shared.ErrAPIRequest, req.Method, req.URL.Host, resp.StatusCode)
	}

	return body, nil
}
