package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/upload"
)

// GenericFailure is shown when the server gives no usable error message
const GenericFailure = "Failed to solve maze"

// maxResponseBytes bounds how much of a JSON response is read
const maxResponseBytes = 1 << 20

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client submits maze images to the solve endpoint
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// New creates a new client
func New(config *Config, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver config: %w", err)
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     log.WithComponent("solver"),
	}, nil
}

// Endpoint returns the absolute solve URL
func (c *Client) Endpoint() string {
	return c.baseURL.JoinPath(c.config.SolvePath).String()
}

// Solve uploads the candidate as the single multipart field and interprets
// the reply. Failures are *upload.Error values; a cancelled ctx is returned
// as ctx.Err() so superseded attempts can be told apart from real failures.
func (c *Client) Solve(ctx context.Context, candidate *upload.Candidate, requestID string) (*Response, error) {
	startTime := time.Now()

	body, contentType, err := c.encode(candidate)
	if err != nil {
		return nil, upload.NewErrorWithCause(upload.KindNetworkOrServer, GenericFailure, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body)
	if err != nil {
		return nil, upload.NewErrorWithCause(upload.KindNetworkOrServer, GenericFailure, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	c.log.DebugWithFields("submitting maze", []logger.Field{
		logger.Attempt(requestID), logger.Path(candidate.Name), logger.Bytes(candidate.Size),
	})

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, upload.NewErrorWithCause(upload.KindNetworkOrServer, GenericFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, upload.NewErrorWithCause(upload.KindNetworkOrServer, GenericFailure, err)
	}

	c.log.DebugWithFields("solver replied", []logger.Field{
		logger.Attempt(requestID), logger.Status(resp.StatusCode), logger.Duration(time.Since(startTime)),
	})

	return interpret(resp.StatusCode, raw)
}

// interpret maps a status code and body onto a response or a workflow error
func interpret(statusCode int, raw []byte) (*Response, error) {
	var p payload
	decodeErr := json.Unmarshal(raw, &p)

	if statusCode < 200 || statusCode > 299 {
		if decodeErr == nil && p.Error != "" {
			return nil, upload.NewServerError(statusCode, p.Error)
		}
		return nil, upload.NewServerError(statusCode, GenericFailure)
	}

	if decodeErr != nil {
		e := upload.NewErrorWithCause(upload.KindNetworkOrServer, GenericFailure, decodeErr)
		e.StatusCode = statusCode
		return nil, e
	}
	if p.Error != "" {
		return nil, upload.NewError(upload.KindApplication, p.Error)
	}
	if strings.TrimSpace(p.GifURL) == "" {
		return nil, upload.NewError(upload.KindApplication, GenericFailure)
	}
	if p.Stats != nil && !p.Stats.valid() {
		return nil, upload.NewError(upload.KindApplication, "Solver returned invalid statistics")
	}

	return &Response{GifURL: p.GifURL, Stats: p.Stats}, nil
}

// encode builds the multipart body with the image as its only field
func (c *Client) encode(candidate *upload.Candidate) (io.Reader, string, error) {
	content, err := candidate.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", candidate.Name, err)
	}
	defer func() { _ = content.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(c.config.FieldName), quoteEscaper.Replace(candidate.Name)))
	mediaType := candidate.Type
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("failed to copy %s: %w", candidate.Name, err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// Resolve turns a server-relative reference into an absolute URL
func (c *Client) Resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

// Download fetches the referenced animation into dir and returns the file path
func (c *Client) Download(ctx context.Context, ref, dir string) (string, error) {
	target := c.Resolve(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	dest := filepath.Join(dir, downloadName(target))
	// #nosec G304 - file name is reduced to its base component
	file, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}

	c.log.InfoWithFields("animation saved", []logger.Field{logger.Path(dest), logger.Bytes(written)})
	return dest, nil
}

// downloadName derives a safe local file name from a URL
func downloadName(target string) string {
	name := "solution.gif"
	if u, err := url.Parse(target); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			name = base
		}
	}
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "solution.gif"
	}
	return name
}
