package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Converter defines the behaviour the convert stage needs from the
// document-to-text service.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client converts documents to plain text by invoking an external converter
// CLI (markitdown-style: takes a file path, prints extracted text on stdout).
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a converter client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("converter binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the configured converter executable name.
func (c *Client) Binary() string {
	return c.binary
}

// Convert runs the external converter on the document at path and returns the
// extracted plain text. A hung converter is bounded by the configured
// timeout; timeout and non-zero exit both surface as errors.
func (c *Client) Convert(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("convert: document path required")
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.exec.Run(runCtx, c.binary, []string{path})
	if err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return "", fmt.Errorf("convert %s: timed out after %s", path, c.timeout)
		}
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("convert %s: converter produced no text", path)
	}
	return out, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%w: %s", err, detail)
		}
		return "", err
	}
	return stdout.String(), nil
}
