package random

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidResponse = errors.New("invalid response from random.org")
	ErrTimeout         = errors.New("request to random.org timed out")
	ErrRequestFailed   = errors.New("request to random.org failed")
)

const (
	defaultBaseURL = "https://www.random.org"
	fractionPath   = "/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"

	defaultTimeout = 5 * time.Second
)

// Client fetches uniform random decimal fractions from random.org.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithBaseURL targets an alternate endpoint, used in tests.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fraction returns one random fraction in [0, 1).
func (c *Client) Fraction(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+fractionPath,
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	text := strings.TrimSpace(string(raw))

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidResponse, text)
	}

	return value, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
