package subsonic

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultVersion    = "1.16.1"
	DefaultClientName = "HomeAssistant"
	DefaultTimeout    = 8 * time.Second
)

// Config holds the connection parameters of a single Subsonic server.
type Config struct {
	// URL is the base URL of the server, e.g. https://music.example.com.
	URL      string
	Username string
	Password string

	// ClientName is sent as the "c" parameter. Defaults to
	// [DefaultClientName].
	ClientName string
	// Version is the protocol version sent as the "v" parameter. Defaults to
	// [DefaultVersion].
	Version string
	// UserAgent is sent as the User-Agent header when non-empty.
	UserAgent string
	// Timeout bounds each request, including reading the body. Defaults to
	// [DefaultTimeout].
	Timeout time.Duration
	// SkipCertVerify disables TLS certificate verification.
	SkipCertVerify bool
}

// Client talks to a Subsonic server using token authentication and XML
// responses.
type Client struct {
	hostname *url.URL
	username string
	password string

	clientName     string
	version        string
	userAgent      string
	timeout        time.Duration
	skipCertVerify bool

	mu     sync.Mutex
	client *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	hostname, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, err
	} else if hostname.Scheme == "" || hostname.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host are required", cfg.URL)
	}

	c := &Client{
		hostname:       hostname,
		username:       cfg.Username,
		password:       cfg.Password,
		clientName:     cfg.ClientName,
		version:        cfg.Version,
		userAgent:      cfg.UserAgent,
		timeout:        cfg.Timeout,
		skipCertVerify: cfg.SkipCertVerify,
	}
	if c.clientName == "" {
		c.clientName = DefaultClientName
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c, nil
}

// session returns the shared HTTP client, creating it on first use.
func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if c.skipCertVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		c.client = &http.Client{Transport: transport}
	}
	return c.client
}

// Close releases the pooled connections of the client. It is safe to call
// more than once; a later request opens a new session.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.CloseIdleConnections()
		c.client = nil
	}
	return nil
}

func (c *Client) endpoint(op string) *url.URL {
	return c.hostname.JoinPath("rest", op+".view")
}

// query merges params with a freshly generated set of authentication
// parameters. Call specific parameters take precedence.
func (c *Client) query(params url.Values) url.Values {
	auth := NewAuthParams(c.password)
	q := url.Values{}
	q.Set("u", c.username)
	q.Set("t", auth.Token)
	q.Set("s", auth.Salt)
	q.Set("v", c.version)
	q.Set("c", c.clientName)
	for k, v := range params {
		q[k] = v
	}
	return q
}

// signedURL builds a URL for op which can be fetched by a third party without
// further authentication.
func (c *Client) signedURL(op string, params url.Values) string {
	u := c.endpoint(op)
	u.RawQuery = c.query(params).Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, op string, params url.Values) (string, error) {
	log := zerolog.Ctx(ctx).With().Str("subsonic_op", op).Logger()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.signedURL(op, params), nil)
	if err != nil {
		return "", err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debug().Msg("Sending Subsonic request")
	resp, err := c.session().Do(req)
	if err != nil {
		return "", transportError(log, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status_code", resp.StatusCode).Msg("Error connecting to Subsonic server")
		return "", fmt.Errorf("%w: %s returned HTTP %d", ErrTransportUnavailable, op, resp.StatusCode)
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return "", fmt.Errorf("%w: %s returned JSON, expected XML", ErrDecode, op)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(log, op, err)
	}
	return string(body), nil
}

// getXML is get for calls which return data. A response with a failed status
// is turned into a *SubsonicError.
func (c *Client) getXML(ctx context.Context, op string, params url.Values) (string, error) {
	doc, err := c.get(ctx, op, params)
	if err != nil {
		return "", err
	}
	if err := checkResponse(doc); err != nil {
		return "", err
	}
	return doc, nil
}

func transportError(log zerolog.Logger, op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		log.Error().Err(err).Msg("Timeout error")
		return fmt.Errorf("%w: %s: %w", ErrTransportTimeout, op, err)
	}
	log.Error().Err(err).Msg("Error connecting to Subsonic server")
	return fmt.Errorf("%w: %s: %w", ErrTransportUnavailable, op, err)
}
