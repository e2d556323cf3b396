// Package mudrex is a client for the Mudrex futures trading API. It wraps
// an authenticated HTTP transport with typed services for wallet, asset
// discovery, leverage, order and position operations.
package mudrex

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://trade.mudrex.com/api/v1"

// The exchange allows 2 requests per second per key.
const defaultRequestsPerSecond = 2

// Client is the top-level API client. Create one per credential set; the
// asset cache is owned by the instance, so separate clients never share
// state.
type Client struct {
	transport Transport
	logger    *logrus.Logger

	Wallet    *WalletService
	Assets    *AssetsService
	Leverage  *LeverageService
	Orders    *OrdersService
	Positions *PositionsService
	Fees      *FeesService
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
	transport  Transport
	rps        float64
	rateLimit  bool
}

// WithBaseURL overrides the production API URL.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithHTTPClient supplies a custom *http.Client (timeouts, proxies).
func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

// WithLogger supplies the logger used for request debug logging.
func WithLogger(l *logrus.Logger) Option { return func(o *options) { o.logger = l } }

// WithTransport replaces the HTTP transport entirely. Intended for tests
// and alternative transports; apiSecret is ignored when set.
func WithTransport(t Transport) Option { return func(o *options) { o.transport = t } }

// WithRateLimit adjusts the client-side request rate. Zero or negative
// disables limiting.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(o *options) {
		o.rps = requestsPerSecond
		o.rateLimit = requestsPerSecond > 0
	}
}

// New creates a Client authenticated with the given API secret.
func New(apiSecret string, opts ...Option) *Client {
	o := &options{
		baseURL:   defaultBaseURL,
		rps:       defaultRequestsPerSecond,
		rateLimit: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
	}

	transport := o.transport
	if transport == nil {
		var limiter *rate.Limiter
		if o.rateLimit {
			limiter = rate.NewLimiter(rate.Limit(o.rps), 1)
		}
		transport = newHTTPTransport(o.baseURL, apiSecret, o.httpClient, limiter, o.logger)
	}

	c := &Client{transport: transport, logger: o.logger}
	c.Wallet = &WalletService{client: c}
	c.Assets = &AssetsService{client: c}
	c.Leverage = &LeverageService{client: c}
	c.Orders = &OrdersService{client: c}
	c.Positions = &PositionsService{client: c}
	c.Fees = &FeesService{client: c}
	return c
}
