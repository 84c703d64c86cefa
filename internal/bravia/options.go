package bravia

import "time"

// Option configures a Client
type Option func(*Client)

// WithDebug enables debug logging of every request and response
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout sets the timeout for a single request.
// Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}
