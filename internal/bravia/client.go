package bravia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"remi/internal/logger"
)

// Client handles the raw HTTP exchanges with a Sony Bravia TV. It
// carries no pairing state beyond the session credential assigned to it
// by Connect.
type Client struct {
	httpClient *http.Client
	cfg        *Config
	credential string
	debug      bool
	logger     zerolog.Logger
}

// NewClient creates a new Bravia client instance for the configured TV
func NewClient(cfg *Config, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:    cfg,
		logger: logger.New(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug {
		logger.SetLevel("debug")
	}

	return client
}

// Config returns the configuration this client was created with
func (c *Client) Config() *Config {
	return c.cfg
}

// ControlRequest sends a JSON API control request
func (c *Client) ControlRequest(endpoint Endpoint, payload Payload) (*http.Response, error) {
	return c.control(endpoint, payload, "")
}

// control sends a JSON API request, optionally carrying a pairing code
// as basic-auth credentials
func (c *Client) control(endpoint Endpoint, payload Payload, pincode string) (*http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("http://%s%s", c.cfg.Host, endpoint)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create control request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if pincode != "" {
		req.SetBasicAuth("", pincode)
	}

	if c.debug {
		c.logger.Debug().
			Str("url", url).
			Str("method", payload.Method).
			Str("payload", string(jsonData)).
			Bool("pincode", pincode != "").
			Msg("Sending control API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send control request: %w", err)
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", payload.Method).
			Msg("Control API request completed")
	}

	return resp, nil
}

// SendIRCC sends an IRCC SOAP request carrying the given remote code,
// authenticated with the session credential cookie
func (c *Client) SendIRCC(code string) error {
	// SOAP envelope for IRCC command
	soapBody := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">
  <s:Body>
    <u:X_SendIRCC xmlns:u="urn:schemas-sony-com:service:IRCC:1">
      <IRCCCode>%s</IRCCCode>
    </u:X_SendIRCC>
  </s:Body>
</s:Envelope>`, code)

	url := fmt.Sprintf("http://%s%s", c.cfg.Host, IRCCEndpoint)

	req, err := http.NewRequest("POST", url, bytes.NewBufferString(soapBody))
	if err != nil {
		return fmt.Errorf("failed to create IRCC request: %w", err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"urn:schemas-sony-com:service:IRCC:1#X_SendIRCC"`)
	if c.credential != "" {
		req.Header.Set("Cookie", c.credential)
	}

	if c.debug {
		c.logger.Debug().
			Str("url", url).
			Str("code", code).
			Msg("Sending IRCC remote request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send IRCC request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if c.debug {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("body", string(body)).
				Msg("IRCC request failed")
		}
		return &ProtocolError{Endpoint: IRCCEndpoint, Status: resp.StatusCode, Body: string(body)}
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Msg("IRCC request successful")
	}

	return nil
}

// CommandCodes fetches the complete list of IRCC codes the TV
// supports, keyed by command name. No pairing is required.
func (c *Client) CommandCodes() (map[Command]string, error) {
	resp, err := c.ControlRequest(SystemEndpoint, NewPayload(10, GetRemoteControllerInfo, nil))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProtocolError{Endpoint: SystemEndpoint, Status: resp.StatusCode, Body: string(body)}
	}

	var body struct {
		Result []json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ParseError{Method: GetRemoteControllerInfo, Err: err}
	}

	// The code list is the second element of the result array; the
	// first holds controller metadata we have no use for.
	if len(body.Result) < 2 {
		return nil, &ParseError{Method: GetRemoteControllerInfo, Missing: "result[1]"}
	}

	var entries []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body.Result[1], &entries); err != nil {
		return nil, &ParseError{Method: GetRemoteControllerInfo, Err: err}
	}

	codes := make(map[Command]string, len(entries))
	for _, entry := range entries {
		codes[Command(entry.Name)] = entry.Value
	}

	if c.debug {
		c.logger.Debug().
			Int("count", len(codes)).
			Msg("Fetched remote controller info")
	}

	return codes, nil
}

// IsOn reports whether the TV is turned on. Only the exact power
// status "active" counts as on.
func (c *Client) IsOn() (bool, error) {
	resp, err := c.ControlRequest(SystemEndpoint, NewPayload(10, GetPowerStatus, nil))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, &ProtocolError{Endpoint: SystemEndpoint, Status: resp.StatusCode, Body: string(body)}
	}

	var body struct {
		Result []struct {
			Status string `json:"status"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, &ParseError{Method: GetPowerStatus, Err: err}
	}
	if len(body.Result) == 0 {
		return false, &ParseError{Method: GetPowerStatus, Missing: "result[0]"}
	}

	return body.Result[0].Status == "active", nil
}

// register sends a single actRegister request. A non-200 status is not
// an error here; pairing decides what to make of it.
func (c *Client) register(pincode string) (*http.Response, error) {
	clientID := c.cfg.ClientID()
	payload := NewPayload(13, ActRegister, []any{
		map[string]string{
			"clientid": clientID,
			"nickname": c.cfg.DeviceName,
		},
		[]map[string]string{{
			"clientid": clientID,
			"value":    "yes",
			"nickname": c.cfg.DeviceName,
			"function": "WOL",
		}},
	})

	return c.control(AccessControlEndpoint, payload, pincode)
}
