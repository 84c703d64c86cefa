package bravia_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remi/internal/bravia"
)

// fakeTV simulates the three Bravia endpoints for pairing tests. When
// pincode is empty every registration succeeds; otherwise the TV only
// accepts attempts carrying that pincode as basic-auth credentials.
type fakeTV struct {
	pincode     string
	credential  string
	codes       map[string]string
	powerStatus string

	registerCalls int
	irccBodies    []string
	irccCookies   []string
}

func newFakeTV() *fakeTV {
	return &fakeTV{
		credential:  "auth=deadbeef; Path=/sony/; Max-Age=1209600",
		powerStatus: "active",
		codes: map[string]string{
			"Mute":       "AAAAAQAAAAEAAAAUAw==",
			"VolumeUp":   "AAAAAQAAAAEAAAASAw==",
			"VolumeDown": "AAAAAQAAAAEAAAATAw==",
			"PowerOff":   "AAAAAQAAAAEAAAAvAw==",
			"Confirm":    "AAAAAQAAAAEAAABlAw==",
		},
	}
}

func (f *fakeTV) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sony/accessControl":
			f.registerCalls++

			var payload bravia.Payload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "actRegister", payload.Method)

			_, pass, hasAuth := r.BasicAuth()
			if f.pincode != "" && (!hasAuth || pass != f.pincode) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			w.Header().Set("Set-Cookie", f.credential)
			w.Write([]byte(`{"result": [], "id": 13}`))

		case "/sony/system":
			var payload bravia.Payload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

			switch payload.Method {
			case "getRemoteControllerInfo":
				entries := make([]map[string]string, 0, len(f.codes))
				for name, value := range f.codes {
					entries = append(entries, map[string]string{"name": name, "value": value})
				}
				json.NewEncoder(w).Encode(map[string]any{
					"result": []any{map[string]any{}, entries},
				})
			case "getPowerStatus":
				json.NewEncoder(w).Encode(map[string]any{
					"result": []any{map[string]string{"status": f.powerStatus}},
				})
			default:
				t.Errorf("unexpected system method: %s", payload.Method)
			}

		case "/sony/IRCC":
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			f.irccBodies = append(f.irccBodies, string(body))
			f.irccCookies = append(f.irccCookies, r.Header.Get("Cookie"))
			w.Write([]byte(`<?xml version="1.0"?><response>OK</response>`))

		default:
			t.Errorf("unexpected request path: %s", r.URL.Path)
		}
	}
}

func (f *fakeTV) serve(t *testing.T) *bravia.Config {
	server := httptest.NewServer(f.handler(t))
	t.Cleanup(server.Close)

	address := strings.TrimPrefix(server.URL, "http://")
	return bravia.NewConfig(address, "test-device")
}

func TestConnect(t *testing.T) {
	t.Run("already paired controllers connect on the first attempt", func(t *testing.T) {
		fake := newFakeTV()
		cfg := fake.serve(t)

		resolverCalled := false
		tv, err := bravia.Connect(cfg, func() (string, error) {
			resolverCalled = true
			return "0000", nil
		})

		require.NoError(t, err)
		assert.False(t, resolverCalled, "resolver must not run when the first attempt succeeds")
		assert.Equal(t, 1, fake.registerCalls)
		assert.Equal(t, fake.credential, tv.Credential())
	})

	t.Run("pairing demand resolves the challenge exactly once", func(t *testing.T) {
		fake := newFakeTV()
		fake.pincode = "4829"
		cfg := fake.serve(t)

		resolverCalls := 0
		tv, err := bravia.Connect(cfg, func() (string, error) {
			resolverCalls++
			return "4829", nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, resolverCalls)
		assert.Equal(t, 2, fake.registerCalls)
		assert.Equal(t, fake.credential, tv.Credential())
	})

	t.Run("two rejections fail with ErrAuthentication", func(t *testing.T) {
		fake := newFakeTV()
		fake.pincode = "4829"
		cfg := fake.serve(t)

		_, err := bravia.Connect(cfg, func() (string, error) {
			return "1111", nil // wrong pincode
		})

		require.ErrorIs(t, err, bravia.ErrAuthentication)
		assert.Equal(t, 2, fake.registerCalls, "exactly two authentication requests")
	})

	t.Run("resolver errors abort the second attempt", func(t *testing.T) {
		fake := newFakeTV()
		fake.pincode = "4829"
		cfg := fake.serve(t)

		resolverErr := errors.New("no pincode available")
		_, err := bravia.Connect(cfg, func() (string, error) {
			return "", resolverErr
		})

		require.ErrorIs(t, err, resolverErr)
		assert.Equal(t, 1, fake.registerCalls)
	})

	t.Run("nil resolver fails when pairing is demanded", func(t *testing.T) {
		fake := newFakeTV()
		fake.pincode = "4829"
		cfg := fake.serve(t)

		_, err := bravia.Connect(cfg, nil)

		require.ErrorIs(t, err, bravia.ErrAuthentication)
		assert.Equal(t, 1, fake.registerCalls)
	})

	t.Run("accepted registration without a session cookie is a ParseError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result": []}`))
		}))
		defer server.Close()

		cfg := bravia.NewConfig(strings.TrimPrefix(server.URL, "http://"), "test-device")
		_, err := bravia.Connect(cfg, nil)

		var parseErr *bravia.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Set-Cookie header", parseErr.Missing)
	})

	t.Run("command codes are fetched eagerly at connect time", func(t *testing.T) {
		fake := newFakeTV()
		cfg := fake.serve(t)

		tv, err := bravia.Connect(cfg, nil)

		require.NoError(t, err)
		codes := tv.Codes()
		assert.Len(t, codes, len(fake.codes))
		assert.Equal(t, "AAAAAQAAAAEAAAAUAw==", codes[bravia.CommandMute])
	})

	t.Run("failing code discovery fails the connect", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/sony/accessControl" {
				w.Header().Set("Set-Cookie", "auth=deadbeef")
				w.Write([]byte(`{"result": []}`))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cfg := bravia.NewConfig(strings.TrimPrefix(server.URL, "http://"), "test-device")
		_, err := bravia.Connect(cfg, nil)

		var protoErr *bravia.ProtocolError
		require.ErrorAs(t, err, &protoErr)
	})
}

func TestSendCommand(t *testing.T) {
	connect := func(t *testing.T, fake *fakeTV) *bravia.TV {
		cfg := fake.serve(t)
		tv, err := bravia.Connect(cfg, nil)
		require.NoError(t, err)
		return tv
	}

	t.Run("dispatch embeds the code the TV reported", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		require.NoError(t, tv.SendCommand(bravia.CommandMute))

		require.Len(t, fake.irccBodies, 1)
		assert.Contains(t, fake.irccBodies[0], "<IRCCCode>AAAAAQAAAAEAAAAUAw==</IRCCCode>")
	})

	t.Run("dispatch carries the session credential as a cookie", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		require.NoError(t, tv.SendCommand(bravia.CommandPowerOff))

		require.Len(t, fake.irccCookies, 1)
		assert.Equal(t, fake.credential, fake.irccCookies[0])
	})

	t.Run("unknown commands fail without a request", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		err := tv.SendCommand(bravia.Command("Bogus"))

		var unknownErr *bravia.UnknownCommandError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, bravia.Command("Bogus"), unknownErr.Command)
		assert.Empty(t, fake.irccBodies)
	})

	t.Run("named actions alias their command names", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		require.NoError(t, tv.Mute())
		require.NoError(t, tv.PowerOff())
		require.NoError(t, tv.Confirm())

		require.Len(t, fake.irccBodies, 3)
		assert.Contains(t, fake.irccBodies[0], fake.codes["Mute"])
		assert.Contains(t, fake.irccBodies[1], fake.codes["PowerOff"])
		assert.Contains(t, fake.irccBodies[2], fake.codes["Confirm"])
	})

	t.Run("actions without a discovered code fail with UnknownCommandError", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		// The fake TV reports no Netflix code
		err := tv.Netflix()

		var unknownErr *bravia.UnknownCommandError
		require.ErrorAs(t, err, &unknownErr)
	})

	t.Run("Supports reflects the discovered mapping", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		assert.True(t, tv.Supports(bravia.CommandMute))
		assert.False(t, tv.Supports(bravia.CommandNetflix))
	})

	t.Run("Codes returns a copy", func(t *testing.T) {
		fake := newFakeTV()
		tv := connect(t, fake)

		codes := tv.Codes()
		codes[bravia.CommandMute] = "tampered"

		assert.Equal(t, "AAAAAQAAAAEAAAAUAw==", tv.Codes()[bravia.CommandMute])
	})
}

func TestVolume(t *testing.T) {
	connect := func(t *testing.T) (*fakeTV, *bravia.TV) {
		fake := newFakeTV()
		cfg := fake.serve(t)
		tv, err := bravia.Connect(cfg, nil)
		require.NoError(t, err)
		return fake, tv
	}

	t.Run("volume up issues one request per step", func(t *testing.T) {
		fake, tv := connect(t)

		require.NoError(t, tv.VolumeUp(3))

		require.Len(t, fake.irccBodies, 3)
		for _, body := range fake.irccBodies {
			assert.Contains(t, body, fake.codes["VolumeUp"])
		}
	})

	t.Run("zero steps fall back to the default", func(t *testing.T) {
		fake, tv := connect(t)

		require.NoError(t, tv.VolumeDown(0))

		assert.Len(t, fake.irccBodies, bravia.DefaultVolumeSteps)
	})

	t.Run("negative steps fall back to the default", func(t *testing.T) {
		fake, tv := connect(t)

		require.NoError(t, tv.VolumeUp(-2))

		assert.Len(t, fake.irccBodies, bravia.DefaultVolumeSteps)
	})
}

func TestTVIsOn(t *testing.T) {
	t.Run("reports the power state through the session", func(t *testing.T) {
		fake := newFakeTV()
		fake.powerStatus = "standby"
		cfg := fake.serve(t)

		tv, err := bravia.Connect(cfg, nil)
		require.NoError(t, err)

		on, err := tv.IsOn()
		require.NoError(t, err)
		assert.False(t, on)
	})
}
