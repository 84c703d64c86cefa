package bravia_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"remi/internal/bravia"
)

func TestClientOptions(t *testing.T) {
	t.Run("client works with defaults", func(t *testing.T) {
		client := bravia.NewClient(bravia.NewConfig("192.168.1.100", "test-device"))

		assert.NotNil(t, client)
	})

	t.Run("short timeouts are honored", func(t *testing.T) {
		// Server that never answers within the timeout
		server := createMockServer(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})
		defer server.Close()

		client := bravia.NewClient(
			bravia.NewConfig(trimScheme(server.URL), "test-device"),
			bravia.WithTimeout(20*time.Millisecond),
		)

		_, err := client.CommandCodes()
		assert.Error(t, err)
	})

	t.Run("debug logging does not change behavior", func(t *testing.T) {
		server := createMockServer(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result": [{}, []]}`))
		})
		defer server.Close()

		client := bravia.NewClient(
			bravia.NewConfig(trimScheme(server.URL), "test-device"),
			bravia.WithDebug(true),
		)

		codes, err := client.CommandCodes()
		assert.NoError(t, err)
		assert.Empty(t, codes)
	})
}
