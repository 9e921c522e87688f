package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/internal/server"
	"seabattle/internal/testutil"
)

// upperHandler echoes payloads upper-cased so transports can be tested
// without the full dispatch stack.
type upperHandler struct{}

func (upperHandler) Handle(_ context.Context, payload []byte) []byte {
	return []byte(strings.ToUpper(string(payload)))
}

func runBroker(t *testing.T, handler server.Handler) *server.Broker {
	t.Helper()

	broker := server.NewBroker(handler, 2, testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		broker.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return broker
}

func TestHTTPRPCRoundTrip(t *testing.T) {
	broker := runBroker(t, upperHandler{})
	ts := httptest.NewServer(NewHTTPHandler(broker, testutil.NopLogger()))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/rpc", "text/plain", strings.NewReader("n#12345"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "N#12345", string(body[:n]))
}

func TestHTTPRPCRejectsWrongMethod(t *testing.T) {
	broker := runBroker(t, upperHandler{})
	ts := httptest.NewServer(NewHTTPHandler(broker, testutil.NopLogger()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHTTPHealthz(t *testing.T) {
	broker := runBroker(t, upperHandler{})
	ts := httptest.NewServer(NewHTTPHandler(broker, testutil.NopLogger()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPRPCUnknownPath(t *testing.T) {
	broker := runBroker(t, upperHandler{})
	ts := httptest.NewServer(NewHTTPHandler(broker, testutil.NopLogger()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
