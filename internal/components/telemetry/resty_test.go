package telemetry

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type debugRecorder struct {
	*MemoryAPI
	messages []string
}

func (d *debugRecorder) ReportDebug(msg string, params ...any) {
	if msg != report_resty_message {
		return
	}
	d.messages = append(d.messages, params[1].(string))
}

func enableDebug(t *testing.T) {
	debugEnabled.Store(true)
	t.Cleanup(func() { debugEnabled.Store(false) })
}

func TestInstrumentRestyRedactsForm(t *testing.T) {
	enableDebug(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	tel := &debugRecorder{MemoryAPI: NewMemoryAPI()}
	client := resty.New()
	InstrumentResty(client, tel, "PasswordEtu")

	_, err := client.R().
		SetFormData(map[string]string{"NoDA": "2412345", "PasswordEtu": "hunter2"}).
		Post(server.URL)
	require.NoError(t, err)

	require.Len(t, tel.messages, 1)
	require.Contains(t, tel.messages[0], "NoDA=2412345")
	require.NotContains(t, tel.messages[0], "hunter2")
	require.True(t, strings.Contains(tel.messages[0], "PasswordEtu=%3CREDACTED%3E"), tel.messages[0])
}

func TestInstrumentRestyReportsTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	tel := NewMemoryAPI()
	client := resty.New()
	InstrumentResty(client, tel)

	_, err := client.R().Get(url)
	require.Error(t, err)
	require.True(t, tel.HasBroken(report_resty_response))
}

func TestInstrumentRestyOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>landing</html>"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dumps")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	SetRestyOutput(out)
	defer SetRestyOutput(nil)

	client := resty.New()
	InstrumentResty(client, NewMemoryAPI())
	_, err = client.R().Get(server.URL + "/intr/")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Contains(t, string(contents), "GET "+server.URL+"/intr/")
	require.Contains(t, string(contents), "<html>landing</html>")
}

func TestInstrumentRestyGetWithoutBody(t *testing.T) {
	enableDebug(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	tel := &debugRecorder{MemoryAPI: NewMemoryAPI()}
	client := resty.New()
	InstrumentResty(client, tel)

	res, err := client.R().Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", res.String())

	require.Len(t, tel.messages, 1)
	require.Contains(t, tel.messages[0], "GET "+server.URL)
	require.Contains(t, tel.messages[0], "<NO BODY AVAILABLE>")
	require.Empty(t, tel.Broken())
}

func TestInstrumentRestyQuietSkipsDumps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	tel := &debugRecorder{MemoryAPI: NewMemoryAPI()}
	client := resty.New()
	InstrumentResty(client, tel, "PasswordEtu")

	_, err := client.R().Get(server.URL)
	require.NoError(t, err)
	_, err = client.R().
		SetFormData(map[string]string{"PasswordEtu": "hunter2"}).
		Post(server.URL)
	require.NoError(t, err)

	require.Empty(t, tel.messages)
	require.Empty(t, tel.Broken())
}
