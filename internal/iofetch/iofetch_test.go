package iofetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Date: Sunday 5 October\nOpposition: Rottingdean U12\n"))
		}))
	defer srv.Close()

	f := New(5 * time.Second)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Opposition: Rottingdean U12")
}

func TestFetchHTMLTable(t *testing.T) {
	page := `<html><head><style>td {color: red}</style></head><body>
<h1>Under 9 Group B</h1>
<table>
<tr><td>28/09/25 10:00</td><td>Hassocks Juniors U9 Robins vs Withdean Youth U9 Red</td><td>Hassocks Rec</td></tr>
<tr><td>05/10/25 09:30</td><td>Withdean Youth U9 Red vs Saltdean United U9</td><td>Stanley Deason 3G</td></tr>
</table>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(page))
		}))
	defer srv.Close()

	f := New(5 * time.Second)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	text := string(body)
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "color: red")
	assert.Contains(t, text,
		"28/09/25 10:00 Hassocks Juniors U9 Robins vs Withdean Youth U9 Red Hassocks Rec")
	assert.Contains(t, text,
		"05/10/25 09:30 Withdean Youth U9 Red vs Saltdean United U9 Stanley Deason 3G")
}

func TestFetchEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<p>Brighton &amp; Hove Albion U10 vs Withdean Youth U10</p>"))
		}))
	defer srv.Close()

	f := New(5 * time.Second)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Brighton & Hove Albion U10")
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
	defer srv.Close()

	f := New(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchUnreachable(t *testing.T) {
	f := New(time.Second)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/fixtures")
	assert.Error(t, err)
}
