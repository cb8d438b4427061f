package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/football-etl/internal/platform/resilience"
	"github.com/riskibarqy/football-etl/internal/usecase"
)

const resultsCSV = "\ufeffDiv,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HTHG,HTAG,HTR,B365H,B365D,B365A\n" +
	"E0,05/08/2022,20:00,Crystal Palace,Arsenal,0,2,A,0,1,A,4.2,3.6,1.85\n" +
	"E0,06/08/2022,12:30,Fulham,Liverpool,2,2,D,1,0,H,11,6,1.25\n" +
	",,,,,,,,,,,,,\n"

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:      baseURL,
		Division:     "E0",
		Timeout:      2 * time.Second,
		MaxRetries:   retries,
		RetryBackoff: func(int) time.Duration { return 0 },
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestClient_FetchResults(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(resultsCSV))
	}))
	defer server.Close()

	tbl, err := newTestClient(server.URL, 0).FetchResults(context.Background(), "2022_2023")
	if err != nil {
		t.Fatalf("fetch results: %v", err)
	}
	if gotPath != "/mmz4281/2223/E0.csv" {
		t.Fatalf("unexpected path: got=%s want=/mmz4281/2223/E0.csv", gotPath)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("unexpected row count: got=%d want=2", tbl.NumRows())
	}
	if got := tbl.Columns()[0]; got != "Div" {
		t.Fatalf("expected byte order mark to be stripped, got %q", got)
	}
	home, _ := tbl.Value("HomeTeam", 1)
	if home.Text() != "Fulham" {
		t.Fatalf("unexpected home team: got=%q want=Fulham", home.Text())
	}
	odds, _ := tbl.Value("B365A", 0)
	if f, ok := odds.Number(); !ok || f != 1.85 {
		t.Fatalf("unexpected B365A: got=%v want=1.85", odds)
	}
}

func TestClient_FetchResults_InvalidSeason(t *testing.T) {
	t.Parallel()

	_, err := newTestClient("http://127.0.0.1:1", 0).FetchResults(context.Background(), "2022")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("unexpected error: got=%v want=%v", err, usecase.ErrInvalidInput)
	}
}

func TestClient_FetchResults_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(resultsCSV))
	}))
	defer server.Close()

	tbl, err := newTestClient(server.URL, 2).FetchResults(context.Background(), "2023_2024")
	if err != nil {
		t.Fatalf("fetch results: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("unexpected row count: got=%d want=2", tbl.NumRows())
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("unexpected attempts: got=%d want=3", got)
	}
}

func TestClient_FetchResults_ExhaustedRetries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 1).FetchResults(context.Background(), "2023_2024")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("unexpected error: got=%v want=%v", err, usecase.ErrDependencyUnavailable)
	}
}

func TestParseCSV(t *testing.T) {
	t.Parallel()

	tbl, err := ParseCSV(strings.NewReader("Div,Date\nE0,05/08/2022\n"))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if diff := cmp.Diff([]string{"Div", "Date"}, tbl.Columns()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}

	empty, err := ParseCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse empty csv: %v", err)
	}
	if empty.NumRows() != 0 {
		t.Fatalf("expected empty table, got %d rows", empty.NumRows())
	}
}
