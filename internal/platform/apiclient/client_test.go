package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poolwatch/internal/platform/apiclient"
)

type recorded struct {
	method      string
	path        string
	rawQuery    string
	auth        string
	contentType string
	requestID   string
	body        string
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.rawQuery = r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		rec.contentType = r.Header.Get("Content-Type")
		rec.requestID = r.Header.Get(apiclient.RequestIDHeader)
		if err := r.ParseForm(); err == nil && r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
			rec.body = r.PostForm.Encode()
		} else {
			buf, _ := io.ReadAll(r.Body)
			rec.body = string(buf)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newClient(t *testing.T, baseURL, token string) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(apiclient.Options{
		BaseURL: baseURL,
		Tokens:  apiclient.TokenSourceFunc(func(context.Context) string { return token }),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestGetAttachesBearerAndDecodes(t *testing.T) {
	t.Parallel()
	srv, rec := newServer(t, http.StatusOK, `{"id":7,"name":"North"}`)
	c := newClient(t, srv.URL+"/", "tok-1")

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/pools/7", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.ID != 7 || out.Name != "North" {
		t.Fatalf("unexpected payload %+v", out)
	}
	if rec.path != "/api/v1/pools/7" || rec.method != http.MethodGet {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	if rec.auth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", rec.auth)
	}
	if rec.requestID == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestNoTokenSendsUnauthenticated(t *testing.T) {
	t.Parallel()
	srv, rec := newServer(t, http.StatusOK, `[]`)
	c := newClient(t, srv.URL, "")
	var out []any
	if err := c.Get(context.Background(), "pools", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.auth != "" {
		t.Fatalf("expected no authorization header, got %q", rec.auth)
	}
}

func TestFailureUsesDetailMessage(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, http.StatusBadRequest, `{"detail":"Pool with this name already exists"}`)
	c := newClient(t, srv.URL, "tok")
	err := c.PostJSON(context.Background(), "/pools", nil, map[string]string{"name": "x"}, nil)
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apiclient.Error, got %T %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || err.Error() != "Pool with this name already exists" {
		t.Fatalf("unexpected error %d %q", apiErr.Status, err.Error())
	}
}

func TestFailureWithUnparseableBodyIsUnknown(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, http.StatusInternalServerError, `<html>boom</html>`)
	c := newClient(t, srv.URL, "")
	err := c.Get(context.Background(), "/pools", nil, &[]any{})
	if err == nil || err.Error() != apiclient.MessageUnknown {
		t.Fatalf("expected %q, got %v", apiclient.MessageUnknown, err)
	}
	if apiclient.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", apiclient.StatusOf(err))
	}
}

func TestFailureWithoutDetailFallsBackToStatus(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, http.StatusNotFound, `{}`)
	c := newClient(t, srv.URL, "")
	err := c.Get(context.Background(), "/pools/1", nil, &struct{}{})
	if err == nil || err.Error() != "HTTP error: 404" {
		t.Fatalf("expected status fallback message, got %v", err)
	}
}

func TestValidationDetailListIsJoined(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, http.StatusUnprocessableEntity,
		`{"detail":[{"loc":["body","name"],"msg":"field required"},{"loc":["body","url"],"msg":"too short"}]}`)
	c := newClient(t, srv.URL, "")
	err := c.PostJSON(context.Background(), "/pools", nil, struct{}{}, nil)
	if err == nil || err.Error() != "field required; too short" {
		t.Fatalf("unexpected message %v", err)
	}
	if apiclient.StatusOf(err) != http.StatusUnprocessableEntity || apiclient.IsUnauthorized(err) {
		t.Fatalf("unexpected status %d", apiclient.StatusOf(err))
	}
}

func TestPostFormEncodesCredentials(t *testing.T) {
	t.Parallel()
	srv, rec := newServer(t, http.StatusOK, `{"access_token":"a","refresh_token":"r","token_type":"bearer"}`)
	c := newClient(t, srv.URL, "")
	var out map[string]string
	form := map[string][]string{"username": {"alice"}, "password": {"s3cret"}}
	if err := c.PostForm(context.Background(), "/auth/login", form, &out); err != nil {
		t.Fatalf("post form: %v", err)
	}
	if rec.contentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", rec.contentType)
	}
	if rec.body != "password=s3cret&username=alice" {
		t.Fatalf("unexpected form body %q", rec.body)
	}
	if out["access_token"] != "a" {
		t.Fatalf("unexpected decoded tokens %+v", out)
	}
}

func TestPutSendsJSON(t *testing.T) {
	t.Parallel()
	srv, rec := newServer(t, http.StatusOK, `{"id":1}`)
	c := newClient(t, srv.URL, "tok")
	if err := c.PutJSON(context.Background(), "/pools/1", map[string]string{"name": "X"}, &map[string]any{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if rec.method != http.MethodPut || rec.contentType != "application/json" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.contentType)
	}
	var sent map[string]string
	if err := json.Unmarshal([]byte(rec.body), &sent); err != nil || sent["name"] != "X" {
		t.Fatalf("unexpected json body %q (%v)", rec.body, err)
	}
}

func TestDeleteIgnoresSuccessBody(t *testing.T) {
	t.Parallel()
	srv, rec := newServer(t, http.StatusNoContent, ``)
	c := newClient(t, srv.URL, "tok")
	if err := c.Delete(context.Background(), "/pools/3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/api/v1/pools/3" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
}

func TestInvalidSuccessBody(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, http.StatusOK, `not json`)
	c := newClient(t, srv.URL, "")
	err := c.Get(context.Background(), "/pools", nil, &[]any{})
	if err == nil || err.Error() != apiclient.MessageInvalidResponse {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestNetworkFailureHidesTransportDetail(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()
	c, err := apiclient.New(apiclient.Options{BaseURL: url, Timeout: time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = c.Get(context.Background(), "/pools", nil, &[]any{})
	if err == nil || err.Error() != apiclient.MessageNetwork {
		t.Fatalf("expected network error message, got %v", err)
	}
	if apiclient.StatusOf(err) != 0 {
		t.Fatalf("expected no status for transport failure")
	}
}

func TestParamsOmitAbsentFields(t *testing.T) {
	t.Parallel()
	poolID := 4
	limit := 50
	empty := ""
	day := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	p := apiclient.NewParams().
		Int("pool_id", &poolID).
		Int("offset", nil).
		String("weekday", &empty).
		String("period", nil).
		Date("start_date", &day).
		Date("end_date", nil).
		Int("limit", &limit)
	got := p.Values().Encode()
	if got != "limit=50&pool_id=4&start_date=2026-03-09" {
		t.Fatalf("unexpected query %q", got)
	}
	if apiclient.NewParams().Values() != nil {
		t.Fatalf("expected nil values when nothing was set")
	}
}

func TestQueryIsSerialized(t *testing.T) {
	t.Parallel()
	srv, rec := newServer(t, http.StatusOK, `[]`)
	c := newClient(t, srv.URL, "")
	poolID := 2
	if err := c.Get(context.Background(), "/visitors", apiclient.NewParams().Int("pool_id", &poolID).Values(), &[]any{}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.rawQuery != "pool_id=2" {
		t.Fatalf("unexpected query %q", rec.rawQuery)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	t.Parallel()
	if _, err := apiclient.New(apiclient.Options{BaseURL: ""}); err == nil {
		t.Fatalf("expected empty base url to fail")
	}
	if _, err := apiclient.New(apiclient.Options{BaseURL: "ftp://example"}); err == nil {
		t.Fatalf("expected non-http scheme to fail")
	}
}
