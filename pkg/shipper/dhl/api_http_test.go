package dhl_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/tournevent/shipbridge/pkg/shipper/dhl"
)

func TestHTTPAPIClient_Submit(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/XMLShippingServlet", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("isUTF8Support"))
		assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/xml", r.Header.Get("Accept"))
		gotBody, _ = io.ReadAll(r.Body)
		w.Write(dhl.SuccessResponse("1234567890", []byte("label")))
	}))
	defer srv.Close()

	client := dhl.NewHTTPAPIClient(dhl.HTTPAPIClientConfig{Endpoint: srv.URL + "/XMLShippingServlet"})
	resp, err := client.Submit(context.Background(), []byte("<req/>"))

	require.NoError(t, err)
	assert.Equal(t, "<req/>", string(gotBody))
	assert.Contains(t, string(resp), "<AirwayBillNumber>1234567890</AirwayBillNumber>")
}

func TestHTTPAPIClient_ConditionBodyIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(dhl.ConditionResponse("154", "null field value is invalid"))
	}))
	defer srv.Close()

	client := dhl.NewHTTPAPIClient(dhl.HTTPAPIClientConfig{Endpoint: srv.URL})
	resp, err := client.Submit(context.Background(), []byte("<req/>"))

	require.NoError(t, err)
	assert.Contains(t, string(resp), "<ConditionCode>154</ConditionCode>")
}

func TestHTTPAPIClient_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := dhl.NewHTTPAPIClient(dhl.HTTPAPIClientConfig{Endpoint: srv.URL})
	_, err := client.Submit(context.Background(), []byte("<req/>"))

	var transportErr *shipper.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Equal(t, "dhl", transportErr.Carrier)
	assert.Contains(t, err.Error(), "gateway down")
	assert.True(t, shipper.IsRetryable(err))
}

func TestHTTPAPIClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	client := dhl.NewHTTPAPIClient(dhl.HTTPAPIClientConfig{Endpoint: endpoint, Timeout: time.Second})
	_, err := client.Submit(context.Background(), []byte("<req/>"))

	var transportErr *shipper.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}

func TestHTTPAPIClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := dhl.NewHTTPAPIClient(dhl.HTTPAPIClientConfig{Endpoint: srv.URL})
	_, err := client.Submit(ctx, []byte("<req/>"))

	var transportErr *shipper.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.Canceled)
}
