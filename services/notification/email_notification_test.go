package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/stretchr/testify/require"
)

func TestPlunkSendEmail(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody EmailRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewPlunk(&utils.Config{
		PlunkApiKey:  "pk_test",
		PlunkBaseUrl: server.URL,
	})

	err := client.SendEmail("farmer@example.com", "Top-up approved", "Your wallet top-up of GHS 100 has been approved.")
	require.NoError(t, err)
	require.Equal(t, "/send", gotPath)
	require.Equal(t, "Bearer pk_test", gotAuth)
	require.Equal(t, "farmer@example.com", gotBody.To)
	require.Equal(t, "Top-up approved", gotBody.Subject)
}

func TestPlunkSendEmailSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewPlunk(&utils.Config{
		PlunkApiKey:  "bad",
		PlunkBaseUrl: server.URL,
	})

	err := client.SendEmail("farmer@example.com", "subject", "body")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid api key")
}
