package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
)

func TestSendEnrollmentNotification(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	config.AppConfig = &config.Config{NotifyApiURL: server.URL, NotifyApiKey: "test-key"}

	err := SendEnrollmentNotification("asha@example.com", "Asha", "Go Basics", "pay-ref-1")
	require.NoError(t, err)

	assert.Equal(t, "enrollment_confirmation", received["template"])
	assert.Equal(t, "asha@example.com", received["email"])
	assert.Equal(t, "Go Basics", received["courseTitle"])
	assert.Equal(t, "pay-ref-1", received["paymentRef"])
}

func TestSendEnrollmentNotificationPropagatesServiceErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	config.AppConfig = &config.Config{NotifyApiURL: server.URL}

	err := SendEnrollmentNotification("asha@example.com", "Asha", "Go Basics", "pay-ref-1")
	assert.Error(t, err)
}
