package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okasina/okasina-fashion/internal/email"
)

func TestHandleSendEmailUnconfigured(t *testing.T) {
	h := NewEmailHandler(email.NewService(email.Config{}))

	c, rec := NewTestContext(http.MethodPost, "/api/email/send", map[string]interface{}{
		"to":      "customer@example.com",
		"subject": "Hello",
		"html":    "<p>Hi</p>",
	})
	require.NoError(t, h.HandleSendEmail(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Missing SMTP Configuration", body["error"])
}

func TestHandleSendEmailMissingRecipient(t *testing.T) {
	h := NewEmailHandler(email.NewService(email.Config{}))

	c, rec := NewTestContext(http.MethodPost, "/api/email/send", map[string]interface{}{
		"subject": "Hello",
	})
	require.NoError(t, h.HandleSendEmail(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Missing recipient", body["error"])
}
