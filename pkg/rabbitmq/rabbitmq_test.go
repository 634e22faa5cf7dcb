package rabbitmq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeEvent(t *testing.T) {
	at := time.Date(2025, 8, 4, 12, 0, 0, 0, time.UTC)
	body, err := EncodeEvent("donation.recorded", map[string]interface{}{
		"campaign_id": 1,
		"amount":      "25.5",
	}, at)
	require.NoError(t, err)

	ev, err := DecodeEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "donation.recorded", ev.Type)
	assert.True(t, at.Equal(ev.OccurredAt))
	assert.Equal(t, "25.5", ev.Data["amount"])
	assert.Equal(t, float64(1), ev.Data["campaign_id"])
}

func TestEncodeEvent_RequiresType(t *testing.T) {
	_, err := EncodeEvent("", nil, time.Now())
	assert.Error(t, err)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := DecodeEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"data":{}}`))
	assert.Error(t, err)
}

func TestPublishEvent_WithoutChannel(t *testing.T) {
	c := &Client{}
	err := c.PublishEvent("user.deactivated", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel is not available")
}

func TestLogAuditEvent(t *testing.T) {
	assert.NoError(t, LogAuditEvent(Event{Type: "campaign.created", Data: map[string]interface{}{"campaign_id": 3}}))
}
