package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidChannel(t *testing.T) {
	for _, channel := range []string{ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush, ChannelChat} {
		assert.True(t, IsValidChannel(channel), "channel %s phải hợp lệ", channel)
	}
	for _, channel := range []string{"", "fax", "IN_APP", "webhook"} {
		assert.False(t, IsValidChannel(channel), "channel %s phải bị từ chối", channel)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusSent, StatusError, StatusWarning} {
		assert.True(t, IsValidStatus(status), "status %s phải hợp lệ", status)
	}
	for _, status := range []string{"", "delivered", "SENT", "failed"} {
		assert.False(t, IsValidStatus(status), "status %s phải bị từ chối", status)
	}
}
