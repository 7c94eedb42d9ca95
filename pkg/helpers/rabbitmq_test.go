package helpers

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type typedJob struct {
	To string `json:"to"`
}

func (typedJob) JobType() string { return "email.welcome" }

func TestNewPublishing(t *testing.T) {
	msg, err := NewPublishing(typedJob{To: "ada@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "email.welcome", msg.Type)
	assert.False(t, msg.Timestamp.IsZero())
	_, err = uuid.Parse(msg.MessageId)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"to":"ada@example.com"}`, string(msg.Body))

	other, err := NewPublishing(map[string]string{"to": "x"})
	require.NoError(t, err)
	assert.Empty(t, other.Type)
	assert.NotEqual(t, msg.MessageId, other.MessageId)
}

func TestNewPublishingRejectsUnencodableBody(t *testing.T) {
	_, err := NewPublishing(make(chan int))
	var unsupported *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}
