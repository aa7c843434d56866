package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKafkaWriter_FlushesSingleMessagesQuickly(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "localhost:9092")

	writer := NewKafkaWriter(TopicBankTransactions)
	defer writer.Close()

	assert.Equal(t, TopicBankTransactions, writer.Topic)
	assert.Equal(t, KafkaBatchTimeout, writer.BatchTimeout)
	assert.False(t, writer.Async)
	assert.True(t, writer.AllowAutoTopicCreation)
}
