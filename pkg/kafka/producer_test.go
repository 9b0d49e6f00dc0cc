package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrokers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "trims and skips blanks", raw: " a:9092, ,b:9092 ,", want: []string{"a:9092", "b:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBrokers(tt.raw))
		})
	}
}

func TestNewProducer(t *testing.T) {
	cfg := Config{
		ClientID: "prediction-service",
		Brokers:  []string{"localhost:9092", "localhost:9093"},
	}

	p, err := NewProducer(cfg, "diabetes.predictions")
	require.NoError(t, err)
	assert.Equal(t, "diabetes.predictions", p.Topic())
	assert.Equal(t, "diabetes.predictions", p.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, p.writer.RequiredAcks)

	transport, ok := p.writer.Transport.(*kafkago.Transport)
	require.True(t, ok)
	assert.Equal(t, "prediction-service", transport.ClientID)
	assert.Nil(t, transport.TLS)
	assert.Nil(t, transport.SASL)
}

func TestNewProducer_Errors(t *testing.T) {
	_, err := NewProducer(Config{}, "topic")
	assert.Error(t, err)

	_, err = NewProducer(Config{Brokers: []string{"kafka:9092"}}, "")
	assert.Error(t, err)

	_, err = NewProducer(Config{
		Brokers:       []string{"kafka:9092"},
		SASLEnabled:   true,
		SASLMechanism: "GSSAPI",
	}, "topic")
	assert.Error(t, err)
}

func TestNewProducer_TLSAndSASL(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "scram-sha-512",
		SASLUsername:  "svc",
		SASLPassword:  "secret",
	}, "topic")
	require.NoError(t, err)

	transport := p.writer.Transport.(*kafkago.Transport)
	require.NotNil(t, transport.TLS)
	require.NotNil(t, transport.SASL)
	assert.Equal(t, "SCRAM-SHA-512", transport.SASL.Name())
}

func TestToKafkaMessages(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:     []byte("prediction-1"),
		Value:   []byte(`{"risk_level":"High"}`),
		Headers: map[string]string{"event_type": "prediction.completed"},
	}})

	require.Len(t, msgs, 1)
	assert.Equal(t, "prediction-1", string(msgs[0].Key))
	require.Len(t, msgs[0].Headers, 1)
	assert.Equal(t, "event_type", msgs[0].Headers[0].Key)
	assert.Equal(t, "prediction.completed", string(msgs[0].Headers[0].Value))

	back := fromKafkaMessage(msgs[0])
	assert.Equal(t, "prediction.completed", back.Headers["event_type"])
}

func TestProducerPublishEmpty(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}}, "topic")
	require.NoError(t, err)
	assert.NoError(t, p.Publish(t.Context()))
}
