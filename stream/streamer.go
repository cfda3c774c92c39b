package stream

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// Publisher is the part of mqtt.Client the Streamer uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer that publishes binary segment frames over MQTT.
type Streamer struct {
	client Publisher
	topic  string
	qos    byte
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(client Publisher, topic string, qos byte) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.qos = qos
	return s
}

// Draw sends a frame as binary over MQTT.
func (s *Streamer) Draw(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, s.qos, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish frame %d to %s: timed out", f.Seq, s.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish frame %d to %s: %w", f.Seq, s.topic, err)
	}
	return nil
}
