package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/camlink-protocol/camlink-go/pkg/notify"
)

// Config configures the MQTT bridge.
type Config struct {
	// BrokerURL is the broker address ("tcp://host:1883").
	BrokerURL string

	// ClientID identifies this bridge to the broker.
	ClientID string

	// TopicPrefix is prepended to all topics. Default "camlink".
	TopicPrefix string

	// QoS for published messages. Default 0.
	QoS byte

	// Retain marks published state as retained so late subscribers see
	// the current value immediately. Default true.
	Retain *bool

	// KeepAlive for the broker connection. Default 30s.
	KeepAlive time.Duration
}

// Bridge forwards camera notifications to an MQTT broker.
type Bridge struct {
	client mqtt.Client
	prefix string
	qos    byte
	retain bool
}

// message is the JSON payload published for every event.
type message struct {
	Kind      string    `json:"kind"`
	Name      string    `json:"name,omitempty"`
	Value     any       `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// New connects to the broker and returns a ready bridge.
func New(cfg Config) (*Bridge, error) {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "camlink"
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "camlink-bridge"
	}
	if cfg.KeepAlive == 0 {
		cfg.KeepAlive = 30 * time.Second
	}
	retain := true
	if cfg.Retain != nil {
		retain = *cfg.Retain
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID)
	opts.SetKeepAlive(cfg.KeepAlive)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", token.Error())
	}

	return &Bridge{
		client: client,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		retain: retain,
	}, nil
}

// Notify publishes one camera event. Implements notify.Sink, so a
// Bridge can be subscribed to a notify.Dispatcher or passed directly
// as a camera.Control sink.
func (b *Bridge) Notify(ev notify.Event) {
	payload, err := json.Marshal(message{
		Kind:      ev.Kind.String(),
		Name:      ev.Name,
		Value:     ev.Value,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}
	b.client.Publish(b.topic(ev), b.qos, b.retain, payload)
}

// topic maps an event to its topic. Parameter events fan out under
// their parameter name; everything else publishes under the event kind.
func (b *Bridge) topic(ev notify.Event) string {
	if ev.Name != "" {
		return fmt.Sprintf("%s/%s/%s", b.prefix, topicSegment(ev.Kind), ev.Name)
	}
	return fmt.Sprintf("%s/%s", b.prefix, topicSegment(ev.Kind))
}

func topicSegment(kind notify.EventKind) string {
	switch kind {
	case notify.EventGimbalVersion:
		return "gimbal/version"
	case notify.EventOrientation:
		return "gimbal/orientation"
	case notify.EventOrientationAvailable:
		return "gimbal/available"
	case notify.EventCalibration:
		return "gimbal/calibration"
	case notify.EventVideoStatus:
		return "capture/video"
	case notify.EventRecordTime:
		return "capture/recordtime"
	case notify.EventActiveSettings:
		return "settings/active"
	case notify.EventSpotArea:
		return "settings/spotarea"
	case notify.EventThermalStatus:
		return "thermal/status"
	case notify.EventThermalPalette:
		return "thermal/palette"
	case notify.EventParametersReady:
		return "params/ready"
	case notify.EventParametersResynced:
		return "params/resynced"
	case notify.EventParameter:
		return "params"
	default:
		return "events"
	}
}

// Close disconnects from the broker, allowing in-flight publishes a
// moment to complete.
func (b *Bridge) Close() {
	b.client.Disconnect(250)
}

// Compile-time interface satisfaction check.
var _ notify.Sink = (*Bridge)(nil)
