package pubsub

// PubSubClient publishes and decodes match messages. Payloads travel as
// MessagePack so the push-subscription handler can decode them without
// knowing the topic.
type PubSubClient interface {
	SendMessage(topic string, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close()
}
