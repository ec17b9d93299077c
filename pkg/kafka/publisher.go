package kafka

import "context"

// Publisher is the narrow interface services depend on, satisfied by
// *Producer. A nil publisher disables event emission.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
