package statloghandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers processes stat log events arriving on the bus.
type Handlers interface {
	HandleStatRecordRequested(msg *message.Message) ([]*message.Message, error)
}
