package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/nurak20/smart-pos-web/internal/domain"
)

// TopicOrderPlaced carries one message per successfully submitted order.
// Subscribers run after the order is committed remotely; nothing they do can
// roll it back.
const TopicOrderPlaced = "order.placed"

// OrderPlaced is the post-commit event payload.
type OrderPlaced struct {
	Invoice domain.InvoiceResult `json:"invoice"`
}

// NewBus creates the in-process pub/sub used for post-commit events.
func NewBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 16,
	}, watermill.NewStdLogger(false, false))
}

// PublishOrderPlaced emits the event for a freshly persisted order.
func PublishOrderPlaced(publisher message.Publisher, invoice domain.InvoiceResult) error {
	payload, err := json.Marshal(OrderPlaced{Invoice: invoice})
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}
	return publisher.Publish(TopicOrderPlaced, message.NewMessage(watermill.NewUUID(), payload))
}
