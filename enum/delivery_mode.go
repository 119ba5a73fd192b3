package enum

// DeliveryMode decides who receives a new chat message.
type DeliveryMode string

const (
	// DeliveryRoom sends to every session joined to the event room.
	DeliveryRoom DeliveryMode = "room"
	// DeliveryDirect sends only to the sender's and receiver's sessions in the room.
	DeliveryDirect DeliveryMode = "direct"
)

func ParseDeliveryMode(s string) DeliveryMode {
	if DeliveryMode(s) == DeliveryDirect {
		return DeliveryDirect
	}
	return DeliveryRoom
}
