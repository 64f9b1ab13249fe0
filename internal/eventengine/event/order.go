package event

var (
	OrderCompletedEventName EventName = "order.completed"
	OrderFailedEventName    EventName = "order.failed"
)

type OrderPayload struct {
	OrderID string
	Amount  float64
	Method  string
}

type OrderCompletedEvent struct {
	OrderPayload
}

func (e *OrderCompletedEvent) GetEventName() EventName {
	return OrderCompletedEventName
}

type OrderFailedEvent struct {
	OrderPayload
	Reason string
}

func (e *OrderFailedEvent) GetEventName() EventName {
	return OrderFailedEventName
}
