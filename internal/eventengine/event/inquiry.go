package event

const (
	InquiryCreatedEventName EventName = "inquiry.created"
)

type InquiryCreatedEvent struct {
	Name    string
	Email   string
	Product string
}

func (e *InquiryCreatedEvent) GetEventName() EventName {
	return InquiryCreatedEventName
}
