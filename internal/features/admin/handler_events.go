package admin

import (
	"context"
	"log"
	"sync"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine"
	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.admin"

type refresher interface {
	RefreshDashboard(ctx context.Context)
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Service       refresher
	AddressChSize uint16
}

type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

// NewHandlerEvents subscribes the admin dashboard to the events that change
// its aggregates so a co-resident view refreshes without polling.
func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil {
		log.Fatalf(
			"either 'DoneCh', 'InternalSrvWG', 'EventEngine' or 'Service' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderCompletedEvent:
			log.Printf(
				"order %s completed via %s for $%.2f",
				ne.OrderID,
				ne.Method,
				ne.Amount,
			)
			h.Service.RefreshDashboard(context.TODO())

		case *event.OrderFailedEvent:
			log.Printf("order %s via %s failed", ne.OrderID, ne.Method)
			h.Service.RefreshDashboard(context.TODO())

		case *event.InquiryCreatedEvent:
			log.Printf("new inquiry from %s about %s", ne.Name, ne.Product)
			h.Service.RefreshDashboard(context.TODO())

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

// addSubscriptions subscribes this handler's addressCh to the events the
// dashboard cares about.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [3]event.EventName{
		event.OrderCompletedEventName,
		event.OrderFailedEventName,
		event.InquiryCreatedEventName,
	}

	var err error
	for _, v := range subscribeToEventNames {
		err = h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s' \nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
