package eventengine

import (
	"fmt"
	"log"
	"sync"
	"testing"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine/event"
)

func Test_eventEngine(t *testing.T) {
	log.SetFlags(log.Ltime | log.Lshortfile)

	var err error
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers, 10),
		eventEngineCh: make(chan *event.Event, 1),
	}

	internalSrvWG.Add(1)
	go engine.listen()

	engine.RegisterEvents(event.OrderCompletedEventName)

	// subscriber 1
	subscriberAddressCh1 := make(chan any, 2)
	err = engine.Subscribe(
		event.OrderCompletedEventName,
		&event.Subscriber{
			Name:      "test_subscriber.1",
			AddressCh: subscriberAddressCh1,
		},
	)
	if err != nil {
		close(subscriberAddressCh1)
		t.Error(err)
		return
	}

	received1 := 0
	internalSrvWG.Add(1)
	go func() {
		defer internalSrvWG.Done()
		for range subscriberAddressCh1 {
			received1++
		}
	}()

	// subscriber 2
	subscriberAddressCh2 := make(chan any, 2)
	err = engine.Subscribe(
		event.OrderCompletedEventName,
		&event.Subscriber{
			Name:      "test_subscriber.2",
			AddressCh: subscriberAddressCh2,
		},
	)
	if err != nil {
		close(subscriberAddressCh2)
		t.Error(err)
		return
	}

	received2 := 0
	internalSrvWG.Add(1)
	go func() {
		defer internalSrvWG.Done()
		for range subscriberAddressCh2 {
			received2++
		}
	}()

	const publishedCount = 5
	for i := 0; i < publishedCount; i++ {
		engine.Publish(
			&event.Event{
				Name: event.OrderCompletedEventName,
				Payload: &event.OrderCompletedEvent{
					OrderPayload: event.OrderPayload{
						OrderID: fmt.Sprintf("ORD0000000%d", i+1),
						Amount:  70.48,
						Method:  "card",
					},
				},
			},
		)
	}

	close(doneCh)
	internalSrvWG.Wait()

	if received1 != publishedCount {
		t.Errorf(
			"subscriber 1 received %d events, want %d",
			received1,
			publishedCount,
		)
	}

	if received2 != publishedCount {
		t.Errorf(
			"subscriber 2 received %d events, want %d",
			received2,
			publishedCount,
		)
	}
}

func Test_eventEngine_publishUnregisteredEvent(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers, 10),
		eventEngineCh: make(chan *event.Event, 1),
	}

	internalSrvWG.Add(1)
	go engine.listen()

	err := engine.Publish(
		&event.Event{
			Name: "never.registered",
		},
	)
	if err == nil {
		t.Error("expected an error publishing an unregistered event")
	}

	close(doneCh)
	internalSrvWG.Wait()
}
