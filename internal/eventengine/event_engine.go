// Package eventengine is the in-process pub/sub used to decouple features:
// checkout publishes order events, the inquiry feature publishes inquiry
// events and the admin dashboard subscribes to refresh its view state.
package eventengine

import (
	"fmt"
	"log"
	"sync"

	"github.com/eng-by-sjb/alutech-storefront-backend/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []*event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

type eventEngine struct {
	*EventEngineConfig
	wg            sync.WaitGroup
	eventEngineCh chan *event.Event                // what the engine listens on for published events
	events        map[event.EventName]*subscribers // registered events and who subscribed to each
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil {
		log.Fatalln("'eventEngineConfig' can not be nil")
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		log.Fatalln("either DoneCh or InternalSrvWG is nil")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 10),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	log.Println("event engine is listening...")

	for { // read until the e.DoneCh is signalled.
		select {
		case <-e.DoneCh:
			e.wg.Wait()
			close(e.eventEngineCh)
			log.Println("event engine is shutting down")

			// drain whatever was published before the shutdown signal
			for pending := range e.eventEngineCh {
				e.broadcaster(pending)
			}

			e.shutdownSubscribersAddressCh()
			return

		case newEvent, isOpened := <-e.eventEngineCh:
			if !isOpened {
				log.Println("eventEngineCh is closed")
				return
			}

			e.broadcaster(newEvent)
		}
	}
}

func (e *eventEngine) broadcaster(newEvent *event.Event) {
	subs, exists := e.events[newEvent.Name]
	if !exists {
		log.Printf(
			"event %v not found. check your event handler",
			newEvent.Name,
		)
		return
	}

	const maxPartitionSize = 4
	partitionSize := (len(subs.addressChs) / 2) + 1

	if partitionSize < maxPartitionSize {
		for i, addressCh := range subs.addressChs {
			if addressCh == nil {
				log.Printf(
					"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
					subs.names[i],
				)
				continue
			}

			addressCh <- newEvent.Payload
		}
		return
	}

	// large fan-outs get split across a helper goroutine so one slow
	// subscriber half does not stall the other
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for i, addressCh := range subs.addressChs[:partitionSize] {
			if addressCh == nil {
				log.Printf(
					"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
					subs.names[i],
				)
				continue
			}
			addressCh <- newEvent.Payload
		}
	}()

	for i, addressCh := range subs.addressChs[partitionSize:] {
		if addressCh == nil {
			log.Printf(
				"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
				subs.names[partitionSize+i],
			)
			continue
		}
		addressCh <- newEvent.Payload
	}
}

// RegisterEvents adds all events a publisher can publish to the engine.
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			log.Println("event already exists")
			continue
		}

		e.events[eventName] = &subscribers{}
	}

	log.Println("registering event:", eventNames)
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	if _, ok := e.events[toEventName]; !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service has called 'RegisterEvents' for it or check the event name",
			toEventName,
		)
	}

	e.events[toEventName] = &subscribers{
		names:      append(e.events[toEventName].names, &newSubscriber.Name),
		addressChs: append(e.events[toEventName].addressChs, newSubscriber.AddressCh),
	}

	return nil
}

func (e *eventEngine) Publish(newEvent *event.Event) error {
	if _, exists := e.events[newEvent.Name]; !exists {
		return fmt.Errorf(
			"event %v not found. check the service which is to publish the event to make sure they called 'RegisterEvents()'",
			newEvent.Name,
		)
	}

	e.eventEngineCh <- newEvent

	return nil
}

func (e *eventEngine) shutdownSubscribersAddressCh() {
	for _, subs := range e.events {
		for _, addressCh := range subs.addressChs {
			if addressCh == nil {
				continue
			}
			close(addressCh)
		}
	}

	log.Println("subscribers addressChs shut down")
}
