package msg

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Topic routes published messages to interested subscribers
type Topic int

const (
	Result Topic = iota
	Config
)

func (t Topic) String() string {
	switch t {
	case Result:
		return "result"
	case Config:
		return "config"
	default:
		return "unknown"
	}
}

// Publisher is an interface for objects that broadcast events by topic
type Publisher interface {
	Subscribe(uuid.UUID, Topic) (<-chan Msg, error)
	Unsubscribe(uuid.UUID)
}

// Msg carries a payload from a sender on a topic
type Msg struct {
	sender  uuid.UUID
	topic   Topic
	payload interface{}
}

// New is the Msg factory function
func New(sender uuid.UUID, topic Topic, payload interface{}) Msg {
	return Msg{sender, topic, payload}
}

// PID returns the sender's PID
func (v Msg) PID() uuid.UUID {
	return v.sender
}

// Topic returns the message topic
func (v Msg) Topic() Topic {
	return v.topic
}

// Payload returns the message data
func (v Msg) Payload() interface{} {
	return v.payload
}

// PubSub fans messages out to per-topic subscribers. Subscribers that
// fall behind drop messages instead of blocking the publisher.
type PubSub struct {
	mux  *sync.Mutex
	pid  uuid.UUID
	subs map[Topic]map[uuid.UUID]chan Msg
}

// NewPublisher returns a PubSub broadcasting under the sender pid
func NewPublisher(pid uuid.UUID) *PubSub {
	return &PubSub{&sync.Mutex{}, pid, make(map[Topic]map[uuid.UUID]chan Msg)}
}

// PID returns the publisher's pid
func (p *PubSub) PID() uuid.UUID {
	return p.pid
}

// Subscribe returns a channel on which the specified topic is broadcast
func (p *PubSub) Subscribe(pid uuid.UUID, topic Topic) (<-chan Msg, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.subs[topic]; !ok {
		p.subs[topic] = make(map[uuid.UUID]chan Msg)
	}
	if _, ok := p.subs[topic][pid]; ok {
		return nil, fmt.Errorf("pid %v already subscribed to topic %v.", pid, topic)
	}
	ch := make(chan Msg, 8)
	p.subs[topic][pid] = ch
	return ch, nil
}

// Unsubscribe pid from all topic broadcasts
func (p *PubSub) Unsubscribe(pid uuid.UUID) {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, subs := range p.subs {
		if ch, ok := subs[pid]; ok {
			close(ch)
			delete(subs, pid)
		}
	}
}

// Publish broadcasts the payload to all subscribers of the topic
func (p *PubSub) Publish(topic Topic, payload interface{}) {
	p.Forward(New(p.pid, topic, payload))
}

// Forward rebroadcasts an existing message without rewrapping it
func (p *PubSub) Forward(m Msg) {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, ch := range p.subs[m.Topic()] {
		select {
		case ch <- m:
		default:
		}
	}
}

// Stop closes all subscription channels
func (p *PubSub) Stop() {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, subs := range p.subs {
		for pid, ch := range subs {
			close(ch)
			delete(subs, pid)
		}
	}
}
