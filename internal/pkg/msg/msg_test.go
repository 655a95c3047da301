package msg

import (
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func TestSubscribe(t *testing.T) {
	pidPub, err := uuid.NewUUID()
	assert.NilError(t, err)

	pidSub1, err := uuid.NewUUID()
	assert.NilError(t, err)

	pidSub2, err := uuid.NewUUID()
	assert.NilError(t, err)

	pubsub := NewPublisher(pidPub)
	ch1, err := pubsub.Subscribe(pidSub1, Result)
	assert.NilError(t, err)
	ch2, err := pubsub.Subscribe(pidSub2, Result)
	assert.NilError(t, err)

	pubsub.Publish(Result, 42.0)

	incoming := <-ch1
	assert.Equal(t, incoming.Payload(), 42.0, "first subscriber did not receive the published value")
	assert.Equal(t, incoming.PID(), pidPub)
	assert.Equal(t, incoming.Topic(), Result)

	incoming = <-ch2
	assert.Equal(t, incoming.Payload(), 42.0, "second subscriber did not receive the published value")
}

func TestSubscribeTwiceRejected(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	_, err := pubsub.Subscribe(pidSub, Result)
	assert.NilError(t, err)
	_, err = pubsub.Subscribe(pidSub, Result)
	assert.ErrorContains(t, err, "already subscribed")
}

func TestTopicsAreIndependent(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	ch, err := pubsub.Subscribe(pidSub, Config)
	assert.NilError(t, err)

	pubsub.Publish(Result, 1.0)
	select {
	case m := <-ch:
		t.Fatalf("config subscriber received %v published on result", m.Payload())
	default:
	}

	pubsub.Publish(Config, 2.0)
	incoming := <-ch
	assert.Equal(t, incoming.Payload(), 2.0)
}

func TestUnsubscribe(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	ch, err := pubsub.Subscribe(pidSub, Result)
	assert.NilError(t, err)

	pubsub.Unsubscribe(pidSub)
	_, ok := <-ch
	assert.Assert(t, !ok, "channel should be closed after unsubscribe")

	pubsub.Publish(Result, 1.0)
}

func TestPublishDoesNotBlock(t *testing.T) {
	pidPub, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	pubsub := NewPublisher(pidPub)
	_, err := pubsub.Subscribe(pidSub, Result)
	assert.NilError(t, err)

	// nobody reads, the buffer fills and further publishes drop
	for i := 0; i < 100; i++ {
		pubsub.Publish(Result, float64(i))
	}
}

func TestForwardKeepsSender(t *testing.T) {
	pidOrigin, _ := uuid.NewUUID()
	pidRelay, _ := uuid.NewUUID()
	pidSub, _ := uuid.NewUUID()

	relay := NewPublisher(pidRelay)
	ch, err := relay.Subscribe(pidSub, Result)
	assert.NilError(t, err)

	relay.Forward(New(pidOrigin, Result, 7.0))
	incoming := <-ch
	assert.Equal(t, incoming.PID(), pidOrigin)
	assert.Equal(t, incoming.Payload(), 7.0)
}
