package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestInMemory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewInMemory(4)
	require.NoError(t, q.Publish(ctx, Message{Type: TypeMoodRecorded, Body: []byte("7")}))

	ch, err := q.Consume(ctx)
	require.NoError(t, err)
	msg := receive(t, ch)
	assert.Equal(t, TypeMoodRecorded, msg.Type)
	assert.Equal(t, "7", string(msg.Body))

	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestRedisQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewRedisQueue(client, "")
	q.Wait = time.Second
	require.NoError(t, q.Publish(ctx, Message{Type: TypeMoodRecorded, Body: []byte("1")}))
	require.NoError(t, q.Publish(ctx, Message{Type: TypeMoodRecorded, Body: []byte("a|b")}))
	assert.True(t, mr.Exists(DefaultKey))

	ch, err := q.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", string(receive(t, ch).Body))
	assert.Equal(t, "a|b", string(receive(t, ch).Body))
}

func TestDeserialize(t *testing.T) {
	assert.Equal(t, Message{Type: "x", Body: []byte("y|z")}, deserialize("x|y|z"))
	assert.Equal(t, Message{Body: []byte("raw")}, deserialize("raw"))
	assert.Equal(t, "mood.recorded|3", serialize(Message{Type: TypeMoodRecorded, Body: []byte("3")}))
}
