package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopConn struct{ closed int }

func (c *nopConn) WriteJSON(interface{}) error { return nil }
func (c *nopConn) Close() error               { c.closed++; return nil }

func TestChatSession_Busy(t *testing.T) {
	s := NewChatSession("s1", "127.0.0.1", &nopConn{})

	require.True(t, s.TryBegin())
	assert.True(t, s.Busy())
	assert.False(t, s.TryBegin())

	s.End()
	assert.False(t, s.Busy())
	assert.True(t, s.TryBegin())
}

func TestChatSession_TranscriptIsCopy(t *testing.T) {
	s := NewChatSession("s1", "", &nopConn{})
	s.Append(Message{ID: "1", Text: "hello", Sender: SenderUser})

	got := s.Transcript()
	got[0].Text = "changed"
	assert.Equal(t, "hello", s.Transcript()[0].Text)
}

func TestChatSession_Heartbeat(t *testing.T) {
	s := NewChatSession("s1", "", &nopConn{})
	assert.Less(t, s.SinceHeartbeat(time.Now()), time.Second)

	for i := 1; i <= 3; i++ {
		assert.Equal(t, i, s.IncrementMissedBeats())
	}
	assert.True(t, s.ShouldBeCleaned())

	s.UpdateHeartbeat()
	assert.False(t, s.ShouldBeCleaned())
}

func TestChatSession_CloseOnce(t *testing.T) {
	conn := &nopConn{}
	s := NewChatSession("s1", "", conn)

	s.Close()
	s.Close()
	assert.Equal(t, 1, conn.closed)

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestFrames(t *testing.T) {
	f := TypingFrame(true)
	require.NotNil(t, f.Typing)
	assert.Equal(t, FrameTyping, f.Type)
	assert.True(t, *f.Typing)

	m := MessageFrame(Message{ID: "x"})
	assert.Equal(t, "x", m.Message.ID)

	assert.Equal(t, "busy", ErrorFrame("busy").Error)
}
