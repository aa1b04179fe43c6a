package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeInboundAuthenticate(t *testing.T) {
	in, cerr := DecodeInbound([]byte(`{"event":"authenticate","payload":{"email":"c@x.com"}}`))
	require.Nil(t, cerr)
	require.NotNil(t, in.Authenticate)
	require.Equal(t, "c@x.com", in.Authenticate.Email)
	require.Empty(t, in.Authenticate.Token)
}

func TestDecodeInboundSendMessage(t *testing.T) {
	in, cerr := DecodeInbound([]byte(`{"event":"send_message","payload":{"toUserId":7,"message":"Hi","type":"text"}}`))
	require.Nil(t, cerr)
	require.NotNil(t, in.Send)
	require.Equal(t, int64(7), in.Send.ToUserID)
	require.Equal(t, "Hi", in.Send.Message)
}

func TestDecodeInboundMarkRead(t *testing.T) {
	in, cerr := DecodeInbound([]byte(`{"event":"mark_messages_read","payload":{"fromUserId":4}}`))
	require.Nil(t, cerr)
	require.NotNil(t, in.MarkRead)
	require.Equal(t, int64(4), in.MarkRead.FromUserID)
}

func TestDecodeInboundAllocation(t *testing.T) {
	in, cerr := DecodeInbound([]byte(`{"event":"supervisor_allocated","payload":{"clientId":5,"supervisorId":9}}`))
	require.Nil(t, cerr)
	require.NotNil(t, in.Allocation)
	require.Equal(t, int64(5), in.Allocation.ClientID)
	require.Equal(t, int64(9), in.Allocation.SupervisorID)
}

func TestDecodeInboundRejectsUnknownEvent(t *testing.T) {
	_, cerr := DecodeInbound([]byte(`{"event":"drop_tables","payload":{}}`))
	require.NotNil(t, cerr)
}

func TestDecodeInboundRejectsMalformedJSON(t *testing.T) {
	_, cerr := DecodeInbound([]byte(`{"event":"authenticate",`))
	require.NotNil(t, cerr)
}

func TestDecodeInboundRejectsMissingPayload(t *testing.T) {
	_, cerr := DecodeInbound([]byte(`{"event":"send_message"}`))
	require.NotNil(t, cerr)
}

func TestDecodeInboundRejectsWrongPayloadShape(t *testing.T) {
	_, cerr := DecodeInbound([]byte(`{"event":"send_message","payload":{"toUserId":"seven"}}`))
	require.NotNil(t, cerr)
}

func TestDispatchRoutesToHandlers(t *testing.T) {
	g, st, _ := newTestGateway()
	c := g.Accept(nil)

	in, cerr := DecodeInbound([]byte(`{"event":"authenticate","payload":{"email":"chetna@sehra.in"}}`))
	require.Nil(t, cerr)
	g.Dispatch(c, in)
	expectEvent(t, c, EventAuthenticated, nil)
	expectEvent(t, c, EventUnreadCount, nil)

	in, cerr = DecodeInbound([]byte(`{"event":"send_message","payload":{"toUserId":2,"message":"Hi"}}`))
	require.Nil(t, cerr)
	g.Dispatch(c, in)
	expectEvent(t, c, EventMessageSent, nil)

	require.Len(t, st.stored(), 1)
}
