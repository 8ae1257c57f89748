package proto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	pb "relay/pkg/proto"
)

func TestDescriptor_Greeter(t *testing.T) {
	svc := pb.File_helloworld_proto.Services().ByName("Greeter")
	require.NotNil(t, svc)
	assert.Equal(t, pb.Greeter_ServiceDesc.ServiceName, string(svc.FullName()))

	chat := svc.Methods().ByName("Chat")
	require.NotNil(t, chat)
	assert.True(t, chat.IsStreamingClient())
	assert.True(t, chat.IsStreamingServer())
	assert.Equal(t, "helloworld.ChatRequest", string(chat.Input().FullName()))

	mail := svc.Methods().ByName("DirectMail")
	require.NotNil(t, mail)
	assert.False(t, mail.IsStreamingClient())
	assert.Equal(t, "helloworld.DirectMailReply", string(mail.Output().FullName()))
}

// ChatReply keeps message as field 1 so replies decode with a schema that
// only knows the message field.
func TestChatReply_MessageIsFieldOne(t *testing.T) {
	data, err := proto.Marshal(&pb.ChatReply{Name: "alice", Message: "Reply: hi"})
	require.NoError(t, err)

	var legacy pb.HelloReply
	require.NoError(t, proto.Unmarshal(data, &legacy))
	assert.Equal(t, "Reply: hi", legacy.GetMessage())
}

func TestChatRequest_NameOptional(t *testing.T) {
	data, err := proto.Marshal(&pb.ChatRequest{Message: "only text"})
	require.NoError(t, err)

	var req pb.ChatRequest
	require.NoError(t, proto.Unmarshal(data, &req))
	assert.Empty(t, req.GetName())
	assert.Equal(t, "only text", req.GetMessage())
}

func TestGetters_NilSafe(t *testing.T) {
	var req *pb.ChatRequest
	assert.Empty(t, req.GetName())
	assert.Empty(t, req.GetMessage())

	var reply *pb.DirectMailReply
	assert.Empty(t, reply.GetMessage())
}
