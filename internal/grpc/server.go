// Package igrpc serves the internal social graph API to sibling services.
// Messages are google.protobuf.Struct so callers need no generated stubs.
package igrpc

import (
	"context"
	"errors"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"social-service/internal/apperr"
	"social-service/internal/observability"
)

const (
	ServiceName         = "social.v1.SocialInternal"
	AreFriendsMethod    = "/" + ServiceName + "/AreFriends"
	ListFriendIDsMethod = "/" + ServiceName + "/ListFriendIDs"
)

// FriendGraph is the read side of the friendship edge set.
type FriendGraph interface {
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}

type SocialInternalServer interface {
	AreFriends(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListFriendIDs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var socialInternalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SocialInternalServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AreFriends", Handler: unaryHandler(AreFriendsMethod, SocialInternalServer.AreFriends)},
		{MethodName: "ListFriendIDs", Handler: unaryHandler(ListFriendIDsMethod, SocialInternalServer.ListFriendIDs)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "social/v1/social_internal.proto",
}

func unaryHandler(fullMethod string, call func(SocialInternalServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SocialInternalServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SocialInternalServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterSocialInternalServer(s grpc.ServiceRegistrar, srv SocialInternalServer) {
	s.RegisterService(&socialInternalServiceDesc, srv)
}

type SocialGRPCServer struct {
	friends FriendGraph
}

func NewSocialGRPCServer(friends FriendGraph) *SocialGRPCServer {
	return &SocialGRPCServer{friends: friends}
}

// NewServer builds a gRPC server with the social service and metrics interceptor registered.
func NewServer(friends FriendGraph) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(metricsInterceptor))
	RegisterSocialInternalServer(srv, NewSocialGRPCServer(friends))
	return srv
}

func StartGRPCServer(ctx context.Context, addr string, friends FriendGraph) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := NewServer(friends)

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	return srv, nil
}

func metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	observability.RecordGRPCRequest(info.FullMethod, status.Code(err).String())
	return resp, err
}

func (s *SocialGRPCServer) AreFriends(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := stringField(req, "user_id")
	if err != nil {
		return nil, err
	}
	friendID, err := stringField(req, "friend_id")
	if err != nil {
		return nil, err
	}

	friends, err := s.friends.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, apperr.GRPCStatus(err)
	}
	return structpb.NewStruct(map[string]any{"are_friends": friends})
}

func (s *SocialGRPCServer) ListFriendIDs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := stringField(req, "user_id")
	if err != nil {
		return nil, err
	}

	ids, err := s.friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, apperr.GRPCStatus(err)
	}
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	return structpb.NewStruct(map[string]any{"friend_ids": values})
}

func stringField(req *structpb.Struct, name string) (string, error) {
	v := req.GetFields()[name].GetStringValue()
	if v == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return v, nil
}
