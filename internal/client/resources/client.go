// Package resources is the CLI side of the AddResource call: it shapes the
// request payload for the configured API version and maps gRPC failures back
// into Go errors.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	pb "github.com/dmitrijs2005/vaultkeeper/internal/proto"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/api"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request is what the user typed. Secret is the armored OpenPGP message
// encrypted for the user's own key.
type Request struct {
	Name        string
	Username    string
	URI         string
	Description string
	Secret      string
}

// Payload shapes req for apiVersion. "v1" produces the legacy
// {Resource:{...}, Secret:[{data}]} document, anything else the canonical one.
func Payload(req Request, apiVersion string) map[string]any {
	fields := map[string]any{"name": req.Name}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.URI != "" {
		fields["uri"] = req.URI
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	secret := map[string]any{"data": req.Secret}

	if apiVersion == "v1" {
		return map[string]any{
			"Resource": fields,
			"Secret":   []any{secret},
		}
	}
	fields["secrets"] = []any{secret}
	return fields
}

type GRPCClient struct {
	conn        *grpc.ClientConn
	client      pb.ResourceServiceClient
	accessToken string
	apiVersion  string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) metadataInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withAccessToken(ctx, c.accessToken)
	ctx = metadata.AppendToOutgoingContext(ctx, common.APIVersionHeaderName, c.apiVersion)
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily; extra options are appended after
// the defaults, which lets tests swap in a bufconn dialer.
func NewGRPCClient(endpointURL, accessToken, apiVersion string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{accessToken: accessToken, apiVersion: apiVersion}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.metadataInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewResourceServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) AddResource(ctx context.Context, req Request) (*api.AddResourceResponse, error) {
	in, err := structpb.NewStruct(Payload(req, c.apiVersion))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	out, err := c.client.AddResource(ctx, in)
	if err != nil {
		return nil, mapError(err)
	}

	raw, err := json.Marshal(out.AsMap())
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	var resp api.AddResourceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.InvalidArgument:
		fe := &FieldErrors{Message: st.Message(), Fields: map[string][]string{}}
		for _, d := range st.Details() {
			br, ok := d.(*errdetails.BadRequest)
			if !ok {
				continue
			}
			for _, v := range br.GetFieldViolations() {
				fe.Fields[v.GetField()] = append(fe.Fields[v.GetField()], v.GetDescription())
			}
		}
		return fe
	default:
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
}
