package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/api"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/resources"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) AddResource(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	uac, ok := identity.FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	apiVersion := metadataValue(ctx, common.APIVersionHeaderName)
	view, err := s.resources.Add(ctx, uac, req.AsMap(), apiVersion)
	if err != nil {
		return nil, s.errorStatus(ctx, err)
	}

	out, err := toStruct(api.NewAddResourceResponse(view))
	if err != nil {
		s.logger.Error(ctx, "encode response", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

// errorStatus maps validation failures to InvalidArgument with one
// BadRequest field violation per code. Anything else is Internal and its
// cause is only logged.
func (s *GRPCServer) errorStatus(ctx context.Context, err error) error {
	var verr *resources.ValidationError
	if !errors.As(err, &verr) {
		s.logger.Error(ctx, "add resource failed", "error", err)
		return status.Error(codes.Internal, api.MessageInternalError)
	}

	br := &errdetails.BadRequest{}
	for _, path := range verr.Paths() {
		for _, code := range verr.Fields[path] {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       path,
				Description: code,
			})
		}
	}

	st := status.New(codes.InvalidArgument, api.MessageValidationError)
	if detailed, derr := st.WithDetails(br); derr == nil {
		return detailed.Err()
	}
	return st.Err()
}

// toStruct converts a JSON-tagged value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}
