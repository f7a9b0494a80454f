// Package rpc holds the gRPC plumbing shared by every service: a protobuf
// codec for plain Go message structs, method descriptors and client dialing.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// CodecName is the content-subtype every client and server speaks.
const CodecName = "structpb"

// structCodec puts Go message structs on the wire as a protobuf
// google.protobuf.Struct built from their JSON field names. Numbers travel as
// doubles, so integers stay exact up to 2^53. Real proto messages are passed
// through unchanged.
type structCodec struct{}

func (structCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	js, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(js, s); err != nil {
		return nil, fmt.Errorf("%T is not an object message: %w", v, err)
	}
	return proto.Marshal(s)
}

func (structCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return err
	}
	js, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(js, v)
}

func (structCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(structCodec{})
}
