package grpc

import (
	"encoding/json"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// jsonCodec is a gRPC codec that uses JSON encoding.
// This allows serving and calling the prediction service without
// proto-generated types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

// init registers the JSON codec with the gRPC encoding registry so the
// server accepts application/grpc+json requests.
func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption forces JSON encoding on the wire for client calls.
func CallOption() grpclib.CallOption {
	return grpclib.ForceCodecCallOption{Codec: jsonCodec{}}
}
