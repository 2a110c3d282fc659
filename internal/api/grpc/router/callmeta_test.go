package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
)

func fakeCallMeta(fullMethod string) interceptors.CallMeta {
	return interceptors.NewServerCallMeta(fullMethod, nil, nil)
}
