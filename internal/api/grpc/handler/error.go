package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// errInvalidCredentials is returned for every failed authentication.
var errInvalidCredentials = status.Error(codes.Unauthenticated, "Username or password is incorrect")

func handleError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.AlreadyExists, model.ErrConflict.Error())
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrInvalidToken):
		return status.Error(codes.InvalidArgument, model.ErrInvalidToken.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
