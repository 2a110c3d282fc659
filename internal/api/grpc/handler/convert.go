package handler

import (
	"math"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// maxExactInt is the largest integer a JSON number carries without loss.
const maxExactInt = 1 << 53

// fields reads typed values out of a request struct. Absent keys and JSON
// null read as unset; a value of the wrong kind is an InvalidArgument error.
type fields map[string]*structpb.Value

func fieldsOf(s *structpb.Struct) fields {
	return fields(s.GetFields())
}

func (f fields) get(key string) (*structpb.Value, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func (f fields) optString(key string) (*string, error) {
	v, ok := f.get(key)
	if !ok {
		return nil, nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return nil, status.Errorf(codes.InvalidArgument, "field %q must be a string", key)
	}
	return &s.StringValue, nil
}

func (f fields) str(key string) (string, error) {
	s, err := f.optString(key)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

func (f fields) boolean(key string) (bool, error) {
	v, ok := f.get(key)
	if !ok {
		return false, nil
	}
	b, isBool := v.GetKind().(*structpb.Value_BoolValue)
	if !isBool {
		return false, status.Errorf(codes.InvalidArgument, "field %q must be a boolean", key)
	}
	return b.BoolValue, nil
}

// optID reads a positive integer id. The boolean reports presence.
func (f fields) optID(key string) (int64, bool, error) {
	v, ok := f.get(key)
	if !ok {
		return 0, false, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, false, status.Errorf(codes.InvalidArgument, "field %q must be a number", key)
	}
	x := n.NumberValue
	if x != math.Trunc(x) || x < 1 || x > maxExactInt {
		return 0, false, status.Errorf(codes.InvalidArgument, "field %q must be a positive integer", key)
	}
	return int64(x), true, nil
}

func (f fields) id(key string) (int64, error) {
	id, ok, err := f.optID(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "field %q is required", key)
	}
	return id, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func accountToStruct(a model.AccountView) (*structpb.Struct, error) {
	var updated any
	if a.UpdatedAt != nil {
		updated = formatTime(*a.UpdatedAt)
	}
	return structpb.NewStruct(map[string]any{
		"id":         a.ID,
		"title":      a.Title,
		"firstName":  a.FirstName,
		"lastName":   a.LastName,
		"email":      a.Email,
		"role":       string(a.Role),
		"created":    formatTime(a.CreatedAt),
		"updated":    updated,
		"isVerified": a.IsVerified,
	})
}

func principalToMap(p model.Principal) map[string]any {
	return map[string]any{
		"id":        p.ID,
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"username":  p.Username,
		"role":      string(p.Role),
		"created":   formatTime(p.CreatedAt),
	}
}

func principalToStruct(p model.Principal) (*structpb.Struct, error) {
	return structpb.NewStruct(principalToMap(p))
}

func sessionToStruct(s model.Session) (*structpb.Struct, error) {
	m := principalToMap(s.Principal)
	m["token"] = s.Token
	return structpb.NewStruct(m)
}

func principalsToStruct(ps []model.Principal) (*structpb.Struct, error) {
	list := make([]any, 0, len(ps))
	for _, p := range ps {
		list = append(list, principalToMap(p))
	}
	return structpb.NewStruct(map[string]any{"principals": list})
}
