// Package client talks to the blindcalc evaluator.
//
// # Overview
//
// The package provides a transport-agnostic API contract (see the Client
// interface) and a concrete gRPC implementation (see GRPCClient) that
// manages a connection, injects the access token via an interceptor,
// converts wire strings into validated keys, ciphertexts and tokens, and
// maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors that callers can
// match with errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidArgument.
// NotFound and FailedPrecondition map to common.ErrorNotFound and
// common.ErrEmptySession.
package client
