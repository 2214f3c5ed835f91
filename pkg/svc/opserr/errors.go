package opserr

import (
	"errors"
)

// Sentinel errors.
var (
	// ErrClusterUnavailable is returned when the Kubernetes API cannot be reached or times out.
	ErrClusterUnavailable = errors.New("cluster unavailable")
	// ErrClusterForbidden is returned when RBAC denies the requested operation.
	ErrClusterForbidden = errors.New("cluster access forbidden")
	// ErrResourceNotFound is returned when the target object no longer exists.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrAlreadyPending is returned when a remediation for the same resource is in flight.
	ErrAlreadyPending = errors.New("remediation already pending")
	// ErrUnauthorized is returned when the caller is not in the allowlist.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is returned for malformed command payloads.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kind is the stable name of an error class, used as a metric label.
type Kind string

// Error kinds.
const (
	KindNone               Kind = ""
	KindClusterUnavailable Kind = "ClusterUnavailable"
	KindClusterForbidden   Kind = "ClusterForbidden"
	KindResourceNotFound   Kind = "ResourceNotFound"
	KindAlreadyPending     Kind = "AlreadyPending"
	KindUnauthorized       Kind = "Unauthorized"
	KindInvalidArgument    Kind = "InvalidArgument"
	KindRateLimited        Kind = "RateLimited"
	KindInternal           Kind = "Internal"
)

// KindOf classifies err. Errors outside the taxonomy are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrClusterUnavailable):
		return KindClusterUnavailable
	case errors.Is(err, ErrClusterForbidden):
		return KindClusterForbidden
	case errors.Is(err, ErrResourceNotFound):
		return KindResourceNotFound
	case errors.Is(err, ErrAlreadyPending):
		return KindAlreadyPending
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}

// Retryable reports whether the caller may retry the failed operation as-is.
func Retryable(err error) bool {
	return errors.Is(err, ErrClusterUnavailable)
}
