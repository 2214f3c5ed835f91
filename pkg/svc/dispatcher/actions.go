package dispatcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
)

const actionSeparator = ":"

var errEmptyAction = errors.New("empty action id")

// EncodeAction builds the id the transport hands back for a button press.
func EncodeAction(command, payload string) string {
	return command + actionSeparator + payload
}

// ParseAction splits an action id into its command and payload.
func ParseAction(id string) (string, string, error) {
	command, payload, _ := strings.Cut(id, actionSeparator)
	if command == "" {
		return "", "", fmt.Errorf("%w: %w", opserr.ErrInvalidArgument, errEmptyAction)
	}

	return command, payload, nil
}

// ParseResourceID parses a "namespace/name" payload.
func ParseResourceID(payload string) (ops.ResourceID, error) {
	namespace, name, ok := strings.Cut(strings.TrimSpace(payload), "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return ops.ResourceID{}, fmt.Errorf(
			"%w: expected namespace/name, got %q",
			opserr.ErrInvalidArgument,
			payload,
		)
	}

	return ops.ResourceID{Namespace: namespace, Name: name}, nil
}
