package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type guardError struct {
	op     string
	reason string
}

func (e guardError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.op, e.reason)
}

func errGuard(op, reason string) error {
	return guardError{op: op, reason: reason}
}
