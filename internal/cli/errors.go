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

type loginRequiredError struct {
	op string
}

func (e loginRequiredError) Error() string {
	return fmt.Sprintf("%s requires a remote store; run `checkin auth configure` and `checkin auth login`", e.op)
}

func errLoginRequired(op string) error {
	return loginRequiredError{op: op}
}
