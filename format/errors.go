package format

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrUnsupportedNode is returned for a node variant the generator
	// cannot render, including nil nodes where a node is required.
	ErrUnsupportedNode = errors.New("unsupported node")

	// ErrMissingPayload is returned when a node lacks data it cannot be
	// rendered without, such as a comment statement with no comment.
	ErrMissingPayload = errors.New("missing required payload")

	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrSinkBound is returned when a generation call starts while another
	// call on the same generator still holds its output sink.
	ErrSinkBound = errors.New("output sink already bound")
)

func unsupportedNode(node any) error {
	return errors.Wrapf(ErrUnsupportedNode, "%T", node)
}

func missingPayload(what string, node any) error {
	return errors.Wrapf(ErrMissingPayload, "%s in %T", what, node)
}
