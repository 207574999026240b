package scanner

import "errors"

var (
	// ErrDescriptorNotLoadable means the descriptor file is missing or is not a
	// decodable, self-contained descriptor set.
	ErrDescriptorNotLoadable = errors.New("descriptor not loadable")
	// ErrServiceNotFound means no service with the requested name exists.
	ErrServiceNotFound = errors.New("service not found")
	// ErrInvalidServiceShape means the name resolves to something without methods.
	ErrInvalidServiceShape = errors.New("invalid service shape")
)

const compileHint = "compile the proto sources first (protosmith compile) and pass the generated descriptor set"
