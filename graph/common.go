package graph

import "errors"

// Argument errors.
var (
	ErrNilGraph    = errors.New("argument can not be nil: graph")
	ErrNilCurrent  = errors.New("argument can not be nil: current")
	ErrNilStrategy = errors.New("argument can not be nil: strategy")
	ErrNilHolder   = errors.New("argument can not be nil: strategy holder")
	ErrNilVertex   = errors.New("argument can not be nil: vertex")
)

// Structure errors.
var (
	ErrEdgeLabelEmpty      = errors.New("edge label can not be empty")
	ErrPropertyKeyEmpty    = errors.New("property key can not be empty")
	ErrPropertyValueNil    = errors.New("property value can not be nil")
	ErrPropertyNotFound    = errors.New("property does not exist")
	ErrPropertyValueType   = errors.New("property value has an unexpected type")
	ErrOddKeyValues        = errors.New("key/values must be provided in even numbers")
	ErrKeyValueKeyNotText  = errors.New("key/values keys must be strings")
	ErrElementRemoved      = errors.New("element has already been removed")
	ErrVertexNotFound      = errors.New("vertex does not exist")
	ErrEdgeNotFound        = errors.New("edge does not exist")
	ErrForeignVertex       = errors.New("vertex belongs to a different graph")
	ErrUnsupportedElement  = errors.New("element type is not supported by this graph")
	ErrEnvironmentReadOnly = errors.New("strategy context environment is read-only")
)

// Strategy errors.
var (
	ErrNoExecutionScope = errors.New("context carries no execution scope")
	ErrReadOnly         = errors.New("operation is not supported on a read-only graph")
	ErrIDKeyImmutable   = errors.New("id property can not be modified")
)
