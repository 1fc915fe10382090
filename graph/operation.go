package graph

// Operation names one category of interceptable graph operation.
type Operation string

const (
	OpAddVertex      Operation = "add_vertex"
	OpAddEdge        Operation = "add_edge"
	OpRemoveVertex   Operation = "remove_vertex"
	OpRemoveEdge     Operation = "remove_edge"
	OpGetProperty    Operation = "get_property"
	OpSetProperty    Operation = "set_property"
	OpRemoveProperty Operation = "remove_property"
	OpVertexByID     Operation = "vertex_by_id"
	OpEdgeByID       Operation = "edge_by_id"
)

// EnvOperation is the environment key under which implementations publish the Operation
// being executed to strategies.
const EnvOperation = "operation"

// IsMutation reports whether the operation changes the graph.
func (o Operation) IsMutation() bool {
	switch o {
	case OpAddVertex, OpAddEdge, OpRemoveVertex, OpRemoveEdge, OpSetProperty, OpRemoveProperty:
		return true
	default:
		return false
	}
}

// Operations returns all interceptable operations.
func Operations() []Operation {
	return []Operation{
		OpAddVertex,
		OpAddEdge,
		OpRemoveVertex,
		OpRemoveEdge,
		OpGetProperty,
		OpSetProperty,
		OpRemoveProperty,
		OpVertexByID,
		OpEdgeByID,
	}
}
