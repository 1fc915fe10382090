package graph

import "fmt"

const maxPropertyValueLength = 20

// VertexString renders a vertex as v[id].
func VertexString(v Vertex) string {
	return fmt.Sprintf("v[%v]", v.ID())
}

// EdgeString renders an edge as e[id][outID-label->inID].
func EdgeString(e Edge) string {
	return fmt.Sprintf("e[%v][%v-%s->%v]", e.ID(), e.OutVertex().ID(), e.Label(), e.InVertex().ID())
}

// PropertyString renders a property as p[key->value] with long values truncated, or p[empty].
func PropertyString(p Property) string {
	if !p.IsPresent() {
		return "p[empty]"
	}

	value := fmt.Sprint(p.Value())
	if runes := []rune(value); len(runes) > maxPropertyValueLength {
		value = string(runes[:maxPropertyValueLength])
	}

	return fmt.Sprintf("p[%s->%s]", p.Key(), value)
}
