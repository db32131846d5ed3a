package highlight

// Sequential computes the guided-tour highlight: the prefix ids[0..index]
// plus, for each consecutive pair in the prefix, the edge directly
// connecting them when one exists. A missing edge is silently omitted.
// The index is clamped to the id list.
func (e *Engine) Sequential(ids []string, index int) Result {
	result := emptyResult()
	if len(ids) == 0 || index < 0 {
		return result
	}
	if index >= len(ids) {
		index = len(ids) - 1
	}

	for i := 0; i <= index; i++ {
		result.Nodes[ids[i]] = struct{}{}
		if i == 0 {
			continue
		}
		if edgeID, ok := e.index.Between(ids[i-1], ids[i]); ok {
			result.Edges[edgeID] = struct{}{}
		}
	}

	return result
}
