package bytecode

// Simplify removes empty blocks from the reachable graph by pointing every
// successor and branch target past them. A chain of empty blocks that loops
// back on itself collapses onto its lowest-numbered member, which becomes a
// self loop.
func Simplify(m *Method) {
	if !m.HasBlock(m.Entry) {
		return
	}

	reachable := m.Reachable()
	resolved := make(map[BlockID]BlockID)
	resolve := func(id BlockID) BlockID {
		if id == NoBlock {
			return NoBlock
		}
		if ret, ok := resolved[id]; ok {
			return ret
		}
		ret := m.skipEmpty(id)
		resolved[id] = ret
		return ret
	}

	// compute every mapping on the original graph before rewriting
	for _, id := range reachable {
		resolve(id)
		block := &m.Blocks[id]
		resolve(block.Next)
		for _, inst := range block.Code {
			if inst.Op.IsBranch() {
				resolve(inst.Target)
			}
		}
	}

	for _, id := range reachable {
		block := &m.Blocks[id]
		block.Next = resolve(block.Next)
		for i := range block.Code {
			if block.Code[i].Op.IsBranch() {
				block.Code[i].Target = resolve(block.Code[i].Target)
			}
		}
	}
	m.Entry = resolve(m.Entry)
}

func (m *Method) skipEmpty(id BlockID) BlockID {
	visited := make(map[BlockID]int)
	var path []BlockID
	for {
		block := m.Block(id)
		if len(block.Code) > 0 || block.Next == NoBlock {
			return id
		}
		if start, ok := visited[id]; ok {
			cycle := path[start:]
			ret := cycle[0]
			for _, member := range cycle[1:] {
				if member < ret {
					ret = member
				}
			}
			return ret
		}
		visited[id] = len(path)
		path = append(path, id)
		id = block.Next
	}
}
