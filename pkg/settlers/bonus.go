package settlers

// recomputeLongestRoad reassigns the longest-road bonus. A unique player with
// the longest chain of at least 5 roads holds it; on a tie the current holder
// keeps it, and with no prior holder among the tied players nobody does.
func (g *Game) recomputeLongestRoad() {
	lengths := make([]int, len(g.Players))
	best := 0
	for i := range g.Players {
		lengths[i] = g.longestChain(i)
		if lengths[i] > best {
			best = lengths[i]
		}
	}
	if best < 5 {
		for _, p := range g.Players {
			p.LongestRoad = false
		}
		return
	}

	holder := -1
	for _, p := range g.Players {
		if p.LongestRoad {
			holder = p.ID
		}
	}
	var leaders []int
	for i, l := range lengths {
		if l == best {
			leaders = append(leaders, i)
		}
	}

	winner := -1
	if len(leaders) == 1 {
		winner = leaders[0]
	} else {
		for _, id := range leaders {
			if id == holder {
				winner = id
			}
		}
	}
	for _, p := range g.Players {
		p.LongestRoad = p.ID == winner
	}
}

// longestChain returns the length in edges of the player's longest simple
// path, treating nodes as the visit token (a node is entered at most once).
func (g *Game) longestChain(player int) int {
	starts := make(map[int]bool)
	owned := 0
	for _, e := range g.Board.Edges {
		if e.Owner == player {
			starts[e.A] = true
			starts[e.B] = true
			owned++
		}
	}
	if owned == 0 {
		return 0
	}

	best := 0
	visited := make(map[int]bool)
	var dfs func(node int) int
	dfs = func(node int) int {
		longest := 0
		for _, eid := range g.Board.EdgesAt(node) {
			e := g.Board.Edges[eid]
			if e.Owner != player {
				continue
			}
			next := e.A
			if next == node {
				next = e.B
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			if l := 1 + dfs(next); l > longest {
				longest = l
			}
			delete(visited, next)
		}
		return longest
	}
	for start := range starts {
		visited[start] = true
		if l := dfs(start); l > best {
			best = l
		}
		delete(visited, start)
	}
	return best
}

// recomputeLargestArmy reassigns the largest-army bonus with the same
// threshold-and-tie rules as longest road, over knights played (threshold 3).
func (g *Game) recomputeLargestArmy() {
	best := 0
	for _, p := range g.Players {
		if p.KnightsPlayed > best {
			best = p.KnightsPlayed
		}
	}
	if best < 3 {
		for _, p := range g.Players {
			p.LargestArmy = false
		}
		return
	}

	holder := -1
	for _, p := range g.Players {
		if p.LargestArmy {
			holder = p.ID
		}
	}
	var leaders []int
	for _, p := range g.Players {
		if p.KnightsPlayed == best {
			leaders = append(leaders, p.ID)
		}
	}

	winner := -1
	if len(leaders) == 1 {
		winner = leaders[0]
	} else {
		for _, id := range leaders {
			if id == holder {
				winner = id
			}
		}
	}
	for _, p := range g.Players {
		p.LargestArmy = p.ID == winner
	}
}
