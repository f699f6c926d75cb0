package graph

// BFSLevel represents articles at a specific depth level
type BFSLevel struct {
	Depth    int
	Articles []string
}

// BFS performs breadth-first traversal over outbound links from a starting
// article, with no fan-out limits.
func (g *Graph) BFS(start string) []BFSLevel {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.articles[start]; !ok {
		return nil
	}

	visited := map[string]bool{start: true}
	levels := make([]BFSLevel, 0)
	queue := []string{start}
	currentDepth := 0

	for len(queue) > 0 {
		levelSize := len(queue)
		level := BFSLevel{
			Depth:    currentDepth,
			Articles: make([]string, 0, levelSize),
		}

		for i := 0; i < levelSize; i++ {
			title := queue[0]
			queue = queue[1:]
			level.Articles = append(level.Articles, title)

			for _, next := range g.links[title] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		levels = append(levels, level)
		currentDepth++
	}

	return levels
}

// Distance returns the number of links on a shortest from->to path, or -1
// if to is unreachable.
func (g *Graph) Distance(from, to string) int {
	for _, level := range g.BFS(from) {
		for _, title := range level.Articles {
			if title == to {
				return level.Depth
			}
		}
	}
	return -1
}
