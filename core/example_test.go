package core_test

import (
	"fmt"

	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// ExampleGraph demonstrates basic creation, mutation, and queries.
func ExampleGraph() {
	g := core.NewGraph()
	a := g.AddNode(1, geom.Vec3{})
	b := g.AddNode(2, geom.Vec3{X: 2})
	c := g.AddNode(3, geom.Vec3{X: 4})
	g.AddEdge(a, b)
	g.AddEdge(c, a)

	ids, _ := g.NeighborIDs(a)
	fmt.Println("neighbors of", a, ids)

	g.SetDirected(true)
	ids, _ = g.NeighborIDs(a)
	fmt.Println("directed:", ids)

	g.RemoveNode(b)
	fmt.Println("edges left:", g.EdgeCount())

	// Output:
	// neighbors of n1 [n2 n3]
	// directed: [n2]
	// edges left: 1
}
