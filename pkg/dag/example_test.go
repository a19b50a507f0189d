package dag_test

import (
	"fmt"

	"github.com/matzehuels/exprgraph/pkg/dag"
	"github.com/matzehuels/exprgraph/pkg/errors"
)

func ExampleParseRecords() {
	// f(x, g(y, z)) written as an arc list
	g, err := dag.ParseRecords([]string{
		"(x, f, 0), (g, f, 1)",
		"(z, g, 1), (y, g, 0)",
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Vertices:", g.Vertices())
	fmt.Println("Children of g:", g.Children("g"))
	// Output:
	// Vertices: [x f g z y]
	// Children of g: [y z]
}

func ExampleValidate() {
	g, _ := dag.ParseRecords([]string{"(x, f, 0), (y, f, 1)"})

	terminal, err := dag.Validate(g)
	fmt.Println("Terminal:", terminal, err)
	// Output:
	// Terminal: f <nil>
}

func ExampleValidate_cycle() {
	g, _ := dag.ParseRecords([]string{"(a, b, 0), (b, a, 0)"})

	_, err := dag.Validate(g)
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// CYCLE_DETECTED
	// graph contains a cycle through a, b
}
