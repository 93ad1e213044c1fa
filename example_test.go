package hexsim_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/pkg/actions"
	"github.com/aretw0/hexsim/pkg/domain"
)

// ExampleStart shows how an unknown divisor splits the simulation in two.
func ExampleStart() {
	start := domain.NewStackState([]domain.Iota{
		domain.KnownVector(2, 4, 6),
		domain.UnknownDouble(),
	}, nil)

	mgr := hexsim.Start(start)
	if err := mgr.ApplyAction(context.Background(), domain.Lift(actions.Divide{})); err != nil {
		log.Fatal(err)
	}

	for i, b := range mgr.Branches() {
		if !b.Live() {
			fmt.Printf("%d: error: %v\n", i, b.Err)
			continue
		}
		fmt.Printf("%d: %s\n", i, b.State)
	}
	// Output:
	// 0: (UNKNOWN, UNKNOWN, UNKNOWN ; guaranteed in range: false)
	// 1: error: division by zero
}
