/*
Package hexsim is an abstract execution engine for a stack-based instruction language whose values may be only partially known.

Given a starting operand stack, possibly holding unknown numbers, vectors or lists,
and a sequence of actions, hexsim computes every stack that could result, together
with every error that could occur depending on the concealed values.

# Concept

Each hypothesis about the concealed values is a branch ("possible world"). A
StackHolder stores all branches reachable so far. Applying an action maps every
live branch through it; an action may fork a branch when its outcome depends on
hidden information (for example, dividing by an unknown number may or may not
divide by zero). Branches that fault are kept, so callers can see where a path failed.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/hexsim"
		"github.com/aretw0/hexsim/pkg/actions"
		"github.com/aretw0/hexsim/pkg/domain"
	)

	func main() {
		start := domain.NewStackState([]domain.Iota{
			domain.KnownDouble(13),
			domain.UnknownDouble(),
		}, nil)

		mgr := hexsim.Start(start)
		if err := mgr.ApplyAction(context.Background(), domain.Lift(actions.Divide{})); err != nil {
			log.Fatal(err)
		}

		// branch 0: UNKNOWN, branch 1: error: division by zero
		fmt.Println(mgr)
	}
*/
package hexsim
