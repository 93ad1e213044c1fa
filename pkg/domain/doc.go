/*
Package domain contains the core value model and transition contract of the hexsim engine.

It defines the partially-known values that flow through the operand stack, the
possible-worlds container that tracks every reachable stack, and the interfaces
that instructions implement. This package is kept pure and free of I/O,
logging or concurrency, following Hexagonal Architecture principles.

# Key Entities

  - Iota: A closed set of value variants (Double, Vector, Pattern, List, Entity, Widget).
    Doubles, vectors and lists may be "unknown": the tag is known, the payload is not.
  - IotaEntity: A symbolic entity reference constrained by guaranteed/possible EntityType sets.
  - StackState: One operand stack plus the ravenmind register.
  - StackHolder: Every branch (possible world) reachable so far, each either a StackState or an ActionError.
  - Action / ConstLenAction: The instruction contract. Lift turns a fixed-arity value
    transform into a full stack transition.
*/
package domain
