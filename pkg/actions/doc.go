/*
Package actions provides the built-in instructions of the hexsim engine.

Most instructions are fixed-arity value transforms (domain.ConstLenAction) and
become full stack transitions through domain.Lift. Instructions that touch the
ravenmind register implement domain.Action directly.

All arithmetic follows the same template:

  - An operand tag combination the instruction does not define is an ErrInvalidType branch.
  - Unknown numeric input degrades the result to unknown, but never changes its tag.
  - Range guarantees on unknown vectors may be kept or downgraded, never upgraded.
  - Only outcomes that differ in type or error fork extra branches; an unknown
    divisor, for example, forks a "division by zero" branch next to the unknown quotient.
*/
package actions
