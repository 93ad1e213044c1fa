/*
Package program loads simulation programs: a starting stack, an optional
ravenmind value and the names of the actions to run.

Programs are YAML by default, or JSON when the file ends in ".json":

	name: divide-by-unknown
	stack:
	  - {type: vector, xyz: [2, 4, 6]}
	  - unknown
	actions: [div, dup]
*/
package program
