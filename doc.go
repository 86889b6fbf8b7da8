/* Package main: Wren -- a tiny interactive interpreter

Wren is an embeddable interpreter for an expression-oriented little
language with global variables, user procedures, foreign functions,
if/then/else, and integer arithmetic. Its defining constraint is that all
state lives inside one fixed-size byte store: compiled code and global
cells grow upward from the bottom, a dictionary of name headers grows
downward from the top, and at runtime the value stack is carved out of the
gap. There is no heap allocator anywhere.

Each top-level phrase is compiled by a single-pass recursive-descent
parser straight into compact bytecode inside the store, then immediately
executed by a stack virtual machine reading those same bytes. The pieces
are deliberately entangled: the compiler's peephole state lets it rewind a
global fetch into a store when it meets an assignment, and the VM patches
CALL into TCALL in place when it discovers a call in tail position.

The four word cells at the bottom of the store hold the compile pointer,
the dictionary pointer, and the store's base and end offsets; they are
bound as the globals cp, dp, c0 and d0, so Wren programs can inspect and
even steer the engine's own bookkeeping with peek and poke.
*/
package main
