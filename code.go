package main

// The instruction set. Opcodes are single bytes in the code region;
// immediates follow in the byte stream. The numbering matters only to the
// degree that it must agree between the assembler, the VM and the
// disassembler, but it is kept stable for the sake of dump readability.
const (
	opHalt = iota

	opPush
	opPop
	opPushString

	opGlobalFetch
	opGlobalStore
	opLocalFetch

	opTcall
	opCall
	opReturn

	opBranch
	opJump

	opAdd
	opSub
	opMul
	opDiv
	opMod
	opUmul
	opUdiv
	opUmod
	opNegate

	opEq
	opLt
	opUlt

	opAnd
	opOr
	opXor
	opSla
	opSra
	opSrl

	opGetc
	opPutc

	opFetchByte
	opPeek
	opPoke

	opLocalFetch0
	opLocalFetch1
	opPushw
	opPushb

	opCcall

	opMax
)

var opNames = [opMax]string{
	"HALT",
	"PUSH", "POP", "PUSH_STRING",
	"GLOBAL_FETCH", "GLOBAL_STORE", "LOCAL_FETCH",
	"TCALL", "CALL", "RETURN",
	"BRANCH", "JUMP",
	"ADD", "SUB", "MUL", "DIV", "MOD", "UMUL", "UDIV", "UMOD", "NEGATE",
	"EQ", "LT", "ULT",
	"AND", "OR", "XOR", "SLA", "SRA", "SRL",
	"GETC", "PUTC",
	"FETCH_BYTE", "PEEK", "POKE",
	"LOCAL_FETCH_0", "LOCAL_FETCH_1", "PUSHW", "PUSHB",
	"CCALL",
}

func opName(code byte) string {
	if int(code) < len(opNames) {
		return opNames[code]
	}
	return "?"
}
