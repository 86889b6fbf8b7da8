package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compilePhrase parses one phrase on a fresh engine, returning the emitted
// code without running it.
func compilePhrase(t *testing.T, src string, opts ...Option) (*Wren, []byte) {
	w := New(append([]Option{
		WithInput(NamedReader("<compile>", strings.NewReader(src))),
	}, opts...)...)
	w.next()
	start := w.store.cp()
	w.parseExpr(-1)
	w.parseDone()
	require.Equal(t, "", w.complaint, "unexpected complaint compiling %q", src)
	return w, append([]byte(nil), w.store.bytes[start:w.store.cp()]...)
}

func Test_compile_literals(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []byte
	}{
		{"small literal", "5", []byte{opPushb, 5}},
		{"byte range max", "127", []byte{opPushb, 127}},
		{"short literal", "1000", []byte{opPushw, 0xe8, 0x03}},
		{"short range max", "32767", []byte{opPushw, 0xff, 0x7f}},
		{"word literal", "100000", []byte{opPush, 0xa0, 0x86, 0x01, 0, 0, 0, 0, 0}},
		{"negated byte", "-5", []byte{opPushb, 0xfb}},
		{"double negation folds", "- - 5", []byte{opPushb, 5}},
		{"negated short", "-1000", []byte{opPushw, 0x18, 0xfc}},
		{"negated expression", "-(1 + 2)", []byte{opPushb, 1, opPushb, 2, opAdd, opNegate}},
		{"string literal", "'hi'", []byte{opPushString, 'h', 'i', 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, code := compilePhrase(t, tc.src)
			assert.Equal(t, tc.want, code, "expected code for %q", tc.src)
		})
	}
}

func Test_compile_precedence(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []byte
	}{
		{"mul binds tighter", "1 + 2 * 3",
			[]byte{opPushb, 1, opPushb, 2, opPushb, 3, opMul, opAdd}},
		{"grouping overrides", "(1 + 2) * 3",
			[]byte{opPushb, 1, opPushb, 2, opAdd, opPushb, 3, opMul}},
		{"sequencing pops early", "1 ; 2",
			[]byte{opPushb, 1, opPop, opPushb, 2}},
		{"comparison below arithmetic", "1 < 2 + 3",
			[]byte{opPushb, 1, opPushb, 2, opPushb, 3, opAdd, opLt}},
		{"bitwise below comparison", "1 & 2 < 3",
			[]byte{opPushb, 1, opPushb, 2, opPushb, 3, opLt, opAnd}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, code := compilePhrase(t, tc.src)
			assert.Equal(t, tc.want, code, "expected code for %q", tc.src)
		})
	}
}

func Test_compile_conditional(t *testing.T) {
	_, code := compilePhrase(t, "if 1 then 2 else 3")
	assert.Equal(t, []byte{
		opPushb, 1,
		opBranch, 7, 0, // to the else arm
		opPushb, 2,
		opJump, 4, 0, // past the else arm
		opPushb, 3,
	}, code, "expected conditional shape")
}

func Test_compile_assignment(t *testing.T) {
	w := New(WithInput(NamedReader("<compile>", strings.NewReader("x : 3"))))
	cell := w.store.cp()
	w.genValue(0)
	_, ok := w.bind("x", aGlobal, cell)
	require.True(t, ok, "must bind x")

	w.next()
	start := w.store.cp()
	w.parseExpr(-1)
	w.parseDone()
	require.Equal(t, "", w.complaint, "unexpected complaint")

	assert.Equal(t, []byte{
		opPushb, 3,
		opGlobalStore, byte(cell), 0,
	}, w.store.bytes[start:w.store.cp()], "expected the fetch rewound into a store")
}

func Test_compile_locals(t *testing.T) {
	var out strings.Builder
	w := New(
		WithInput(NamedReader("<compile>", strings.NewReader("fun f a b c d = a + b + c + d\n"))),
		WithOutput(&out),
	)
	w.next()
	entry := w.store.cp()
	require.Equal(t, rune(tokFun), w.token, "expected a fun phrase")
	w.next()
	w.runFun()
	require.Equal(t, "", w.complaint, "unexpected complaint: %q", out.String())

	assert.Equal(t, []byte{
		4, // arity
		opLocalFetch0,
		opLocalFetch1,
		opAdd,
		opLocalFetch, 2,
		opAdd,
		opLocalFetch, 3,
		opAdd,
		opReturn,
	}, w.store.bytes[entry:w.store.cp()], "expected the procedure body")

	region, h, ok := w.lookup("f")
	require.True(t, ok, "expected f bound")
	assert.Equal(t, aProcedure, headerKind(region, h), "expected a procedure")
	assert.Equal(t, entry, w.store.headerBinding(h), "expected the entry offset")

	_, _, ok = w.lookup("a")
	assert.False(t, ok, "expected parameter names forgotten")
}

func Test_compile_callShape(t *testing.T) {
	var out strings.Builder
	w := New(
		WithInput(NamedReader("<compile>", strings.NewReader("fun sq n = n * n\nsq 7"))),
		WithOutput(&out),
	)
	w.next()
	entry := w.store.cp()
	w.next()
	w.runFun()
	require.Equal(t, "", w.complaint, "unexpected complaint: %q", out.String())

	w.skipNewline()
	start := w.store.cp()
	w.parseExpr(-1)
	w.parseDone()
	require.Equal(t, "", w.complaint, "unexpected complaint")

	assert.Equal(t, []byte{
		opPushb, 7,
		opCall, byte(entry), byte(entry >> 8),
	}, w.store.bytes[start:w.store.cp()], "expected the call site")
}

func Test_compile_bigEndianImmediates(t *testing.T) {
	_, code := compilePhrase(t, "1000", WithBigEndian())
	assert.Equal(t, []byte{opPushw, 0x03, 0xe8}, code, "expected big endian immediate")
}
