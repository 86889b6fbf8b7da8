package main

// The dictionary is a stack of packed name headers growing downward from
// the top of the store. Each header is a 2-byte binding, one byte packing
// the name kind with (length - 1), then the 1..16 unterminated name bytes.
//
// What the binding means depends on the kind: for globals it is the offset
// of the value cell, for procedures the offset of the entry (arity byte
// then body), for foreign functions the offset of the entry block (arity
// byte then registry word); local bindings reuse it as the parameter index,
// and primitive bindings pack (arity, opcode) into the two bytes directly.

type nameKind uint8

const (
	aPrimitive nameKind = iota
	aProcedure
	aGlobal
	aLocal
	aCFunction
)

func (k nameKind) String() string {
	switch k {
	case aPrimitive:
		return "primitive"
	case aProcedure:
		return "procedure"
	case aGlobal:
		return "global"
	case aLocal:
		return "local"
	case aCFunction:
		return "cfunction"
	}
	return "invalid"
}

const headerSize = 3

// The header accessors work over any byte region so that the same code
// serves both the dynamic dictionary inside the store and the static
// primitive table below.

func headerKind(region []byte, h int) nameKind {
	return nameKind(region[h+2] >> 4)
}

func headerNameLen(region []byte, h int) int {
	return int(region[h+2]&0xf) + 1
}

func headerName(region []byte, h int) string {
	return string(region[h+headerSize : h+headerSize+headerNameLen(region, h)])
}

func headerPrimArity(region []byte, h int) int { return int(region[h]) }
func headerPrimOp(region []byte, h int) byte   { return region[h+1] }

func nextHeader(region []byte, h int) int {
	return h + headerSize + headerNameLen(region, h)
}

// lookupIn scans headers from lo up to hi, returning the offset of the
// first whose name matches exactly.
func lookupIn(region []byte, lo, hi int, name string) (int, bool) {
	for h := lo; h < hi; h = nextHeader(region, h) {
		if headerNameLen(region, h) == len(name) && headerName(region, h) == name {
			return h, true
		}
	}
	return 0, false
}

func (st *store) headerBinding(h int) int {
	return int(st.fetch2u(h))
}

// bind pushes a new header onto the dictionary, shrinking the free gap
// from above. Returns the header offset, or false with the error latched.
func (w *Wren) bind(name string, kind nameKind, binding int) (int, bool) {
	if !w.available(headerSize + len(name)) {
		return 0, false
	}
	h := w.store.dp() - headerSize - len(name)
	w.store.setDP(h)
	w.store.write2u(h, uint16(binding))
	w.store.bytes[h+2] = byte(kind)<<4 | byte(len(name)-1)&0xf
	copy(w.store.bytes[h+headerSize:], name)
	return h, true
}

// lookup resolves a name, searching the dynamic dictionary before the
// primitive table; a shadowing definition therefore wins until forgotten.
// The returned region distinguishes which table held the match.
func (w *Wren) lookup(name string) (region []byte, h int, ok bool) {
	if h, ok := lookupIn(w.store.bytes, w.store.dp(), w.store.size(), name); ok {
		return w.store.bytes, h, true
	}
	if h, ok := lookupIn(primitiveDictionary, 0, len(primitiveDictionary), name); ok {
		return primitiveDictionary, h, true
	}
	return nil, 0, false
}

func primHeader(opcode byte, arity, nameLen int) []byte {
	return []byte{byte(arity), opcode, byte(aPrimitive)<<4 | byte(nameLen-1)&0xf}
}

func prim(opcode byte, arity int, name string) []byte {
	return append(primHeader(opcode, arity, len(name)), name...)
}

// primitiveDictionary is a pre-formed constant header region for the names
// the compiler emits inline as single opcodes.
var primitiveDictionary = func() []byte {
	var d []byte
	d = append(d, prim(opUmul, 2, "umul")...)
	d = append(d, prim(opUdiv, 2, "udiv")...)
	d = append(d, prim(opUmod, 2, "umod")...)
	d = append(d, prim(opUlt, 2, "ult")...)
	d = append(d, prim(opSla, 2, "sla")...)
	d = append(d, prim(opSra, 2, "sra")...)
	d = append(d, prim(opSrl, 2, "srl")...)
	d = append(d, prim(opGetc, 0, "getc")...)
	d = append(d, prim(opPutc, 1, "putc")...)
	d = append(d, prim(opPeek, 1, "peek")...)
	d = append(d, prim(opPoke, 2, "poke")...)
	return d
}()
