package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// storeDumper renders the engine's store for post-mortem inspection: the
// reserved cells, every named span of the code region (global cells,
// procedure bodies disassembled, foreign entry blocks), and the dictionary
// headers themselves.
type storeDumper struct {
	w   *Wren
	out io.Writer

	addrWidth int
}

type dumpSpan struct {
	header  int
	binding int
	kind    nameKind
	name    string
}

func (dump storeDumper) dump() {
	st := &dump.w.store

	order := "little"
	if st.bigEndian {
		order = "big"
	}
	fmt.Fprintf(dump.out, "# Wren Store Dump\n")
	fmt.Fprintf(dump.out, "  capacity: %v (%v endian)\n", st.size(), order)
	fmt.Fprintf(dump.out, "  cp: %v dp: %v\n", st.cp(), st.dp())

	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(st.size()))
	}

	dump.dumpCode()
	dump.dumpDict()
}

func (dump *storeDumper) spans() []dumpSpan {
	st := &dump.w.store
	var spans []dumpSpan
	for h := st.dp(); h < st.size(); h = nextHeader(st.bytes, h) {
		k := headerKind(st.bytes, h)
		if k == aLocal || k == aPrimitive {
			continue
		}
		spans = append(spans, dumpSpan{
			header:  h,
			binding: st.headerBinding(h),
			kind:    k,
			name:    headerName(st.bytes, h),
		})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].binding < spans[j].binding })
	return spans
}

func (dump *storeDumper) dumpCode() {
	st := &dump.w.store
	spans := dump.spans()

	fmt.Fprintf(dump.out, "# Code @%v\n", 4*valueSize)
	for i, span := range spans {
		end := st.cp()
		if i+1 < len(spans) {
			end = spans[i+1].binding
		}
		switch span.kind {
		case aGlobal:
			fmt.Fprintf(dump.out, "  @% *v %v = %v\n",
				dump.addrWidth, span.binding, span.name, st.fetchValue(span.binding))
		case aCFunction:
			fmt.Fprintf(dump.out, "  @% *v %v/%v cfunction #%v\n",
				dump.addrWidth, span.binding, span.name,
				st.bytes[span.binding], st.fetchValue(span.binding+1))
		case aProcedure:
			fmt.Fprintf(dump.out, "  @% *v %v/%v:\n",
				dump.addrWidth, span.binding, span.name, st.bytes[span.binding])
			for addr := span.binding + 1; addr < end; {
				next := dump.disasm(addr)
				if next <= addr {
					break
				}
				addr = next
			}
		}
	}
}

// disasm renders the single instruction at addr, returning the offset just
// past it and its immediates.
func (dump *storeDumper) disasm(addr int) int {
	st := &dump.w.store
	op := st.bytes[addr]

	fmt.Fprintf(dump.out, "    @% *v %s", dump.addrWidth, addr, opName(op))
	addr++

	switch op {
	case opPush:
		fmt.Fprintf(dump.out, " %v", st.fetchValue(addr))
		addr += valueSize
	case opPushw:
		fmt.Fprintf(dump.out, " %v", st.fetch2i(addr))
		addr += 2
	case opPushb:
		fmt.Fprintf(dump.out, " %v", int8(st.bytes[addr]))
		addr++

	case opPushString:
		n := st.strlen(addr)
		fmt.Fprintf(dump.out, " %q", st.bytes[addr:addr+n])
		addr += n + 1

	case opGlobalFetch, opGlobalStore:
		a := int(st.fetch2u(addr))
		addr += 2
		if name := dump.nameAt(a, aGlobal); name != "" {
			fmt.Fprintf(dump.out, " %v", name)
		} else {
			fmt.Fprintf(dump.out, " @%v", a)
		}

	case opLocalFetch:
		fmt.Fprintf(dump.out, " %v", st.bytes[addr])
		addr++

	case opCall, opTcall:
		a := int(st.fetch2u(addr))
		addr += 2
		if name := dump.nameAt(a, aProcedure); name != "" {
			fmt.Fprintf(dump.out, " %v", name)
		} else {
			fmt.Fprintf(dump.out, " @%v", a)
		}

	case opCcall:
		a := int(st.fetch2u(addr))
		addr += 2
		if name := dump.nameAt(a, aCFunction); name != "" {
			fmt.Fprintf(dump.out, " %v", name)
		} else {
			fmt.Fprintf(dump.out, " @%v", a)
		}

	case opBranch, opJump:
		d := int(st.fetch2u(addr))
		fmt.Fprintf(dump.out, " +%v (@%v)", d, addr+d)
		addr += 2
	}

	fmt.Fprintf(dump.out, "\n")
	return addr
}

func (dump *storeDumper) nameAt(binding int, kind nameKind) string {
	st := &dump.w.store
	for h := st.dp(); h < st.size(); h = nextHeader(st.bytes, h) {
		if headerKind(st.bytes, h) == kind && st.headerBinding(h) == binding {
			return headerName(st.bytes, h)
		}
	}
	return ""
}

func (dump *storeDumper) dumpDict() {
	st := &dump.w.store
	fmt.Fprintf(dump.out, "# Dictionary @%v\n", st.dp())
	for h := st.dp(); h < st.size(); h = nextHeader(st.bytes, h) {
		fmt.Fprintf(dump.out, "  @% *v %v -> @%v %s\n",
			dump.addrWidth, h, headerName(st.bytes, h),
			st.headerBinding(h), headerKind(st.bytes, h))
	}
}
