package asmparser

import (
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/ChainSafe/tvm-asm/cell"
)

// Span marks a half-open [Start, End) byte range in the original source text.
// Spans are assigned during parsing and never change afterwards.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ArgKind discriminates the closed set of argument value variants.
type ArgKind int

const (
	ArgNatural ArgKind = iota // arbitrary-precision signed integer
	ArgStackRegister
	ArgControlRegister
	ArgSlice
	ArgBlock
	ArgInvalid // placeholder left behind by error recovery
)

func (k ArgKind) String() string {
	switch k {
	case ArgNatural:
		return "natural"
	case ArgStackRegister:
		return "stack_register"
	case ArgControlRegister:
		return "control_register"
	case ArgSlice:
		return "slice"
	case ArgBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Instruction is a single parsed instruction: a mnemonic plus its ordered
// argument list. The mnemonic string shares backing storage with the source.
type Instruction struct {
	Span     Span        `json:"span"`
	Mnemonic string      `json:"mnemonic"`
	Args     []*Argument `json:"args,omitempty"`
}

// Argument is one argument of an instruction. Kind selects which value field
// is meaningful; the others hold their zero value.
type Argument struct {
	Span     Span
	Kind     ArgKind
	Natural  *big.Int       // ArgNatural
	StackReg int16          // ArgStackRegister
	CtrlReg  uint8          // ArgControlRegister
	Slice    *cell.Cell     // ArgSlice
	Block    []*Instruction // ArgBlock
}

// MarshalJSON encodes the argument union as a tagged object. Naturals are
// encoded as decimal strings so arbitrary precision survives consumers that
// only have float64 JSON numbers.
func (a *Argument) MarshalJSON() ([]byte, error) {
	type header struct {
		Span Span   `json:"span"`
		Kind string `json:"kind"`
	}
	h := header{Span: a.Span, Kind: a.Kind.String()}
	switch a.Kind {
	case ArgNatural:
		return json.Marshal(struct {
			header
			Value string `json:"value"`
		}{h, a.Natural.String()})
	case ArgStackRegister:
		return json.Marshal(struct {
			header
			Index int16 `json:"index"`
		}{h, a.StackReg})
	case ArgControlRegister:
		return json.Marshal(struct {
			header
			Index uint8 `json:"index"`
		}{h, a.CtrlReg})
	case ArgSlice:
		return json.Marshal(struct {
			header
			Bits   string `json:"bits"`
			BitLen int    `json:"bit_len"`
		}{h, hex.EncodeToString(a.Slice.Data()), a.Slice.BitLen()})
	case ArgBlock:
		block := a.Block
		if block == nil {
			block = []*Instruction{}
		}
		return json.Marshal(struct {
			header
			Block []*Instruction `json:"block"`
		}{h, block})
	default:
		return json.Marshal(h)
	}
}
