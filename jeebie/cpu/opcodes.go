package cpu

import (
	"fmt"

	"github.com/valerio/dmg-core/jeebie/memory"
)

// Opcode executes one decoded instruction. Immediate operands are read from
// mem at PC, advancing PC.
type Opcode func(c *CPU, mem memory.Memory)

// Dispatch tables. A nil entry has no instruction behind it and makes Step
// return an UnknownOpcodeError. The 0xCB slot of the primary table is nil as
// well: Step treats that byte as the prefix selecting opcodesCB.
var (
	opcodes       [256]Opcode
	opcodesCB     [256]Opcode
	opcodeNames   [256]string
	opcodeNamesCB [256]string
)

// operand field names, in encoding order
var (
	regNames    = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames   = [4]string{"BC", "DE", "HL", "SP"}
	stackNames  = [4]string{"BC", "DE", "HL", "AF"}
	condNames   = [4]string{"NZ", "Z", "NC", "C"}
	aluNames    = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	rotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
)

func init() {
	defineLoads()
	defineArithmetic()
	defineControlFlow()
	defineMisc()
	defineCB()
}

func define(op uint8, name string, fn Opcode) {
	if opcodes[op] != nil {
		panic(fmt.Sprintf("opcode 0x%02X defined twice", op))
	}
	opcodes[op] = fn
	opcodeNames[op] = name
}

func defineLoads() {
	for p := uint8(0); p < 4; p++ {
		// LD rr, nn
		define(0x01|p<<4, "LD "+pairNames[p]+",d16", func(c *CPU, mem memory.Memory) {
			c.setPair(p, false, c.readImmediateWord(mem))
		})
		// PUSH rr
		define(0xC5|p<<4, "PUSH "+stackNames[p], func(c *CPU, mem memory.Memory) {
			c.pushStack(mem, c.pair(p, true))
		})
		// POP rr
		define(0xC1|p<<4, "POP "+stackNames[p], func(c *CPU, mem memory.Memory) {
			c.setPair(p, true, c.popStack(mem))
		})
	}

	// LD (BC),A / LD (DE),A / LD (HL+),A / LD (HL-),A and the reverse loads.
	indirect := [4]struct {
		name    string
		address func(c *CPU) uint16
	}{
		{"(BC)", func(c *CPU) uint16 { return c.BC() }},
		{"(DE)", func(c *CPU) uint16 { return c.DE() }},
		{"(HL+)", func(c *CPU) uint16 { hl := c.HL(); c.SetHL(hl + 1); return hl }},
		{"(HL-)", func(c *CPU) uint16 { hl := c.HL(); c.SetHL(hl - 1); return hl }},
	}
	for p, ind := range indirect {
		define(0x02|uint8(p)<<4, "LD "+ind.name+",A", func(c *CPU, mem memory.Memory) {
			mem.Write(ind.address(c), c.A)
		})
		define(0x0A|uint8(p)<<4, "LD A,"+ind.name, func(c *CPU, mem memory.Memory) {
			c.A = mem.Read(ind.address(c))
		})
	}

	for r := uint8(0); r < 8; r++ {
		// LD r, n
		define(0x06|r<<3, "LD "+regNames[r]+",d8", func(c *CPU, mem memory.Memory) {
			c.setOperand(mem, r, c.readImmediate(mem))
		})

		// LD r, r'. 0x76 would be LD (HL),(HL) and is HALT instead.
		for src := uint8(0); src < 8; src++ {
			op := 0x40 | r<<3 | src
			if op == 0x76 {
				continue
			}
			define(op, "LD "+regNames[r]+","+regNames[src], func(c *CPU, mem memory.Memory) {
				c.setOperand(mem, r, c.operand(mem, src))
			})
		}
	}

	define(0x08, "LD (a16),SP", func(c *CPU, mem memory.Memory) {
		address := c.readImmediateWord(mem)
		mem.Write(address, uint8(c.SP))
		mem.Write(address+1, uint8(c.SP>>8))
	})
	define(0xE0, "LDH (a8),A", func(c *CPU, mem memory.Memory) {
		mem.Write(0xFF00|uint16(c.readImmediate(mem)), c.A)
	})
	define(0xF0, "LDH A,(a8)", func(c *CPU, mem memory.Memory) {
		c.A = mem.Read(0xFF00 | uint16(c.readImmediate(mem)))
	})
	define(0xE2, "LD (C),A", func(c *CPU, mem memory.Memory) {
		mem.Write(0xFF00|uint16(c.C), c.A)
	})
	define(0xF2, "LD A,(C)", func(c *CPU, mem memory.Memory) {
		c.A = mem.Read(0xFF00 | uint16(c.C))
	})
	define(0xEA, "LD (a16),A", func(c *CPU, mem memory.Memory) {
		mem.Write(c.readImmediateWord(mem), c.A)
	})
	define(0xFA, "LD A,(a16)", func(c *CPU, mem memory.Memory) {
		c.A = mem.Read(c.readImmediateWord(mem))
	})
	define(0xF8, "LD HL,SP+r8", func(c *CPU, mem memory.Memory) {
		c.SetHL(c.offsetSP(c.readSignedImmediate(mem)))
	})
	define(0xF9, "LD SP,HL", func(c *CPU, _ memory.Memory) {
		c.SP = c.HL()
	})
}

func defineArithmetic() {
	for p := uint8(0); p < 4; p++ {
		// 16-bit INC/DEC wrap and leave the flags alone.
		define(0x03|p<<4, "INC "+pairNames[p], func(c *CPU, _ memory.Memory) {
			c.setPair(p, false, c.pair(p, false)+1)
		})
		define(0x0B|p<<4, "DEC "+pairNames[p], func(c *CPU, _ memory.Memory) {
			c.setPair(p, false, c.pair(p, false)-1)
		})
		define(0x09|p<<4, "ADD HL,"+pairNames[p], func(c *CPU, _ memory.Memory) {
			c.addToHL(c.pair(p, false))
		})
	}

	for r := uint8(0); r < 8; r++ {
		define(0x04|r<<3, "INC "+regNames[r], func(c *CPU, mem memory.Memory) {
			c.setOperand(mem, r, c.inc(c.operand(mem, r)))
		})
		define(0x05|r<<3, "DEC "+regNames[r], func(c *CPU, mem memory.Memory) {
			c.setOperand(mem, r, c.dec(c.operand(mem, r)))
		})
	}

	for op := uint8(0); op < 8; op++ {
		// ALU A, r
		for src := uint8(0); src < 8; src++ {
			define(0x80|op<<3|src, aluNames[op]+regNames[src], func(c *CPU, mem memory.Memory) {
				c.alu(op, c.operand(mem, src))
			})
		}
		// ALU A, n
		define(0xC6|op<<3, aluNames[op]+"d8", func(c *CPU, mem memory.Memory) {
			c.alu(op, c.readImmediate(mem))
		})
	}

	define(0xE8, "ADD SP,r8", func(c *CPU, mem memory.Memory) {
		c.SP = c.offsetSP(c.readSignedImmediate(mem))
	})
	define(0x27, "DAA", func(c *CPU, _ memory.Memory) {
		c.daa()
	})
	define(0x2F, "CPL", func(c *CPU, _ memory.Memory) {
		c.A = ^c.A
		c.F.Set(Subtract, true)
		c.F.Set(HalfCarry, true)
	})
	define(0x37, "SCF", func(c *CPU, _ memory.Memory) {
		c.F.Set(Subtract, false)
		c.F.Set(HalfCarry, false)
		c.F.Set(Carry, true)
	})
	define(0x3F, "CCF", func(c *CPU, _ memory.Memory) {
		c.F.Set(Subtract, false)
		c.F.Set(HalfCarry, false)
		c.F.Set(Carry, !c.F.Get(Carry))
	})

	define(0x07, "RLCA", func(c *CPU, _ memory.Memory) { c.rotateA((*CPU).rlc) })
	define(0x0F, "RRCA", func(c *CPU, _ memory.Memory) { c.rotateA((*CPU).rrc) })
	define(0x17, "RLA", func(c *CPU, _ memory.Memory) { c.rotateA((*CPU).rl) })
	define(0x1F, "RRA", func(c *CPU, _ memory.Memory) { c.rotateA((*CPU).rr) })
}

func defineControlFlow() {
	define(0x18, "JR r8", func(c *CPU, mem memory.Memory) {
		c.jr(c.readSignedImmediate(mem))
	})
	define(0xC3, "JP a16", func(c *CPU, mem memory.Memory) {
		c.PC = c.readImmediateWord(mem)
	})
	define(0xE9, "JP (HL)", func(c *CPU, _ memory.Memory) {
		c.PC = c.HL()
	})
	define(0xCD, "CALL a16", func(c *CPU, mem memory.Memory) {
		c.call(mem, c.readImmediateWord(mem))
	})
	define(0xC9, "RET", func(c *CPU, mem memory.Memory) {
		c.PC = c.popStack(mem)
	})
	define(0xD9, "RETI", func(c *CPU, mem memory.Memory) {
		c.PC = c.popStack(mem)
		c.ime = true
	})

	for cc := uint8(0); cc < 4; cc++ {
		// The operand is always consumed, taken or not.
		define(0x20|cc<<3, "JR "+condNames[cc]+",r8", func(c *CPU, mem memory.Memory) {
			e := c.readSignedImmediate(mem)
			if c.condition(cc) {
				c.jr(e)
			}
		})
		define(0xC2|cc<<3, "JP "+condNames[cc]+",a16", func(c *CPU, mem memory.Memory) {
			address := c.readImmediateWord(mem)
			if c.condition(cc) {
				c.PC = address
			}
		})
		define(0xC4|cc<<3, "CALL "+condNames[cc]+",a16", func(c *CPU, mem memory.Memory) {
			address := c.readImmediateWord(mem)
			if c.condition(cc) {
				c.call(mem, address)
			}
		})
		define(0xC0|cc<<3, "RET "+condNames[cc], func(c *CPU, mem memory.Memory) {
			if c.condition(cc) {
				c.PC = c.popStack(mem)
			}
		})
	}

	for n := uint8(0); n < 8; n++ {
		target := uint16(n) * 8
		define(0xC7|n<<3, fmt.Sprintf("RST %02XH", target), func(c *CPU, mem memory.Memory) {
			c.call(mem, target)
		})
	}
}

func defineMisc() {
	define(0x00, "NOP", func(*CPU, memory.Memory) {})
	define(0x76, "HALT", func(c *CPU, _ memory.Memory) {
		c.halted = true
	})
	// STOP is encoded as 0x10 0x00, the second byte is skipped.
	define(0x10, "STOP d8", func(c *CPU, mem memory.Memory) {
		c.readImmediate(mem)
		c.stopped = true
	})
	// EI takes effect after the following instruction on hardware; that
	// delay belongs to interrupt delivery, here the latch is set directly.
	define(0xFB, "EI", func(c *CPU, _ memory.Memory) {
		c.ime = true
	})
	define(0xF3, "DI", func(c *CPU, _ memory.Memory) {
		c.ime = false
	})
}
