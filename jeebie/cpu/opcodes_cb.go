package cpu

import (
	"fmt"

	"github.com/valerio/dmg-core/jeebie/bit"
	"github.com/valerio/dmg-core/jeebie/memory"
)

func defineCBOp(op uint8, name string, fn Opcode) {
	if opcodesCB[op] != nil {
		panic(fmt.Sprintf("opcode 0xCB%02X defined twice", op))
	}
	opcodesCB[op] = fn
	opcodeNamesCB[op] = name
}

// defineCB fills the 0xCB table. The second byte splits as xx yyy zzz:
// zzz selects the operand, yyy the rotate kind or bit index, xx the group
// (rotate/shift, BIT, RES, SET).
func defineCB() {
	rotates := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}

	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			rotate := rotates[y]
			defineCBOp(y<<3|z, rotateNames[y]+" "+regNames[z], func(c *CPU, mem memory.Memory) {
				c.setOperand(mem, z, rotate(c, c.operand(mem, z)))
			})

			suffix := fmt.Sprintf(" %d,%s", y, regNames[z])
			defineCBOp(0x40|y<<3|z, "BIT"+suffix, func(c *CPU, mem memory.Memory) {
				c.bitTest(y, c.operand(mem, z))
			})
			defineCBOp(0x80|y<<3|z, "RES"+suffix, func(c *CPU, mem memory.Memory) {
				c.setOperand(mem, z, bit.Reset(y, c.operand(mem, z)))
			})
			defineCBOp(0xC0|y<<3|z, "SET"+suffix, func(c *CPU, mem memory.Memory) {
				c.setOperand(mem, z, bit.Set(y, c.operand(mem, z)))
			})
		}
	}
}
