// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/memory"
)

// Macro is a recorded .macro body.
type Macro struct {
	LineNo int      // Line number of the first body line.
	Args   []string // Parameter names, bound as equates during expansion.
	Lines  []string // Body text, comments removed.
}

// Equates defined before every Parse.
var sysEquate = map[string]string{
	"LINENO":      "0",
	"FRAME_WORDS": strconv.Itoa(cpu.FRAME_WORDS),
	"FRAME_SIZE":  strconv.Itoa(4 * cpu.FRAME_WORDS),
}

// vector is a pending .int directive.
type vector struct {
	lineNo int
	index  uint32
	label  string
}

// Assembler is a single pass macro assembler for the cpu instruction set.
// Label references are resolved once the whole source has been read.
type Assembler struct {
	Verbose bool     // If set, logs each line and instruction.
	Opcode  []Opcode // Assembled instructions, in program order.

	Label  map[string]int    // Program offset of each label.
	Equate map[string]string // Textual substitutions, including macro arguments.
	Macro  map[string]*Macro // Macro definitions.

	predefine  map[string]string
	vectors    []vector
	expansions int // Macro expansions so far, numbering '@' labels.
}

// Predefine sets an equate that is applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = make(map[string]string)
	}
	asm.predefine[equ] = value
}

// split breaks a line into words. Commas separate like spaces.
func split(line string) []string {
	return strings.Fields(strings.ReplaceAll(line, ",", " "))
}

// substitute replaces a word, or the inside of a bracketed word, with its
// equate.
func (asm *Assembler) substitute(word string) string {
	if equate, ok := asm.Equate[word]; ok {
		return equate
	}

	if inner, ok := memoryOperand(word); ok {
		if equate, ok := asm.Equate[inner]; ok {
			return "[" + equate + "]"
		}
	}

	return word
}

// currentIp gets the program offset of the next instruction.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := &asm.Opcode[len(asm.Opcode)-1]
	return last.Ip + last.Size()
}

// defineLabel binds label to the current program offset.
func (asm *Assembler) defineLabel(label string) (err error) {
	if !reLabel.MatchString(label) {
		err = ErrParseValue(label)
		return
	}
	if _, dup := asm.Label[label]; dup {
		err = ErrLabelDuplicate
		return
	}

	asm.Label[label] = asm.currentIp()
	return
}

// defineEquate handles '.equ NAME VALUE'.
func (asm *Assembler) defineEquate(words []string) (err error) {
	if len(words) != 3 {
		err = ErrEquateSyntax
		return
	}
	if _, dup := asm.Equate[words[1]]; dup {
		err = ErrEquateDuplicate
		return
	}

	asm.Equate[words[1]] = words[2]
	return
}

// defineVector handles '.int INDEX LABEL'.
func (asm *Assembler) defineVector(words []string, lineno int) (err error) {
	if len(words) != 3 || !reLabel.MatchString(words[2]) {
		err = ErrVectorSyntax
		return
	}

	index, err := valueOf(words[1])
	if err != nil {
		return
	}

	if slices.ContainsFunc(asm.vectors, func(vec vector) bool { return vec.index == index }) {
		err = ErrVectorDuplicate
		return
	}

	asm.vectors = append(asm.vectors, vector{lineNo: lineno, index: index, label: words[2]})
	return
}

// expandMacro assembles the body of macro with its arguments bound as
// equates. Labels starting with '@' are made unique to this expansion.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	saved := maps.Clone(asm.Equate)
	defer func() { asm.Equate = saved }()
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	local := fmt.Sprintf("%v_%v_", name, asm.expansions)
	asm.expansions++

	for n, text := range macro.Lines {
		lineno := macro.LineNo + n
		err = asm.assemble(strings.ReplaceAll(text, "@", local), lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// assemble handles one source line: equates, labels, directives, macro
// calls and finally an instruction.
func (asm *Assembler) assemble(line string, lineno int) (err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words := split(line)
	if len(words) == 0 {
		return
	}

	if words[0] == ".equ" {
		return asm.defineEquate(words)
	}

	for n, word := range words {
		words[n] = asm.substitute(word)
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		err = asm.defineLabel(strings.TrimSuffix(words[0], ":"))
		if err != nil {
			return
		}
		words = words[1:]
	}

	switch {
	case len(words) == 0:
		return
	case words[0] == ".int":
		return asm.defineVector(words, lineno)
	}

	if macro, ok := asm.Macro[words[0]]; ok {
		return asm.expandMacro(words[0], macro, words[1:])
	}

	return asm.parseWords(words, lineno)
}

// reset prepares for a new Parse.
func (asm *Assembler) reset() {
	asm.Opcode = asm.Opcode[:0]
	asm.Label = make(map[string]int)
	asm.Macro = make(map[string]*Macro)
	asm.vectors = asm.vectors[:0]
	asm.expansions = 0

	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
}

// link fills in every label reference.
func (asm *Assembler) link() (lineno int, line string, err error) {
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		if op.LinkLabel == "" {
			continue
		}

		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Inst = relink(op.Inst, op.LinkField, uint32(ip))
	}

	return
}

// Parse assembles a source stream into a Program. Errors are reported
// as *ErrSyntax.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		code, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(code)

		directive := ""
		if fields := strings.Fields(line); len(fields) > 0 {
			directive = fields[0]
		}

		switch {
		case directive == ".macro":
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				err = ErrMacroSyntax
				return
			}
			if _, dup := asm.Macro[fields[1]]; dup {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{LineNo: lineno + 1, Args: fields[2:]}
			asm.Macro[fields[1]] = macro
		case directive == ".endm":
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
		case macro != nil:
			macro.Lines = append(macro.Lines, line)
		default:
			err = asm.assemble(line, lineno)
			if err != nil {
				return
			}
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	lineno, line, err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	for _, vec := range asm.vectors {
		ip, ok := asm.Label[vec.label]
		if !ok {
			lineno, line = vec.lineNo, ".int"
			err = ErrLabelMissing(vec.label)
			return
		}
		prog.Vectors = append(prog.Vectors, Vector{Index: vec.index, Label: vec.label, Addr: memory.Address(ip)})
	}

	return
}
