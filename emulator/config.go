package emulator

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/vmcpu/memory"
)

const (
	MEMORY_FLAT  = "flat"  // Contiguous zero initialized store.
	MEMORY_PAGED = "paged" // Sparse store, pages allocated on write.
)

// MemoryConfig selects the backing store.
type MemoryConfig struct {
	Kind string `toml:"kind"` // MEMORY_FLAT or MEMORY_PAGED.
	Size uint64 `toml:"size"` // Size in bytes. Zero for paged is the whole space.
}

// CpuConfig holds the CPU layout.
type CpuConfig struct {
	ProgramStart   uint32 `toml:"program_start"`   // Initial IP, and base of program addresses.
	StackStart     uint32 `toml:"stack_start"`     // Initial SP and FP.
	InterruptTable uint32 `toml:"interrupt_table"` // Absolute address of the vector table.
	MaxTicks       int    `toml:"max_ticks"`       // Run limit, zero for none.
}

// TapeConfig maps a Tape at an absolute address. Zero disables it.
type TapeConfig struct {
	Port uint32 `toml:"port"`
}

// Config describes an emulated machine.
type Config struct {
	Memory MemoryConfig `toml:"memory"`
	Cpu    CpuConfig    `toml:"cpu"`
	Tape   TapeConfig   `toml:"tape"`
}

// DefaultConfig is a 64K flat machine, with the vector table at zero,
// the program at 4K and the stack growing down from the top.
func DefaultConfig() Config {
	return Config{
		Memory: MemoryConfig{
			Kind: MEMORY_FLAT,
			Size: 0x10000,
		},
		Cpu: CpuConfig{
			ProgramStart:   0x1000,
			StackStart:     0x10000,
			InterruptTable: 0,
		},
	}
}

// ParseConfig decodes a TOML configuration. Absent keys keep their
// defaults, and unknown keys are an error.
func ParseConfig(text string) (conf Config, err error) {
	conf = DefaultConfig()

	md, err := toml.Decode(text, &conf)
	if err != nil {
		return
	}

	err = conf.check(md)
	return
}

// LoadConfig decodes a TOML configuration file.
func LoadConfig(path string) (conf Config, err error) {
	conf = DefaultConfig()

	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return
	}

	err = conf.check(md)
	return
}

func (conf *Config) check(md toml.MetaData) (err error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = ErrConfigKey(strings.Join(keys, ", "))
		return
	}

	err = conf.Validate()
	return
}

// Validate checks the memory kind and size.
func (conf *Config) Validate() (err error) {
	switch conf.Memory.Kind {
	case MEMORY_FLAT:
		if conf.Memory.Size == 0 || conf.Memory.Size > math.MaxUint32 {
			err = ErrConfigMemorySize(conf.Memory.Size)
			return
		}
	case MEMORY_PAGED:
		if conf.Memory.Size > memory.SPACE_SIZE {
			err = ErrConfigMemorySize(conf.Memory.Size)
			return
		}
	default:
		err = ErrConfigMemoryKind(conf.Memory.Kind)
		return
	}

	if conf.Cpu.MaxTicks < 0 {
		err = ErrConfigMaxTicks
		return
	}

	// Programs address the port relative to their start.
	if conf.Tape.Port != 0 && conf.Tape.Port < conf.Cpu.ProgramStart {
		err = ErrConfigTapePort(conf.Tape.Port)
		return
	}

	return
}

// NewMemory creates the configured backing store.
func (conf *Config) NewMemory() (mem memory.Memory, err error) {
	err = conf.Validate()
	if err != nil {
		return
	}

	switch conf.Memory.Kind {
	case MEMORY_PAGED:
		mem = memory.NewPaged(conf.Memory.Size)
	default:
		mem = memory.NewFlat(uint32(conf.Memory.Size))
	}

	return
}

// Defines returns the machine layout as assembler equates.
func (conf *Config) Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		size := conf.Memory.Size
		if conf.Memory.Kind == MEMORY_PAGED && size == 0 {
			size = memory.SPACE_SIZE
		}
		defines := [](struct {
			name  string
			value uint64
		}){
			{"PROGRAM_START", uint64(conf.Cpu.ProgramStart)},
			{"STACK_START", uint64(conf.Cpu.StackStart)},
			{"INTERRUPT_TABLE", uint64(conf.Cpu.InterruptTable)},
			{"MEMORY_SIZE", size},
		}
		if conf.Tape.Port != 0 {
			defines = append(defines, struct {
				name  string
				value uint64
			}{"TAPE_PORT", uint64(conf.Tape.Port - conf.Cpu.ProgramStart)})
		}
		for _, def := range defines {
			if !yield(def.name, fmt.Sprintf("%#x", def.value)) {
				return
			}
		}
	}
}
