// Lox - minimal arithmetic bytecode VM
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/aviralg/clox/manifest"
	"github.com/aviralg/clox/pkg/bytecode"
	"github.com/aviralg/clox/store"

	_ "github.com/tliron/commonlog/simple"
)

var (
	trace       = flag.Bool("trace", false, "print per-step stack and disassembly while running")
	manifestDir = flag.String("manifest", "", "directory containing lox.toml (default: walk up from cwd)")
	save        = flag.Bool("save", false, "save the assembled chunk to the store before running")
	runID       = flag.String("run", "", "load and run the stored chunk with this ID instead of assembling")
	list        = flag.Bool("list", false, "list stored chunks and exit")
	disasm      = flag.Bool("disasm", false, "print the chunk disassembly before running")
	version     = flag.Bool("version", false, "print version and exit")
	verbose     = flag.Int("verbose", 0, "log verbosity")
)

const versionStr = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lox - minimal arithmetic bytecode VM\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  lox [options]\n\n")
		fmt.Fprintf(os.Stderr, "With no options, assembles and runs the built-in demo program.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("lox version %s\n", versionStr)
		os.Exit(0)
	}

	commonlog.Configure(*verbose, nil)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	if *list {
		return listChunks(m)
	}

	var chunk *bytecode.Chunk
	if *runID != "" {
		chunk, err = loadChunk(m, *runID)
	} else {
		chunk, err = demoChunk(m.Run.Chunk)
	}
	if err != nil {
		return err
	}

	if *save && *runID == "" {
		id, err := saveChunk(m, chunk)
		if err != nil {
			return err
		}
		commonlog.NewInfoMessage(0, fmt.Sprintf("saved chunk %q as %s", chunk.Name, id))
	}

	if *disasm {
		if err := chunk.Disassemble(os.Stdout); err != nil {
			return err
		}
	}

	vm := bytecode.NewVM(chunk, os.Stdout)
	vm.Trace = *trace || m.Run.Trace

	result, err := vm.Run()
	if err != nil {
		return fmt.Errorf("%v: %w", result, err)
	}
	return nil
}

func loadManifest() (*manifest.Manifest, error) {
	if *manifestDir != "" {
		return manifest.Load(*manifestDir)
	}
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = manifest.Default(".")
	}
	return m, nil
}

// demoChunk assembles the reference program -((1.2 + 3.4) / 5.6).
func demoChunk(name string) (*bytecode.Chunk, error) {
	c := bytecode.NewChunk(name)
	instrs := []bytecode.Instruction{
		{Line: 1, Op: bytecode.OpConstant, Operand: uint32(c.Constants.Add(1.2))},
		{Line: 2, Op: bytecode.OpConstant, Operand: uint32(c.Constants.Add(3.4))},
		{Line: 3, Op: bytecode.OpAdd},
		{Line: 4, Op: bytecode.OpConstant, Operand: uint32(c.Constants.Add(5.6))},
		{Line: 5, Op: bytecode.OpDivide},
		{Line: 6, Op: bytecode.OpNegate},
		{Line: 7, Op: bytecode.OpReturn},
	}
	for _, instr := range instrs {
		if err := c.Write(instr); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func listChunks(m *manifest.Manifest) error {
	s, err := store.Open(m.StorePath())
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.ID, e.Name)
	}
	return nil
}

func loadChunk(m *manifest.Manifest, id string) (*bytecode.Chunk, error) {
	s, err := store.Open(m.StorePath())
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Load(id)
}

func saveChunk(m *manifest.Manifest, c *bytecode.Chunk) (string, error) {
	s, err := store.Open(m.StorePath())
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.Save(c)
}
