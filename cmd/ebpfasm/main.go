package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bpfisa"
)

var log = logrus.New()

func main() {
	cfg, err := bpfisa.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "ebpfasm",
		Short: "Assembler and disassembler for the eBPF 64-bit instruction set",
	}

	var outPath string
	assembleCmd := &cobra.Command{
		Use:   "assemble [file]",
		Short: "Assemble eBPF assembly text into bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(args[0], outPath)
		},
	}
	assembleCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: stdout)")

	var verbose bool
	disassembleCmd := &cobra.Command{
		Use:   "disassemble [file]",
		Short: "Disassemble eBPF bytecode into assembly text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisassemble(args[0], verbose)
		},
	}
	disassembleCmd.Flags().BoolVarP(&verbose, "verbose", "v", cfg.Verbose, "include per-instruction hex details")

	dictCmd := &cobra.Command{
		Use:   "dict",
		Short: "Generate a libFuzzer dictionary of every encodable instruction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bpfisa.WriteDictionary(os.Stdout)
		},
	}

	corpusCmd := &cobra.Command{
		Use:   "corpus [file]",
		Short: "Parse a differential-fuzzing corpus file and disassemble its program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorpus(args[0])
		},
	}

	rootCmd.AddCommand(assembleCmd, disassembleCmd, dictCmd, corpusCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runAssemble(path, outPath string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := bpfisa.Assemble(string(source))
	if err != nil {
		return err
	}

	log.WithField("bytes", len(out)).Info("assembled")

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(out)
	return err
}

func runDisassemble(path string, verbose bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := bpfisa.Disassemble(data, verbose)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func runCorpus(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	corpus, err := bpfisa.ReadCorpusFile(f)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"instruction_bytes": len(corpus.Instructions),
		"memory_bytes":      len(corpus.Memory),
	}).Info("parsed corpus file")

	text, err := bpfisa.Disassemble(corpus.Instructions, false)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}
