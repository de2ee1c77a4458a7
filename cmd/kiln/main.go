// Kiln CLI - runs bridge operations against byte input
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/kiln/bridge"
	"github.com/chazu/kiln/config"
	"github.com/chazu/kiln/rt"
	"github.com/chazu/kiln/store"
)

func main() {
	doHash := flag.Bool("hash", false, "Print the content hash of the input (hex)")
	doHex := flag.Bool("hex", false, "Print the hex encoding of the input")
	doValidate := flag.Bool("validate", false, "Check whether the input is well-formed UTF-8")
	doPut := flag.Bool("put", false, "Store the input in the blob store, print its key")
	getKey := flag.String("get", "", "Fetch the blob for the given key from the store")
	storePath := flag.String("store", "", "Blob store path (overrides kiln.toml)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kiln [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads bytes from the file argument or stdin and runs one bridge operation.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  kiln -hash file.bin          # Content hash of a file\n")
		fmt.Fprintf(os.Stderr, "  echo -n hi | kiln -hex       # Hex-encode stdin\n")
		fmt.Fprintf(os.Stderr, "  kiln -put -store blobs.db f  # Store a file, print its key\n")
		fmt.Fprintf(os.Stderr, "  kiln -get KEY -store blobs.db  # Fetch a blob by key\n")
	}
	flag.Parse()

	cfg, err := config.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if *storePath != "" {
		cfg.Bridge.StorePath = *storePath
	}

	verbosity := cfg.Bridge.Verbosity
	if *verbose && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	rt.Tune(cfg.Runtime.ArrayCapacity, cfg.Runtime.BytesCapacity,
		cfg.Runtime.StringCapacity, cfg.Runtime.ReleaseStack)

	var st *store.Store
	if path := cfg.StoreFile(); path != "" {
		st, err = store.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
	}

	b := bridge.New(st)
	if *verbose {
		fmt.Printf("Session %s\n", b.Session())
		fmt.Printf("Capacities: array=%d bytes=%d string=%d\n",
			cfg.Runtime.ArrayCapacity, cfg.Runtime.BytesCapacity, cfg.Runtime.StringCapacity)
	}

	if *getKey != "" {
		out, err := runFallible(b, b.StoreGet([]byte(*getKey)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	input, err := readInput(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Printf("Read %d bytes\n", len(input))
	}

	switch {
	case *doHash:
		out := mustRead(b, b.Hash(input))
		fmt.Printf("%x\n", out)
	case *doHex:
		out := mustRead(b, b.BytesToHex(input))
		fmt.Printf("%s\n", out)
	case *doValidate:
		out := mustRead(b, b.ValidateUTF8(input))
		if out[0] == 1 {
			fmt.Println("valid")
		} else {
			fmt.Println("invalid")
			os.Exit(1)
		}
	case *doPut:
		key, err := runFallible(b, b.StorePut(input))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", key)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// readInput reads the single file argument, or stdin when none is given.
func readInput(args []string) ([]byte, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("at most one input file, got %d", len(args))
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		return data, nil
	}
	return io.ReadAll(os.Stdin)
}

// mustRead copies a bridge output buffer and frees its handle.
func mustRead(b *bridge.Bridge, h bridge.Handle) []byte {
	data, err := b.Bytes(h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out := append([]byte(nil), data...)
	b.Free(h)
	return out
}

// runFallible reads a result frame and splits it into payload or error.
func runFallible(b *bridge.Bridge, h bridge.Handle) ([]byte, error) {
	return bridge.DecodeFrame(mustRead(b, h))
}
