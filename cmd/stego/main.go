// Command stego hides text in images and reads it back.
//
//	stego encode -i cover.png -m "secret" [-o out.png]
//	stego decode -i out.png
//	stego capacity -i cover.png
//	stego info -i cover.png
//	stego compare -a cover.png -b out.png
//	stego planes -i out.png -o plane.png [-channel rgb] [-scale 4]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/stego-tools-mcp/internal/imaging"
	"github.com/ironsheep/stego-tools-mcp/internal/stego"
	"github.com/ironsheep/stego-tools-mcp/internal/workflow"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("stego: ")

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "stego - hide text in the least-significant bits of an image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: stego <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  encode     Hide a message and save the result as PNG")
	fmt.Fprintln(w, "  decode     Print the message hidden in an image")
	fmt.Fprintln(w, "  capacity   Print how many characters an image can hide")
	fmt.Fprintln(w, "  info       Print image metadata as JSON")
	fmt.Fprintln(w, "  compare    Print the differences between a cover and a stego image")
	fmt.Fprintln(w, "  planes     Render the least-significant-bit plane as PNG")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'stego <command> -h' for command options.")
}

// run executes one command and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cache := imaging.NewImageCache()

	var err error
	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "stego %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return exitOK
	case "--help", "-h", "help":
		usage(stdout)
		return exitOK
	case "encode":
		err = runEncode(cache, args[1:], stdin, stdout, stderr)
	case "decode":
		err = runDecode(cache, args[1:], stdout, stderr)
	case "capacity":
		err = runCapacity(cache, args[1:], stdout, stderr)
	case "info":
		err = runInfo(cache, args[1:], stdout, stderr)
	case "compare":
		err = runCompare(cache, args[1:], stdout, stderr)
	case "planes":
		err = runPlanes(cache, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", args[0])
		usage(stderr)
		return exitUsage
	}

	var usageErr *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "stego %s: %v\n", args[0], err)
		return exitUsage
	case errors.Is(err, workflow.ErrCancelled):
		return exitOK
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parse wraps flag parse failures so they map to the usage exit code.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return &usageError{msg: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}
	return nil
}

func requireFlag(name, value string) error {
	if value == "" {
		return &usageError{msg: fmt.Sprintf("-%s is required", name)}
	}
	return nil
}

func runEncode(cache *imaging.ImageCache, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("encode", stderr)
	input := fs.String("i", "", "input (cover) image: png, jpg, gif, bmp, tiff or webp")
	message := fs.String("m", "", "message to hide")
	messageFile := fs.String("f", "", "read the message from a file ('-' for stdin)")
	output := fs.String("o", "", "output PNG path (default: <name>-encoded.png in ~/Downloads or next to the input)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("i", *input); err != nil {
		return err
	}

	msg := *message
	if *messageFile != "" {
		if *message != "" {
			return &usageError{msg: "use either -m or -f, not both"}
		}
		data, err := readMessage(*messageFile, stdin)
		if err != nil {
			return err
		}
		msg = data
	}

	if imaging.IsLossyFormat(imaging.FormatOf(*input)) {
		log.Printf("warning: %s uses a lossy format; its low bits may already be altered. The output is saved as PNG.", *input)
	}

	res, err := workflow.EncodeFile(cache, *input, msg, *output)
	if err != nil {
		var tooLarge *stego.MessageTooLargeError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("the message exceeds the maximum number of characters (%d)", tooLarge.Capacity)
		}
		return err
	}

	fmt.Fprintf(stdout, "Message encoded and saved to %s (%d of %d characters)\n",
		res.OutputPath, res.MessageLength, res.Capacity)
	return nil
}

func readMessage(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read message: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	return string(data), nil
}

func runDecode(cache *imaging.ImageCache, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)
	input := fs.String("i", "", "encoded image")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("i", *input); err != nil {
		return err
	}

	res, err := workflow.DecodeFile(cache, *input)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintln(stdout, "No hidden message found in the image.")
		return nil
	}
	fmt.Fprintln(stdout, res.Message)
	return nil
}

func runCapacity(cache *imaging.ImageCache, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("capacity", stderr)
	input := fs.String("i", "", "image to measure")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("i", *input); err != nil {
		return err
	}

	n, err := workflow.Capacity(cache, *input)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, n)
	return nil
}

func runInfo(cache *imaging.ImageCache, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("info", stderr)
	input := fs.String("i", "", "image to describe")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("i", *input); err != nil {
		return err
	}

	info, err := imaging.LoadImageInfo(cache, *input)
	if err != nil {
		return err
	}
	return printJSON(stdout, info)
}

func runCompare(cache *imaging.ImageCache, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("compare", stderr)
	cover := fs.String("a", "", "original (cover) image")
	encoded := fs.String("b", "", "encoded image")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("a", *cover); err != nil {
		return err
	}
	if err := requireFlag("b", *encoded); err != nil {
		return err
	}

	res, err := workflow.CompareFiles(cache, *cover, *encoded)
	if err != nil {
		return err
	}
	return printJSON(stdout, res)
}

func runPlanes(cache *imaging.ImageCache, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("planes", stderr)
	input := fs.String("i", "", "image to inspect")
	output := fs.String("o", "", "output PNG path")
	channel := fs.String("channel", "rgb", "channel to render: rgb, r, g or b")
	scale := fs.Int("scale", 1, fmt.Sprintf("upscaling factor (1-%d)", imaging.MaxPlaneScale))
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("i", *input); err != nil {
		return err
	}
	if err := requireFlag("o", *output); err != nil {
		return err
	}

	img, err := cache.Load(*input)
	if err != nil {
		return err
	}
	plane, ratio, err := imaging.RenderBitPlane(img, *channel, *scale)
	if err != nil {
		return err
	}
	written, err := imaging.SavePNG(*output, plane)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Bit plane saved to %s (%.1f%% of bits set)\n", written, ratio*100)
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
