// Command hl7cat parses an HL7 v2.x message and prints the results of
// locating a byte offset, evaluating a query path, or generating an ACK.
//
// Usage:
//
//	hl7cat [flags] [file]
//
// Input is read from --file, the positional [file] argument, or stdin (in
// that order of precedence).
//
// Flags:
//
//	-f, --file <file>      HL7 input file.
//	-q, --query <path>     Evaluate a query path (e.g. "PID.5.1") and print
//	                       its raw (undecoded) text.
//	-locate <offset>       Print the path of the structural node containing
//	                       byte offset.
//	-ack <AA|AE|AR>        Build an acknowledgment for the message and print
//	                       it.
//	-mllp                  Wrap -ack output in MLLP framing.
//	-h, --help             Show this help text.
//
// Examples:
//
//	# Evaluate a query path
//	hl7cat -q PID.5.1 message.hl7
//
//	# Locate the structural node at byte offset 42
//	hl7cat -locate 42 message.hl7
//
//	# Build an application-accept ACK
//	echo 'MSH|^~\&|App|Fac|||20250101||ADT^A01|1|P|2.7' | hl7cat -ack AA
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/golevel7v2/ack"
	"github.com/dshills/golevel7v2/builder"
	"github.com/dshills/golevel7v2/cursor"
	"github.com/dshills/golevel7v2/encode"
	"github.com/dshills/golevel7v2/hl7"
	"github.com/dshills/golevel7v2/query"
)

func main() {
	fs := flag.NewFlagSet("hl7cat", flag.ContinueOnError)
	fs.Usage = usage(fs)

	var inputFile string
	fs.StringVar(&inputFile, "file", "", "HL7 input file")
	fs.StringVar(&inputFile, "f", "", "HL7 input file (shorthand)")

	var queryPath string
	fs.StringVar(&queryPath, "query", "", "query path to evaluate, e.g. PID.5.1")
	fs.StringVar(&queryPath, "q", "", "query path to evaluate (shorthand)")

	var locateOffset int
	fs.IntVar(&locateOffset, "locate", -1, "byte offset to locate")

	var ackCode string
	fs.StringVar(&ackCode, "ack", "", "build an acknowledgment: AA, AE, or AR")

	var useMLLP bool
	fs.BoolVar(&useMLLP, "mllp", false, "wrap -ack output in MLLP framing")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if inputFile == "" && len(fs.Args()) == 0 && isTerminal(os.Stdin) {
		fs.Usage()
		os.Exit(0)
	}

	data, err := readInput(inputFile, fs.Args())
	if err != nil {
		fatalf("error reading input: %v", err)
	}

	msg, err := hl7.ParseMessage(string(data))
	if err != nil {
		fatalf("error parsing message: %v", err)
	}

	switch {
	case queryPath != "":
		runQuery(msg, queryPath)
	case locateOffset >= 0:
		runLocate(msg, locateOffset)
	case ackCode != "":
		runAck(msg, ackCode, useMLLP)
	default:
		fmt.Println(msg.Raw())
	}
}

func runQuery(msg *hl7.Message, path string) {
	loc, err := query.Parse(path)
	if err != nil {
		fatalf("invalid query path %q: %v", path, err)
	}
	raw, ok := loc.Raw(msg)
	if !ok {
		fatalf("query path %q did not resolve in message", path)
	}
	fmt.Println(raw)
}

func runLocate(msg *hl7.Message, offset int) {
	cur, ok := cursor.Locate(msg, offset)
	if !ok {
		fatalf("offset %d is outside every segment", offset)
	}
	fmt.Println(cur.String())
}

func runAck(msg *hl7.Message, code string, useMLLP bool) {
	var (
		reply *builder.Message
		err   error
	)
	ackBuilder := ack.NewBuilder()
	switch code {
	case "AA":
		reply, err = ackBuilder.Accept(msg)
	case "AE":
		reply, err = ackBuilder.Error(msg, fmt.Errorf("application error"))
	case "AR":
		reply, err = ackBuilder.Reject(msg, "application reject")
	default:
		fatalf("unknown ack code %q: want AA, AE, or AR", code)
		return
	}
	if err != nil {
		fatalf("error building ack: %v", err)
	}

	enc := encode.New(encode.WithMLLP(useMLLP))
	out, err := enc.EncodeBuilder(reply)
	if err != nil {
		fatalf("error encoding ack: %v", err)
	}
	os.Stdout.Write(out)
}

func readInput(file string, args []string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "hl7cat: "+format+"\n", args...)
	os.Exit(1)
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, `Usage: hl7cat [flags] [file]

Parse an HL7 v2.x message and locate a byte offset, evaluate a query path,
or generate an acknowledgment. Input is read from --file, the positional
[file] argument, or stdin (in that order of precedence).

Flags:
  -f, --file <file>      HL7 input file.
  -q, --query <path>     Evaluate a query path, e.g. "PID.5.1".
  -locate <offset>       Locate the structural node at a byte offset.
  -ack <AA|AE|AR>        Build an acknowledgment for the message.
  -mllp                  Wrap -ack output in MLLP framing.
  -h, --help             Show this help text.

Examples:
  hl7cat -q PID.5.1 message.hl7
  hl7cat -locate 42 message.hl7
  echo 'MSH|^~\&|App|Fac|||20250101||ADT^A01|1|P|2.7' | hl7cat -ack AA`)
		_ = fs
	}
}
