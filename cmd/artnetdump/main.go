package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/artnet/internal/listener"
	"github.com/danmuck/artnet/internal/protocol"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("artnetdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rawHex := fs.String("hex", "", "decode one hex-encoded datagram")
	catalogPath := fs.String("catalog", "", "decode every [[frame]] of a TOML capture catalog")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch {
	case *catalogPath != "":
		entries, err := loadCatalog(*catalogPath)
		if err != nil {
			fmt.Fprintf(stderr, "artnetdump: %v\n", err)
			return 1
		}
		return dumpCatalog(entries, stdout)
	case *rawHex != "":
		fmt.Fprintln(stdout, describe(*rawHex))
		return 0
	default:
		return dumpLines(stdin, stdout, stderr)
	}
}

// describe decodes one hex datagram and renders the frame or the failure.
func describe(raw string) string {
	buf, err := parseHex(raw)
	if err != nil {
		return "error:hex " + err.Error()
	}
	f, err := protocol.Decode(buf)
	if err != nil {
		return "error:" + listener.Reason(err)
	}
	return f.String()
}

func dumpLines(r io.Reader, stdout, stderr io.Writer) int {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fmt.Fprintln(stdout, describe(line))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(stderr, "artnetdump: read input: %v\n", err)
		return 1
	}
	return 0
}

func dumpCatalog(entries []catalogEntry, stdout io.Writer) int {
	status := 0
	for _, e := range entries {
		got := describe(e.Hex)
		if e.Expect != "" && got != e.Expect {
			fmt.Fprintf(stdout, "%s: %s (MISMATCH want %s)\n", e.Name, got, e.Expect)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s: %s\n", e.Name, got)
	}
	return status
}

func parseHex(raw string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '-':
			return -1
		}
		return r
	}, raw)
	return hex.DecodeString(clean)
}
