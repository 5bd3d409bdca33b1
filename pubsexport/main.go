package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/splashpage/splash/internal/pubs"
)

func main() {
	in := flag.String("in", "-", "publication records as a JSON array; - reads stdin")
	out := flag.String("out", "publications.md", "markdown output path; - writes stdout")
	limit := flag.Int("n", pubs.DefaultLimit, "number of publications to include")
	scholarID := flag.String("scholar-id", os.Getenv("SPLASH_SCHOLAR_ID"), "Google Scholar user id for the footer link; also configurable via SPLASH_SCHOLAR_ID")
	flag.Parse()

	if err := run(*in, *out, *limit, *scholarID); err != nil {
		fmt.Fprintln(os.Stderr, "pubsexport:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, limit int, scholarID string) error {
	var r io.Reader = os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	records, err := pubs.Read(bufio.NewReader(r))
	if err != nil {
		return err
	}

	if outPath == "-" {
		return pubs.Write(os.Stdout, records, limit, scholarID)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := pubs.Write(f, records, limit, scholarID); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
