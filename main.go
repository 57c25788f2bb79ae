package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func newLogger(verbose bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".interleaved.pdf"
}

// printPlan writes one line per output slot, 1-based.
func printPlan(w io.Writer, plan Plan) {
	for i, ref := range plan {
		if ref == Blank {
			fmt.Fprintf(w, "%d: blank\n", i+1)
		} else {
			fmt.Fprintf(w, "%d: page %d\n", i+1, ref)
		}
	}
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("pdf-duplex", flag.ContinueOnError)
	var (
		output    string
		split     int
		reverse   bool
		noReverse bool
		padBlank  bool
		dryRun    bool
		verbose   bool
	)
	fs.StringVar(&output, "o", "", "Ausgabe-PDF (Standard: <eingabe>.interleaved.pdf)")
	fs.StringVar(&output, "output", "", "Ausgabe-PDF (Standard: <eingabe>.interleaved.pdf)")
	fs.IntVar(&split, "s", 0, "1-basierter Index der ersten Rückseite (Standard: Mitte)")
	fs.IntVar(&split, "split", 0, "1-basierter Index der ersten Rückseite (Standard: Mitte)")
	fs.BoolVar(&reverse, "r", false, "zweite Hälfte rückwärts durchlaufen (Standard)")
	fs.BoolVar(&reverse, "reverse-second", false, "zweite Hälfte rückwärts durchlaufen (Standard)")
	fs.BoolVar(&noReverse, "no-reverse-second", false, "zweite Hälfte vorwärts durchlaufen")
	fs.BoolVar(&padBlank, "pad-blank", false, "kürzere Hälfte mit Leerseiten auffüllen")
	fs.BoolVar(&dryRun, "dry-run", false, "nur die Seitenzuordnung ausgeben, nichts schreiben")
	fs.BoolVar(&verbose, "v", false, "Debug-Ausgaben")
	fs.BoolVar(&verbose, "verbose", false, "Debug-Ausgaben")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(verbose)

	input := fs.Arg(0)
	if input == "" {
		log.Error().Msg("Bitte Eingabe-PDF angeben")
		return 2
	}
	if reverse && noReverse {
		log.Error().Msg("Bitte nur eins von --reverse-second und --no-reverse-second angeben")
		return 2
	}
	reverseSecond := !noReverse

	doc, err := openDocument(input)
	if err != nil {
		log.Error().Err(err).Str("input", input).Msg("Eingabe-PDF öffnen fehlgeschlagen")
		if errors.Is(err, iofs.ErrNotExist) {
			return 2
		}
		return 1
	}

	n := doc.pageCount()
	if split == 0 {
		split = defaultSplit(n)
	}
	plan, err := buildPlan(n, split, reverseSecond, padBlank)
	if err != nil {
		log.Error().Err(err).Msg("Ungültige Parameter")
		return 2
	}

	fc, bc := split-1, n-split+1
	log.Debug().Int("pages", n).Int("split", split).
		Int("front", fc).Int("back", bc).
		Bool("reverse_second", reverseSecond).Bool("pad_blank", padBlank).
		Msg("Hälften bestimmt")
	if !padBlank && fc != bc {
		log.Warn().Int("dropped", max(fc, bc)-min(fc, bc)).
			Msg("Ungleiche Hälften ohne --pad-blank, überzählige Seiten werden verworfen")
	}

	if dryRun {
		fmt.Fprintf(stdout, "Input pages: %d | first_half: %d | second_half: %d\n", n, fc, bc)
		printPlan(stdout, plan)
		return 0
	}

	out, err := materialize(doc, plan)
	if err != nil {
		log.Error().Err(err).Msg("Zusammenbauen fehlgeschlagen")
		if errors.Is(err, errInvalidInput) {
			return 2
		}
		return 1
	}

	outPath := output
	if outPath == "" {
		outPath = defaultOutputPath(input)
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		log.Error().Err(err).Str("output", outPath).Msg("Ausgabe schreiben fehlgeschlagen")
		return 1
	}
	log.Info().Str("output", outPath).Int("pages", len(plan)).Msg("Fertig")
	return 0
}
