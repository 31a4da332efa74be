// Command formulac evaluates textual formulas using the formula package.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/formula"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, modeName, localeTag string
		with                              [][2]string
		nl, echo, nocache, nooptimize     bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.StringVar(&modeName, "mode", "compiled", `execution mode: "compiled" or "interpreted"`)
	flag.BoolVar(&nocache, "nocache", false, "disable the formula cache")
	flag.BoolVar(&nooptimize, "nooptimize", false, "disable the constant-folding optimizer")
	flag.StringVar(&localeTag, "locale", "", "BCP 47 locale tag for decimal/argument separators (default invariant)")
	flag.BoolVar(&nl, "n", false, "treat each input line as a separate formula")
	flag.BoolVar(&echo, "echo", false, "print parse trees alongside results")
	flag.Parse()

	var mode formula.ExecutionMode
	switch strings.ToLower(modeName) {
	case "compiled", "":
		mode = formula.Compiled
	case "interpreted":
		mode = formula.Interpreted
	default:
		log.Fatalf("unknown execution mode %q", modeName)
	}

	opts := []formula.Option{formula.WithExecutionMode(mode)}
	if nocache {
		opts = append(opts, formula.WithCache(false))
	}
	if nooptimize {
		opts = append(opts, formula.WithOptimizer(false))
	}
	if localeTag != "" {
		opts = append(opts, formula.WithLocaleTag(localeTag))
	}
	eng, err := formula.NewEngine(opts...)
	if err != nil {
		log.Fatal(err)
	}

	var ins []io.Reader
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	vars := make(map[string]float64, len(with))
	for _, d := range with {
		nm, vl := d[0], d[1]
		r, err := eng.CalculateSimple(vl)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		vars[nm] = r
	}

	var lines []string
	for _, in := range ins {
		r := bufio.NewReader(in)
		if nl {
			for {
				line, err := r.ReadString('\n')
				line = strings.TrimRight(line, "\r\n")
				if line != "" {
					lines = append(lines, line)
				}
				if err != nil {
					break
				}
			}
			continue
		}
		b, err := io.ReadAll(r)
		if err != nil {
			log.Fatal(err)
		}
		text := strings.TrimSpace(string(b))
		if text != "" {
			lines = append(lines, text)
		}
	}

	verb += "\n"
	for _, text := range lines {
		b, err := eng.Formula(text)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		for k, v := range vars {
			b.With(k, v)
		}
		if echo {
			fmt.Printf("%v : ", b)
		}
		result, err := b.Calculate()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf(verb, result)
	}
}

func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
