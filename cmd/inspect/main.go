package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vesselworks/wasm-bundle/loader"
)

func main() {
	var (
		bundleFile  = flag.String("bundle", "", "Path to bundle archive")
		tag         = flag.String("tag", "", "List units declaring this metadata tag")
		extends     = flag.String("extends", "", "List units derived from this base unit")
		implements  = flag.String("implements", "", "List units implementing this contract")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *bundleFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -bundle <file> [-tag t | -extends b | -implements c]")
		fmt.Fprintln(os.Stderr, "       inspect -bundle <file> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*bundleFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*bundleFile, *tag, *extends, *implements); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(bundleFile, tag, extends, implements string) error {
	ctx := context.Background()
	ld := loader.New()

	var (
		lb  *loader.LoadedBundle
		err error
	)
	switch {
	case tag != "":
		lb, err = ld.LoadWhereTagged(ctx, bundleFile, tag)
	case extends != "":
		lb, err = ld.LoadWhereExtends(ctx, bundleFile, extends)
	case implements != "":
		lb, err = ld.LoadWhereImplements(ctx, bundleFile, implements)
	default:
		lb, err = ld.LoadAll(ctx, bundleFile)
	}
	if err != nil {
		return err
	}
	defer lb.Close(ctx)

	if len(lb.Matches) == 0 {
		fmt.Println("no matching units")
		return nil
	}

	for _, u := range lb.Matches {
		var notes []string
		if len(u.Descriptor.Tags) > 0 {
			notes = append(notes, "tags: "+strings.Join(u.Descriptor.Tags, ", "))
		}
		if len(u.Descriptor.Extends) > 0 {
			notes = append(notes, "extends: "+strings.Join(u.Descriptor.Extends, ", "))
		}
		if len(u.Descriptor.Implements) > 0 {
			notes = append(notes, "implements: "+strings.Join(u.Descriptor.Implements, ", "))
		}
		if len(notes) == 0 {
			fmt.Println(u.Name)
			continue
		}
		fmt.Printf("%s  (%s)\n", u.Name, strings.Join(notes, "; "))
	}
	return nil
}
