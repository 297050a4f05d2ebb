package main

import (
	"fmt"
	"io"
	"strings"

	"newstv/internal/catalog"
)

// remote is what the console drives.
type remote interface {
	SetCountry(code string)
	SetCategory(name string)
	Reload()
}

const consoleHelp = `commands:
  country <code>    switch country (us, gb, in, ca, au)
  category <name>   switch category
  reload            fetch again
  catalog           list countries and categories
  q                 quit
`

// console turns typed lines into controller commands.
type console struct {
	remote remote
	out    io.Writer
}

// handle executes one line and reports whether the viewer asked to quit.
func (c *console) handle(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "q", "quit", "exit":
		return true
	case "r", "reload", "retry":
		c.remote.Reload()
	case "country":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: country <code>")
			return false
		}
		c.remote.SetCountry(strings.ToLower(args[0]))
	case "category":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: category <name>")
			return false
		}
		c.remote.SetCategory(strings.ToLower(args[0]))
	case "catalog":
		writeCatalog(c.out)
	case "help", "?":
		fmt.Fprint(c.out, consoleHelp)
	default:
		fmt.Fprintf(c.out, "unknown command %q\n", cmd)
		fmt.Fprint(c.out, consoleHelp)
	}
	return false
}

func writeCatalog(w io.Writer) {
	fmt.Fprintln(w, "countries:")
	for _, country := range catalog.Countries() {
		fmt.Fprintf(w, "  %-4s %-10s %s\n", country.Code, country.Label, country.Name)
	}
	fmt.Fprintln(w, "categories:")
	for _, cat := range catalog.Categories() {
		fmt.Fprintf(w, "  %-14s %s\n", cat.Code, cat.Label)
	}
}
