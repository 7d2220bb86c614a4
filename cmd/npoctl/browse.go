package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dalemusser/npoconnect/internal/app/dataset"
	"github.com/dalemusser/npoconnect/internal/app/system/directory"
)

const browseHelp = `Commands:
  name <text>      filter by name (applied after you stop typing)
  city <city>      filter by city, empty to clear
  sector <sector>  filter by sector, empty to clear
  year <year>      filter by registration year, empty to clear
  page <n>         go to page n
  next | prev      move one page
  view card|table  switch presentation
  show <id>        print one organization
  facets           list filter choices
  clear            remove every filter
  quit             leave`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the directory interactively",
	Long: `Browse reads one command per line and prints the matching page after each
change. Name filtering waits for a short quiet period, so pasting or typing
several name commands in a row only runs the last one.

` + browseHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgs, err := loadDataset()
		if err != nil {
			return err
		}
		b := newBrowser(orgs, cmd.OutOrStdout())
		defer b.Close()
		return b.Run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// lockedWriter serialises output from the command loop and the debounce timer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type browser struct {
	orgs *dataset.Provider
	page *directory.Page
	out  *lockedWriter
}

var errQuit = errors.New("quit")

func newBrowser(orgs *dataset.Provider, w io.Writer, opts ...directory.PageOption) *browser {
	b := &browser{orgs: orgs, out: &lockedWriter{w: w}}
	opts = append([]directory.PageOption{directory.WithOnChange(b.render)}, opts...)
	b.page = directory.NewPage(orgs.All(), opts...)
	return b
}

func (b *browser) Close() { b.page.Close() }

// Run executes commands from r until EOF or quit.
func (b *browser) Run(r io.Reader) error {
	b.render(b.page.Snapshot())
	fmt.Fprintln(b.out, `Type "help" for commands.`)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		err := b.exec(sc.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(b.out, "error:", err)
		}
	}
	return sc.Err()
}

func (b *browser) exec(line string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "":
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
	case "name":
		b.page.SetName(arg)
	case "city":
		b.render(b.page.SetCity(arg))
	case "sector":
		b.render(b.page.SetSector(arg))
	case "year":
		b.render(b.page.SetYear(arg))
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return errors.New("page must be a positive number")
		}
		b.render(b.page.SetPage(n))
	case "next", "prev":
		v := b.page.Snapshot()
		n := v.Page + 1
		if verb == "prev" {
			n = v.Page - 1
		}
		if n < 1 || n > v.TotalPages {
			return fmt.Errorf("no %s page", verb)
		}
		b.render(b.page.SetPage(n))
	case "view":
		b.render(b.page.SetView(directory.ParseViewMode(arg)))
	case "show":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid organization id %q", arg)
		}
		o, ok := b.orgs.ByID(id)
		if !ok {
			return fmt.Errorf("organization %d not found", id)
		}
		b.out.mu.Lock()
		printOrganization(b.out.w, o)
		b.out.mu.Unlock()
	case "facets":
		return printFacets(b.out, b.orgs.Facets())
	case "clear":
		b.page.SetCity("")
		b.page.SetSector("")
		b.page.SetYear("")
		b.page.SetName("")
	default:
		return fmt.Errorf("unknown command %q", verb)
	}
	return nil
}

func (b *browser) render(v directory.View) {
	b.out.mu.Lock()
	defer b.out.mu.Unlock()

	fmt.Fprintln(b.out.w)
	if f := v.Filters; f != (directory.FilterState{}) {
		fmt.Fprintf(b.out.w, "Filters: name=%q city=%q sector=%q year=%q\n", f.Name, f.City, f.Sector, f.Year)
	}
	_ = printView(b.out.w, v)
}
