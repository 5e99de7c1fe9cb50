package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

type palette struct {
	out *termenv.Output
}

var style = palette{out: termenv.NewOutput(os.Stdout)}

func (p palette) paint(s, hex string) string {
	return p.out.String(s).Foreground(p.out.Color(hex)).String()
}

func (p palette) path(s string) string   { return p.out.String(s).Bold().String() }
func (p palette) accent(s string) string { return p.paint(s, "#5fafff") }
func (p palette) warn(s string) string   { return p.paint(s, "#ff8700") }
func (p palette) dim(s string) string    { return p.out.String(s).Faint().String() }

// height colours a height green above zero and brown below it.
func (p palette) height(h float32) string {
	s := fmt.Sprintf("%.4f", h)
	if h < 0 {
		return p.paint(s, "#af875f")
	}
	return p.paint(s, "#87d75f")
}
