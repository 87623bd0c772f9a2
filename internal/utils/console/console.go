package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/adamdince/ShopifyAuditor/internal/core/check"
)

var (
	pass = color.New(color.FgHiGreen, color.Bold)
	warn = color.New(color.FgHiYellow, color.Bold)
	fail = color.New(color.FgHiRed, color.Bold)
)

// Narrator prints each result as "STATUS: test - details".
type Narrator struct {
	mu sync.Mutex
	w  io.Writer
}

func NewNarrator(w io.Writer) *Narrator {
	if w == nil {
		w = os.Stdout
	}
	return &Narrator{w: w}
}

func (n *Narrator) Print(r check.Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "%s: %s - %s\n", paint(r.Status), r.Test, r.Details)
}

func paint(s check.Status) string {
	switch s {
	case check.StatusPass:
		return pass.Sprint(s)
	case check.StatusWarn:
		return warn.Sprint(s)
	case check.StatusFail:
		return fail.Sprint(s)
	default:
		return string(s)
	}
}
