package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"archrypt/internal/ui"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message before printing
// it, so output formatting stays consistent across commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// spinnerObserver feeds pipeline progress into the spinner's suffix as a
// "(done/total)" counter.
type spinnerObserver struct {
	s     *spinner.Spinner
	label string
	total int
	done  int
}

func newSpinnerObserver(s *spinner.Spinner, label string) *spinnerObserver {
	return &spinnerObserver{s: s, label: label}
}

func (o *spinnerObserver) Begin(total int) {
	o.total = total
	o.s.Suffix = fmt.Sprintf(" %s (0/%d)", o.label, o.total)
}

func (o *spinnerObserver) Advance() {
	o.done++
	o.s.Suffix = fmt.Sprintf(" %s (%d/%d)", o.label, o.done, o.total)
}

func (o *spinnerObserver) End() {
	o.s.Suffix = fmt.Sprintf(" %s (%d/%d)", o.label, o.done, o.total)
}
