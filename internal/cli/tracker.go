package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/ports"
	"strconv"
	"strings"
	"time"
)

// Tracker is the interactive status menu over a routed service day.
type Tracker struct {
	Depot ports.DeliveryTracker
	Day   time.Time
	In    io.Reader
	Out   io.Writer
}

// errQuit ends the session when the input is exhausted mid-prompt.
var errQuit = errors.New("input closed")

// Run shows the menu until the user exits, the input ends, or ctx is cancelled.
// Invalid choices and malformed input re-prompt instead of ending the session.
func (t *Tracker) Run(ctx context.Context) error {
	sc := bufio.NewScanner(t.In)

	fmt.Fprintln(t.Out, "Welcome to the Parcel Service Tracking System")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(t.Out, "\nOptions:\n"+
			"1. View status of a specific package\n"+
			"2. View status of all packages at a specific time\n"+
			"3. View total mileage of all trucks\n"+
			"4. Exit\n")

		choice, err := t.prompt(sc, "Please choose an option (1-4): ")
		if err != nil {
			return t.closed(sc, err)
		}

		switch choice {
		case "1":
			err = t.showPackage(sc)
		case "2":
			err = t.showAll(sc)
		case "3":
			fmt.Fprintln(t.Out)
			err = t.Depot.MileageReport(t.Out)
		case "4":
			fmt.Fprintln(t.Out, "Exiting the system. Thank you!")
			return nil
		default:
			fmt.Fprintln(t.Out, "Invalid option. Please enter a number between 1 and 4.")
		}
		if err != nil {
			return t.closed(sc, err)
		}
	}
}

func (t *Tracker) showPackage(sc *bufio.Scanner) error {
	raw, err := t.prompt(sc, "Enter the package ID: ")
	if err != nil {
		return err
	}
	id, convErr := strconv.Atoi(raw)

	at, err := t.promptClock(sc, "Enter the time to check status (HH:MM:SS): ")
	if err != nil {
		return err
	}

	if convErr != nil {
		fmt.Fprintln(t.Out, "Invalid input. Please enter a valid package ID and time.")
		return nil
	}

	pkg, err := t.Depot.Package(id, at)
	if errors.Is(err, ports.ErrNotFound) {
		fmt.Fprintf(t.Out, "No package with ID %d.\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(t.Out, "\nPackage Status:")
	fmt.Fprintln(t.Out, pkg.String())
	return nil
}

func (t *Tracker) showAll(sc *bufio.Scanner) error {
	at, err := t.promptClock(sc, "Enter the time to check status of all packages (HH:MM:SS): ")
	if err != nil {
		return err
	}

	fmt.Fprintln(t.Out, "\nStatus of All Packages:")
	return t.Depot.StatusReport(t.Out, at)
}

// promptClock asks until a valid HH:MM:SS time is entered.
func (t *Tracker) promptClock(sc *bufio.Scanner, msg string) (time.Time, error) {
	for {
		raw, err := t.prompt(sc, msg)
		if err != nil {
			return time.Time{}, err
		}

		at, err := domain.ParseClock(t.Day, raw)
		if err == nil {
			return at, nil
		}
		fmt.Fprintln(t.Out, "Invalid time format. Please use HH:MM:SS.")
	}
}

func (t *Tracker) prompt(sc *bufio.Scanner, msg string) (string, error) {
	fmt.Fprint(t.Out, msg)
	if !sc.Scan() {
		return "", errQuit
	}
	return strings.TrimSpace(sc.Text()), nil
}

// closed maps end of input to a clean exit and surfaces read failures.
func (t *Tracker) closed(sc *bufio.Scanner, err error) error {
	if !errors.Is(err, errQuit) {
		return err
	}
	if scanErr := sc.Err(); scanErr != nil {
		return fmt.Errorf("read input: %w", scanErr)
	}
	fmt.Fprintln(t.Out)
	return nil
}
