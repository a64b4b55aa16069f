package wakey

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Menu is the management-mode console loop: show the server's clock
// and preferences, let the user change them. Server hiccups are
// printed and retried on the next iteration, never fatal.
type Menu struct {
	client *PrefClient
	in     *bufio.Reader
	out    io.Writer
	clear  func(io.Writer)

	// Reload, when set, runs at the top of every iteration and may
	// swap the client (e.g. after a settings file edit).
	Reload func() *PrefClient
}

func NewMenu(client *PrefClient, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		client: client,
		in:     bufio.NewReader(in),
		out:    out,
		clear:  clearScreen,
	}
}

// Run loops until the user picks the quit entry or input ends.
func (m *Menu) Run() error {
	for {
		if m.Reload != nil {
			if c := m.Reload(); c != nil {
				m.client = c
			}
		}
		m.clear(m.out)

		now, err := m.client.GetTimezoneTime()
		if err != nil {
			if !m.retry(err) {
				return nil
			}
			continue
		}
		fmt.Fprintf(m.out, "Current time in chosen timezone: %s\n", now)

		prefs, err := m.client.GetUserPreferences()
		if err != nil {
			if !m.retry(err) {
				return nil
			}
			continue
		}
		m.showPreferences(prefs)

		choice, err := m.promptInt("Input the number of the setting you wish to change (0 to quit): ")
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case 1:
			err = m.toggleActiveState(prefs.ActiveState)
		case 2:
			err = m.changeWakeupTime()
		case 3:
			err = m.changeInt("Please input new wakeup window (in minutes): ", m.client.SetWakeupWindow)
		case 4:
			err = m.changeInt("Please input new UTC offset: ", m.client.SetUTCOffset)
		case 5:
			err = m.changeInt("Please input new grace period: ", m.client.SetGracePeriod)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			if !m.retry(err) {
				return nil
			}
		}
	}
}

func (m *Menu) showPreferences(p Preferences) {
	fmt.Fprintln(m.out, "These are your current preferences stored on the server:")
	active := "No"
	if p.ActiveState == 1 {
		active = "Yes"
	}
	fmt.Fprintf(m.out, "1.\tActive:\t\t%s\n", active)
	fmt.Fprintf(m.out, "2.\tWakeup time:\t%02d:%02d\n", p.WakeupHour, p.WakeupMinute)
	fmt.Fprintf(m.out, "3.\tWakeup window:\t%d minutes\n", p.WakeupWindow)
	prefix := ""
	if p.UTCOffset > 0 {
		prefix = "+"
	}
	fmt.Fprintf(m.out, "4.\tUTC offset:\t%s%d\n", prefix, p.UTCOffset)
	if p.HasGracePeriod {
		fmt.Fprintf(m.out, "5.\tGrace period:\t%d\n", p.GracePeriod)
	} else {
		fmt.Fprintf(m.out, "5.\tGrace period:\tnot set\n")
	}
}

func (m *Menu) toggleActiveState(current int) error {
	if current == 0 {
		return m.client.SetActiveState(1)
	}
	return m.client.SetActiveState(0)
}

func (m *Menu) changeWakeupTime() error {
	fmt.Fprintln(m.out, "Changing wakeup time.")
	hour, err := m.promptInt("Please input hour: ")
	if err != nil {
		return err
	}
	minute, err := m.promptInt("Please input minute: ")
	if err != nil {
		return err
	}
	if err := m.client.SetWakeupHour(hour); err != nil {
		return err
	}
	return m.client.SetWakeupMinute(minute)
}

func (m *Menu) changeInt(prompt string, set func(int) error) error {
	value, err := m.promptInt(prompt)
	if err != nil {
		return err
	}
	return set(value)
}

// promptInt asks until the user enters a valid integer. Only io errors
// (closed stdin) propagate.
func (m *Menu) promptInt(prompt string) (int, error) {
	for {
		fmt.Fprint(m.out, prompt)
		line, err := m.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			fmt.Fprintln(m.out, "You did not enter a correct value. Reason: empty.")
			continue
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			fmt.Fprintln(m.out, "You did not enter a correct value. Reason: not a number.")
			continue
		}
		return n, nil
	}
}

// retry reports the error and waits for enter; false means input ended
// and the loop should stop.
func (m *Menu) retry(err error) bool {
	fmt.Fprintf(m.out, "Server error: %v\n", err)
	fmt.Fprint(m.out, "Press enter to retry.")
	_, readErr := m.in.ReadString('\n')
	return readErr == nil
}

// clearScreen resets the terminal between menu iterations.
func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}
