package wakey

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// PrefClient talks to the alarm server: one TCP connection per
// request, newline-free plaintext commands, plaintext responses.
type PrefClient struct {
	addr    string
	timeout time.Duration
}

func NewPrefClient(address string, port int) *PrefClient {
	return &PrefClient{
		addr:    net.JoinHostPort(address, strconv.Itoa(port)),
		timeout: 5 * time.Second,
	}
}

// Preferences is the server-side alarm configuration. GracePeriod is
// optional on older server variants; HasGracePeriod reports whether
// the server sent it.
type Preferences struct {
	ActiveState    int
	WakeupHour     int
	WakeupMinute   int
	WakeupWindow   int
	UTCOffset      int
	GracePeriod    int
	HasGracePeriod bool
}

// ClockTime is the server's current time in its configured timezone.
type ClockTime struct {
	Hour, Minute, Second int
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (c *PrefClient) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.addr, err)
	}
	_ = conn.SetDeadline(time.Now().Add(c.timeout))
	return conn, nil
}

// send issues a fire-and-forget command; no response is expected.
func (c *PrefClient) send(command string) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(command)); err != nil {
		return fmt.Errorf("send %q: %w", command, err)
	}
	return nil
}

// request issues a command and reads the single response message.
func (c *PrefClient) request(command string) (string, error) {
	conn, err := c.dial()
	if err != nil {
		return "", err
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(command)); err != nil {
		return "", fmt.Errorf("send %q: %w", command, err)
	}
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return "", fmt.Errorf("read reply to %q: %w", command, err)
	}
	return string(buf[:n]), nil
}

// GetAlarmState reports whether the alarm is currently sounding.
func (c *PrefClient) GetAlarmState() (int, error) {
	reply, err := c.request("get_alarm_state")
	if err != nil {
		return 0, err
	}
	state, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return 0, fmt.Errorf("bad alarm state %q: %w", reply, err)
	}
	return state, nil
}

func (c *PrefClient) SetAlarmState(state int) error {
	return c.send(fmt.Sprintf("set_alarm_state %d", state))
}

func (c *PrefClient) SetActiveState(state int) error {
	return c.send(fmt.Sprintf("set_active_state %d", state))
}

func (c *PrefClient) SetWakeupHour(hour int) error {
	return c.send(fmt.Sprintf("set_wakeup_hour %d", hour))
}

func (c *PrefClient) SetWakeupMinute(minute int) error {
	return c.send(fmt.Sprintf("set_wakeup_minute %d", minute))
}

func (c *PrefClient) SetWakeupWindow(minutes int) error {
	return c.send(fmt.Sprintf("set_wakeup_window %d", minutes))
}

func (c *PrefClient) SetUTCOffset(offset int) error {
	return c.send(fmt.Sprintf("set_utc_offset %d", offset))
}

func (c *PrefClient) SetGracePeriod(minutes int) error {
	return c.send(fmt.Sprintf("set_grace_period %d", minutes))
}

// GetUserPreferences fetches and decodes the server's preference map.
func (c *PrefClient) GetUserPreferences() (Preferences, error) {
	reply, err := c.request("get_user_preferences")
	if err != nil {
		return Preferences{}, err
	}
	prefs, err := parsePreferences(reply)
	if err != nil {
		return Preferences{}, fmt.Errorf("bad preferences %q: %w", reply, err)
	}
	return prefs, nil
}

// GetTimezoneTime fetches the current time in the server's timezone.
func (c *PrefClient) GetTimezoneTime() (ClockTime, error) {
	reply, err := c.request("get_timezone_time")
	if err != nil {
		return ClockTime{}, err
	}
	t, err := parseClockTriple(reply)
	if err != nil {
		return ClockTime{}, fmt.Errorf("bad timezone time %q: %w", reply, err)
	}
	return t, nil
}

// parsePreferences decodes the server's dict-literal reply, e.g.
// {'active_state': 1, 'wakeup_time_hour': 7, ...}.
func parsePreferences(s string) (Preferences, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return Preferences{}, fmt.Errorf("not a mapping literal")
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")

	fields := make(map[string]int)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			return Preferences{}, fmt.Errorf("malformed entry %q", item)
		}
		key = strings.Trim(strings.TrimSpace(key), `'"`)
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Preferences{}, fmt.Errorf("entry %q: %w", item, err)
		}
		fields[key] = n
	}

	var p Preferences
	for _, req := range []string{
		"active_state", "wakeup_time_hour", "wakeup_time_minute",
		"wakeup_window", "utc_offset",
	} {
		if _, ok := fields[req]; !ok {
			return Preferences{}, fmt.Errorf("missing key %q", req)
		}
	}
	p.ActiveState = fields["active_state"]
	p.WakeupHour = fields["wakeup_time_hour"]
	p.WakeupMinute = fields["wakeup_time_minute"]
	p.WakeupWindow = fields["wakeup_window"]
	p.UTCOffset = fields["utc_offset"]
	p.GracePeriod, p.HasGracePeriod = fields["grace_period"]
	return p, nil
}

// parseClockTriple decodes the server's [hour, minute, second] reply.
func parseClockTriple(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return ClockTime{}, fmt.Errorf("not a list literal")
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"), ",")
	if len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("want 3 elements, got %d", len(parts))
	}
	var vals [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return ClockTime{}, fmt.Errorf("element %d: %w", i, err)
		}
		vals[i] = n
	}
	return ClockTime{Hour: vals[0], Minute: vals[1], Second: vals[2]}, nil
}
