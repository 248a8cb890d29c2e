// Package console implements a line-oriented parameter console for the
// reduced four-joint arm: set DH constants and a point, then print where
// the point lands after each joint.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gwillem/armkin/pkg/kinematics"
)

// ErrMalformedCommand is reported for lines the console cannot parse.
var ErrMalformedCommand = errors.New("malformed command")

// ErrNegativeLength is reported for a negative a1..a4 assignment.
var ErrNegativeLength = errors.New("link length must not be negative")

// RangeError reports a theta assignment outside the joint's limit.
type RangeError struct {
	Name  string
	Value int
	Limit kinematics.Limit
}

func (e *RangeError) Error() string {
	if float64(e.Value) < e.Limit.Min {
		return fmt.Sprintf("%s lower than allowed value (%g)", e.Name, e.Limit.Min)
	}
	return fmt.Sprintf("%s higher than allowed value (%g)", e.Name, e.Limit.Max)
}

var assignment = regexp.MustCompile(`^([a-z]+[0-9]?)=(-?[0-9]+)$`)

const helpText = `Commands:
  quit            leave the console
  show            print the point after each joint transform
  <name>=<int>    set theta1..4 (degrees), d1..4, a1..4 (not negative) or px, py, pz (mm)
  help            this text`

// Console owns a Store and applies commands to it.
type Console struct {
	store  Store
	limits kinematics.Limits
	out    io.Writer
	logger *log.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithLimits replaces DefaultLimits.
func WithLimits(l kinematics.Limits) Option {
	return func(c *Console) { c.limits = append(kinematics.Limits(nil), l...) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// WithStore sets the initial parameters.
func WithStore(s Store) Option {
	return func(c *Console) { c.store = s }
}

// New returns a console writing to out.
func New(out io.Writer, opts ...Option) *Console {
	c := &Console{
		limits: DefaultLimits,
		out:    out,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns a copy of the current parameters.
func (c *Console) Store() Store {
	return c.store
}

// Banner prints usage hints.
func (c *Console) Banner() {
	fmt.Fprintln(c.out, "Enter 'quit' to quit the application")
	fmt.Fprintln(c.out, "Enter 'show' to show the current result")
	fmt.Fprintf(c.out, "You can enter up to %d Denavit-Hartenberg parameter sets (d4=, a1=, theta2=)\n", NumJoints)
	fmt.Fprintln(c.out, "And you can enter the point to move (px=, py=, pz=)")
}

// Run executes lines from in until quit or end of input.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if c.Execute(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command: %w", err)
	}
	return nil
}

// Execute applies one line and reports whether the session should end.
func (c *Console) Execute(line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case "quit":
		return true
	case "show":
		c.show()
		return false
	case "help":
		fmt.Fprintln(c.out, helpText)
		return false
	}

	if err := c.assign(line); err != nil {
		c.logger.Debug("Rejected command", "line", line, "error", err)
		if errors.Is(err, ErrMalformedCommand) {
			fmt.Fprintf(c.out, "I don't understand the input '%s'\n", line)
		} else {
			fmt.Fprintln(c.out, err)
		}
	}
	return false
}

func (c *Console) assign(line string) error {
	m := assignment.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrMalformedCommand, line)
	}
	name := m[1]
	value, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}

	ptr, joint, ok := c.store.field(name)
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrMalformedCommand, name)
	}
	if strings.HasPrefix(name, "a") && value < 0 {
		return fmt.Errorf("%w: %s=%d", ErrNegativeLength, name, value)
	}
	if joint >= 0 && joint < len(c.limits) {
		lim := c.limits[joint]
		if float64(value) < lim.Min || float64(value) > lim.Max {
			return &RangeError{Name: name, Value: value, Limit: lim}
		}
	}

	*ptr = value
	c.logger.Debug("Parameter set", "name", name, "value", value)
	fmt.Fprintf(c.out, "'%s' is '%d'\n", name, value)
	return nil
}

func (c *Console) show() {
	g, err := c.store.Geometry()
	if err != nil {
		fmt.Fprintf(c.out, "cannot evaluate: %v\n", err)
		return
	}
	chain, err := kinematics.ForwardChain(c.store.Angles(), g)
	if err != nil {
		fmt.Fprintf(c.out, "cannot evaluate: %v\n", err)
		return
	}

	p := c.store.Point()
	for n := 1; n <= NumJoints; n++ {
		fmt.Fprintln(c.out, FormatPoint(n, chain.Point(n, p)))
	}
}
