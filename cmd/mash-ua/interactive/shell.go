// Package interactive provides the command interface of mash-ua.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/addrspace"
	"github.com/mash-protocol/mash-ua/pkg/service"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

// listSeparator separates the Addresses of one batch. Node identifiers
// never contain whitespace, so " ; " cannot occur inside an Address.
const listSeparator = " ; "

// Shell executes mash-ua commands against a Client.
type Shell struct {
	client *service.Client
	space  *addrspace.Space
	out    io.Writer
	rl     *readline.Instance

	// browse is the last browse while it holds continuation points.
	browse *service.BrowseSession
}

// New creates a Shell that writes to out. Bind must be called before
// the first command.
func New(out io.Writer) *Shell {
	return &Shell{out: out}
}

// NewTerminal creates a Shell that reads commands from the terminal.
func NewTerminal() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ua> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{out: rl.Stdout(), rl: rl}, nil
}

// Bind sets the client that commands run on and the address space whose
// counters the stats command reports. space may be nil.
func (s *Shell) Bind(client *service.Client, space *addrspace.Space) {
	s.client = client
	s.space = space
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop. It requires a Shell created
// by NewTerminal.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		err = s.Execute(ctx, line)
		if errors.Is(err, ErrQuit) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help", "?":
		s.printHelp()
		return nil
	case "resolve", "res":
		return s.cmdResolve(ctx, rest)
	case "translate", "t":
		return s.cmdTranslate(ctx, rest)
	case "read", "r":
		return s.cmdRead(ctx, ua.AttributeValue, rest)
	case "attr", "a":
		name, addrs, _ := strings.Cut(rest, " ")
		attr, ok := ua.ParseAttributeID(name)
		if !ok {
			return fmt.Errorf("unknown attribute: %q", name)
		}
		return s.cmdRead(ctx, attr, addrs)
	case "write", "w":
		return s.cmdWrite(ctx, rest)
	case "call", "c":
		return s.cmdCall(ctx, rest)
	case "browse", "b":
		return s.cmdBrowse(ctx, rest)
	case "next", "n":
		return s.cmdNext(ctx, false)
	case "release":
		return s.cmdNext(ctx, true)
	case "cache":
		return s.cmdCache(rest)
	case "stats":
		s.cmdStats()
		return nil
	case "quit", "exit", "q":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
UA Client Commands:
  Resolution:
    resolve <addr> [; <addr>...]      - Resolve Addresses to node IDs
    translate <addr>                  - Translate one relative Address, bypassing the cache
    cache [purge]                     - Show or purge the resolution cache

  Services:
    read <addr> [; <addr>...]         - Read the Value attribute
    attr <name> <addr> [; <addr>...]  - Read an attribute (NodeId, BrowseName, DisplayName, ...)
    write <value> <addr>              - Write the Value attribute
    call <object> ; <method> [; args] - Call a method (args are space separated)
    browse <addr> [; <addr>...]       - Browse forward hierarchical references
    next                              - Continue the last browse and show the merged references
    release                           - Release the continuation points of the last browse

  General:
    stats                             - Show requests per service
    help                              - Show this help
    quit                              - Exit

  Address Format:
    <nodeid>@<server-uri> [<relative path>] [| <relative path>...]
    e.g., i=85@urn:plant /2:Plant/2:Boiler/2:Temperature`)
}

// parseAddresses parses a " ; " separated list of Addresses.
func parseAddresses(input string) ([]address.Address, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("address required")
	}
	parts := strings.Split(input, listSeparator)
	addrs := make([]address.Address, len(parts))
	for i, p := range parts {
		a, err := address.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("address %d: %w", i, err)
		}
		addrs[i] = a
	}
	return addrs, nil
}

// parseValue converts a literal to int, float64, bool or string, in that
// order of preference. Quotes force a string.
func parseValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func (s *Shell) cmdResolve(ctx context.Context, input string) error {
	addrs, err := parseAddresses(input)
	if err != nil {
		return err
	}

	res, err := s.client.Resolve(ctx, addrs)
	if err != nil {
		return err
	}
	for i, status := range res.Statuses {
		if status.IsGood() {
			fmt.Fprintf(s.out, "[%d] %s %s\n", i, status, res.Nodes[i])
		} else {
			fmt.Fprintf(s.out, "[%d] %s\n", i, status)
		}
	}
	return nil
}

func (s *Shell) cmdTranslate(ctx context.Context, input string) error {
	a, err := address.Parse(input)
	if err != nil {
		return err
	}
	if a.Depth() != 1 {
		return errors.New("translate needs a single relative path on an absolute start")
	}

	results, err := s.client.TranslateBrowsePaths(ctx, []ua.BrowsePath{{
		StartingNode: a.StartingAddress().ExpandedNodeID(),
		RelativePath: a.RelativePath(),
	}})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n", results[0].StatusCode)
	for _, t := range results[0].Targets {
		if t.IsFullyResolved() {
			fmt.Fprintf(s.out, "    %s (complete)\n", t.TargetID)
		} else {
			fmt.Fprintf(s.out, "    %s (remaining from element %d)\n", t.TargetID, t.RemainingPathIndex)
		}
	}
	return nil
}

func (s *Shell) cmdRead(ctx context.Context, attr ua.AttributeID, input string) error {
	addrs, err := parseAddresses(input)
	if err != nil {
		return err
	}

	targets := make([]*service.ReadTarget, len(addrs))
	for i, a := range addrs {
		targets[i] = service.NewReadTarget(a, attr)
	}
	values, err := s.client.Read(ctx, targets)
	if err != nil {
		return err
	}
	for i, v := range values {
		if v.StatusCode.IsGood() {
			fmt.Fprintf(s.out, "[%d] %s %v\n", i, v.StatusCode, v.Value)
		} else {
			fmt.Fprintf(s.out, "[%d] %s\n", i, v.StatusCode)
		}
	}
	return nil
}

func (s *Shell) cmdWrite(ctx context.Context, input string) error {
	literal, rest, ok := strings.Cut(input, " ")
	if !ok {
		return errors.New("usage: write <value> <addr>")
	}
	addrs, err := parseAddresses(rest)
	if err != nil {
		return err
	}

	value := parseValue(literal)
	targets := make([]*service.WriteTarget, len(addrs))
	for i, a := range addrs {
		targets[i] = service.NewWriteTarget(a, value)
	}
	results, err := s.client.Write(ctx, targets)
	if err != nil {
		return err
	}
	for i, status := range results {
		fmt.Fprintf(s.out, "[%d] %s\n", i, status)
	}
	return nil
}

func (s *Shell) cmdCall(ctx context.Context, input string) error {
	parts := strings.SplitN(input, listSeparator, 3)
	if len(parts) < 2 {
		return errors.New("usage: call <object> ; <method> [; args]")
	}
	object, err := address.Parse(parts[0])
	if err != nil {
		return fmt.Errorf("object: %w", err)
	}
	method, err := address.Parse(parts[1])
	if err != nil {
		return fmt.Errorf("method: %w", err)
	}

	var args []any
	if len(parts) == 3 {
		for _, f := range strings.Fields(parts[2]) {
			args = append(args, parseValue(f))
		}
	}

	results, err := s.client.Call(ctx, []*service.CallTarget{service.NewCallTarget(object, method, args...)})
	if err != nil {
		return err
	}
	r := results[0]
	if r.StatusCode.IsGood() {
		fmt.Fprintf(s.out, "%s %v\n", r.StatusCode, r.OutputArguments)
	} else {
		fmt.Fprintf(s.out, "%s\n", r.StatusCode)
	}
	return nil
}

func (s *Shell) cmdBrowse(ctx context.Context, input string) error {
	addrs, err := parseAddresses(input)
	if err != nil {
		return err
	}

	targets := make([]*service.BrowseTarget, len(addrs))
	for i, a := range addrs {
		targets[i] = service.NewBrowseTarget(a)
	}
	sess, err := s.client.Browse(ctx, targets)
	if err != nil {
		return err
	}

	s.browse = sess
	indices := make([]int, len(sess.Results))
	for i := range indices {
		indices[i] = i
	}
	s.printBrowse(indices)
	return nil
}

func (s *Shell) cmdNext(ctx context.Context, release bool) error {
	if s.browse == nil || len(s.browse.Pending()) == 0 {
		return errors.New("no continuation points")
	}
	pending := s.browse.Pending()

	if release {
		if err := s.browse.Release(ctx); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "released %d continuation point(s)\n", len(pending))
		s.browse = nil
		return nil
	}

	if err := s.browse.Continue(ctx); err != nil {
		return err
	}
	s.printBrowse(pending)
	return nil
}

// printBrowse prints the merged results of the given targets of the last
// browse and forgets the browse once nothing is left to continue.
func (s *Shell) printBrowse(indices []int) {
	for _, i := range indices {
		r := &s.browse.Results[i]
		more := ""
		if r.HasMore() {
			more = " (more)"
		}
		fmt.Fprintf(s.out, "[%d] %s %d references%s\n", i, r.Status, len(r.References), more)
		s.printReferences(r.References)
	}
	if left := len(s.browse.Pending()); left > 0 {
		fmt.Fprintf(s.out, "%d continuation point(s) left; use 'next' or 'release'\n", left)
		return
	}
	s.browse = nil
}

func (s *Shell) printReferences(refs []ua.ReferenceDescription) {
	for _, ref := range refs {
		name := ua.ReferenceTypeName(ref.ReferenceTypeID)
		if name == "" {
			name = ref.ReferenceTypeID.String()
		}
		arrow := "->"
		if !ref.IsForward {
			arrow = "<-"
		}
		fmt.Fprintf(s.out, "    %s %-14s %-16s %s (%s)\n", arrow, name, ref.BrowseName, ref.NodeID, ref.NodeClass)
	}
}

func (s *Shell) cmdCache(arg string) error {
	c := s.client.Cache()
	switch arg {
	case "":
		fmt.Fprintf(s.out, "%d cached entries\n", c.Len())
	case "purge":
		c.Purge()
		fmt.Fprintln(s.out, "cache purged")
	default:
		return fmt.Errorf("unknown cache command: %s", arg)
	}
	return nil
}

func (s *Shell) cmdStats() {
	if s.space == nil {
		fmt.Fprintln(s.out, "no address space")
		return
	}
	stats := s.space.Stats()
	kinds := make([]ua.ServiceKind, 0, len(stats))
	for k := range stats {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Fprintf(s.out, "Requests: %d\n", s.space.Calls())
	for _, k := range kinds {
		fmt.Fprintf(s.out, "  %-30s %d\n", k.String()+":", stats[k])
	}
}
