package addrspace

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// LoadError reports a problem in an address space file.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Line > 0 {
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + msg
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

type spaceSpec struct {
	Servers []serverSpec `yaml:"servers"`
}

type serverSpec struct {
	URI   string     `yaml:"uri"`
	Nodes []nodeSpec `yaml:"nodes"`
}

type nodeSpec struct {
	ID          string          `yaml:"id"`
	BrowseName  string          `yaml:"browse_name"`
	DisplayName string          `yaml:"display_name"`
	Description string          `yaml:"description"`
	Class       string          `yaml:"class"`
	Parent      string          `yaml:"parent"`
	ParentRef   string          `yaml:"parent_ref"`
	Value       any             `yaml:"value"`
	Writable    bool            `yaml:"writable"`
	Method      string          `yaml:"method"`
	References  []referenceSpec `yaml:"references"`

	line int
}

// UnmarshalYAML records the line of the node for error messages.
func (n *nodeSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain nodeSpec
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.line = value.Line
	return nil
}

type referenceSpec struct {
	Type   string `yaml:"type"`
	Target string `yaml:"target"`
	Name   string `yaml:"name"`
	Class  string `yaml:"class"`
}

// Parse builds a Space from YAML. See the package documentation for the
// format.
func Parse(data []byte, config Config) (*Space, error) {
	var doc spaceSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if len(doc.Servers) == 0 {
		return nil, &LoadError{Message: "at least one server is required"}
	}

	s, err := New(config)
	if err != nil {
		return nil, &LoadError{Message: "invalid config", Cause: err}
	}

	for _, srv := range doc.Servers {
		if _, err := s.AddServer(srv.URI); err != nil {
			return nil, &LoadError{Message: "invalid server", Cause: err}
		}
	}

	// Nodes first, so that links may point forward in the file.
	ids := make(map[*nodeSpec]ua.NodeID)
	for i := range doc.Servers {
		srv := &doc.Servers[i]
		for j := range srv.Nodes {
			ns := &srv.Nodes[j]
			n, err := buildNode(ns)
			if err != nil {
				return nil, err
			}
			if err := s.AddNode(srv.URI, n); err != nil {
				return nil, &LoadError{Line: ns.line, Message: "invalid node", Cause: err}
			}
			ids[ns] = n.ID
		}
	}

	for i := range doc.Servers {
		srv := &doc.Servers[i]
		for j := range srv.Nodes {
			ns := &srv.Nodes[j]
			if err := linkNode(s, srv.URI, ids[ns], ns); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// Load reads a Space from a YAML file.
func Load(path string, config Config) (*Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	s, err := Parse(data, config)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return s, nil
}

func buildNode(ns *nodeSpec) (*Node, error) {
	id, err := ua.ParseNodeID(ns.ID)
	if err != nil {
		return nil, &LoadError{Line: ns.line, Message: "invalid node id", Cause: err}
	}
	name, err := ua.ParseQualifiedName(ns.BrowseName)
	if err != nil {
		return nil, &LoadError{Line: ns.line, Message: "invalid browse name", Cause: err}
	}
	class, ok := ua.ParseNodeClass(ns.Class)
	if !ok {
		return nil, &LoadError{Line: ns.line, Message: "unknown node class " + strconv.Quote(ns.Class)}
	}
	if ns.Method != "" && class != ua.NodeClassMethod {
		return nil, &LoadError{Line: ns.line, Message: "method set on a " + class.String() + " node"}
	}

	return &Node{
		ID:          id,
		Class:       class,
		BrowseName:  name,
		DisplayName: ns.DisplayName,
		Description: ns.Description,
		Value:       ns.Value,
		Writable:    ns.Writable,
		Method:      ns.Method,
	}, nil
}

func linkNode(s *Space, uri string, id ua.NodeID, ns *nodeSpec) error {
	if ns.Parent != "" {
		parent, err := ua.ParseNodeID(ns.Parent)
		if err != nil {
			return &LoadError{Line: ns.line, Message: "invalid parent", Cause: err}
		}
		refType := ua.Organizes
		if ns.ParentRef != "" {
			if refType, err = parseReferenceType(ns.ParentRef); err != nil {
				return &LoadError{Line: ns.line, Message: "invalid parent_ref", Cause: err}
			}
		}
		err = s.AddReference(uri, parent, refType, ua.NewExpandedNodeID(id, uri), ua.QualifiedName{}, ua.NodeClassUnspecified)
		if err != nil {
			return &LoadError{Line: ns.line, Message: "invalid parent", Cause: err}
		}
	}

	for _, rs := range ns.References {
		refType, err := parseReferenceType(rs.Type)
		if err != nil {
			return &LoadError{Line: ns.line, Message: "invalid reference type", Cause: err}
		}
		target, err := ua.ParseExpandedNodeID(rs.Target)
		if err != nil {
			return &LoadError{Line: ns.line, Message: "invalid reference target", Cause: err}
		}

		var name ua.QualifiedName
		if rs.Name != "" {
			if name, err = ua.ParseQualifiedName(rs.Name); err != nil {
				return &LoadError{Line: ns.line, Message: "invalid reference name", Cause: err}
			}
		}
		class := ua.NodeClassUnspecified
		if rs.Class != "" {
			var ok bool
			if class, ok = ua.ParseNodeClass(rs.Class); !ok {
				return &LoadError{Line: ns.line, Message: "unknown node class " + strconv.Quote(rs.Class)}
			}
		}

		if err := s.AddReference(uri, id, refType, target, name, class); err != nil {
			return &LoadError{Line: ns.line, Message: "invalid reference", Cause: err}
		}
	}
	return nil
}

// parseReferenceType accepts a well-known reference type name or a node id.
func parseReferenceType(s string) (ua.NodeID, error) {
	if id, ok := ua.ReferenceTypeByName(s); ok {
		return id, nil
	}
	return ua.ParseNodeID(s)
}
