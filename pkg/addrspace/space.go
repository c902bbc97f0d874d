package addrspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Address space errors.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrDuplicateServer = errors.New("duplicate server")
	ErrDuplicateNode   = errors.New("duplicate node")
	ErrUnknownServer   = errors.New("unknown server")
	ErrUnknownNode     = errors.New("unknown node")
)

// MethodFunc implements a method node. It receives the object the method
// was called on and the input arguments. A returned error that carries a
// status code (see ua.StatusOf) becomes the call's status.
type MethodFunc func(ctx context.Context, object ua.NodeID, args []any) ([]any, error)

// Config configures a Space.
type Config struct {
	// MaxReferencesPerNode bounds the references returned by one Browse
	// or BrowseNext result (0 = unlimited).
	MaxReferencesPerNode int

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.MaxReferencesPerNode < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Reference is a typed link from one node to another.
type Reference struct {
	Type      ua.NodeID
	IsForward bool
	Target    ua.ExpandedNodeID

	// TargetName and TargetClass describe a target on another server,
	// which the owning server cannot look up.
	TargetName  ua.QualifiedName
	TargetClass ua.NodeClass
}

// Node is one node of a server.
type Node struct {
	ID          ua.NodeID
	Class       ua.NodeClass
	BrowseName  ua.QualifiedName
	DisplayName string
	Description string

	// Value is the Value attribute of a variable.
	Value    any
	Writable bool

	// Method names the registered MethodFunc of a method node.
	Method string

	References []Reference
}

// Server is one server of a Space.
type Server struct {
	URI   string
	nodes map[ua.NodeID]*Node
}

// Node returns the node with the given identifier.
func (s *Server) Node(id ua.NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (s *Server) Len() int {
	return len(s.nodes)
}

// Space is an in-memory multi-server address space. It is safe for
// concurrent use.
type Space struct {
	mu      sync.RWMutex
	servers map[string]*Server
	order   []string
	methods map[string]MethodFunc
	points  map[string]*browseState
	stats   map[ua.ServiceKind]int

	config Config
}

// New creates an empty Space.
func New(config Config) (*Space, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Space{
		servers: make(map[string]*Server),
		methods: make(map[string]MethodFunc),
		points:  make(map[string]*browseState),
		stats:   make(map[ua.ServiceKind]int),
		config:  config,
	}, nil
}

// AddServer adds a server with the standard Root and Objects folders.
func (s *Space) AddServer(uri string) (*Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uri == "" {
		return nil, fmt.Errorf("%w: empty server uri", ErrInvalidConfig)
	}
	if _, ok := s.servers[uri]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateServer, uri)
	}

	srv := &Server{URI: uri, nodes: make(map[ua.NodeID]*Node)}
	srv.nodes[ua.RootFolder] = &Node{
		ID:          ua.RootFolder,
		Class:       ua.NodeClassObject,
		BrowseName:  ua.NewQualifiedName(0, "Root"),
		DisplayName: "Root",
	}
	srv.nodes[ua.ObjectsFolder] = &Node{
		ID:          ua.ObjectsFolder,
		Class:       ua.NodeClassObject,
		BrowseName:  ua.NewQualifiedName(0, "Objects"),
		DisplayName: "Objects",
	}
	link(srv, ua.RootFolder, ua.Organizes, ua.ObjectsFolder)

	s.servers[uri] = srv
	s.order = append(s.order, uri)
	return srv, nil
}

// AddNode adds a node to the server with the given URI.
func (s *Space) AddNode(serverURI string, n *Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, ok := s.servers[serverURI]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownServer, serverURI)
	}
	if _, ok := srv.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateNode, n.ID, serverURI)
	}
	if n.DisplayName == "" {
		n.DisplayName = n.BrowseName.Name
	}
	srv.nodes[n.ID] = n
	return nil
}

// AddReference adds a forward reference from source to target. A local
// target also gets the inverse reference. A target on another server must
// be described by name and class.
func (s *Space) AddReference(serverURI string, source ua.NodeID, refType ua.NodeID, target ua.ExpandedNodeID, name ua.QualifiedName, class ua.NodeClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, ok := s.servers[serverURI]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownServer, serverURI)
	}
	if !knownReferenceType(refType) {
		return fmt.Errorf("%w: reference type %s", ErrInvalidConfig, refType)
	}
	src, ok := srv.nodes[source]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnknownNode, source, serverURI)
	}

	if target.HasServer() && target.ServerURI != serverURI {
		if name.IsEmpty() {
			return fmt.Errorf("%w: remote target %s needs a browse name", ErrInvalidConfig, target)
		}
		src.References = append(src.References, Reference{
			Type:        refType,
			IsForward:   true,
			Target:      target,
			TargetName:  name,
			TargetClass: class,
		})
		return nil
	}

	if _, ok := srv.nodes[target.NodeID]; !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnknownNode, target.NodeID, serverURI)
	}
	link(srv, source, refType, target.NodeID)
	return nil
}

// link adds a local forward reference and its inverse.
func link(srv *Server, source, refType, target ua.NodeID) {
	src, dst := srv.nodes[source], srv.nodes[target]
	src.References = append(src.References, Reference{
		Type:      refType,
		IsForward: true,
		Target:    ua.NewExpandedNodeID(target, srv.URI),
	})
	dst.References = append(dst.References, Reference{
		Type:   refType,
		Target: ua.NewExpandedNodeID(source, srv.URI),
	})
}

// RegisterMethod registers the implementation of method nodes whose
// Method field is name.
func (s *Space) RegisterMethod(name string, fn MethodFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[name] = fn
}

// Servers returns the server URIs in the order they were added.
func (s *Space) Servers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Server returns the server with the given URI.
func (s *Space) Server(uri string) (*Server, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	srv, ok := s.servers[uri]
	return srv, ok
}

// Stats returns the number of requests received per service.
func (s *Space) Stats() map[ua.ServiceKind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[ua.ServiceKind]int, len(s.stats))
	for k, v := range s.stats {
		out[k] = v
	}
	return out
}

// Calls returns the total number of requests received.
func (s *Space) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, v := range s.stats {
		total += v
	}
	return total
}

// ResetStats clears the request counters.
func (s *Space) ResetStats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = make(map[ua.ServiceKind]int)
}

// serverFor returns the server that owns id. Must be called with mu held.
func (s *Space) serverFor(id ua.ExpandedNodeID) (*Server, ua.StatusCode) {
	if id.ServerIndex != 0 {
		return nil, ua.StatusBadServerURIInvalid
	}
	uri := id.ServerURI
	if uri == "" {
		if len(s.order) == 0 {
			return nil, ua.StatusBadServerURIInvalid
		}
		uri = s.order[0]
	}
	srv, ok := s.servers[uri]
	if !ok {
		return nil, ua.StatusBadServerURIInvalid
	}
	return srv, ua.StatusGood
}

// lookup returns the node id refers to. Must be called with mu held.
func (s *Space) lookup(id ua.ExpandedNodeID) (*Server, *Node, ua.StatusCode) {
	srv, status := s.serverFor(id)
	if !status.IsGood() {
		return nil, nil, status
	}
	if !id.NodeID.HasNamespace() {
		return nil, nil, ua.StatusBadNodeIDInvalid
	}
	n, ok := srv.nodes[id.NodeID]
	if !ok {
		return nil, nil, ua.StatusBadNodeIDUnknown
	}
	return srv, n, ua.StatusGood
}

// debugLog logs a debug message if logging is enabled.
func (s *Space) debugLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}
