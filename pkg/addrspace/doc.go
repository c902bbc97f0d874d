// Package addrspace provides an in-memory, multi-server address space that
// implements the service.Invoker contract.
//
// A Space holds one or more servers, each identified by its URI. Every
// server owns a set of nodes linked by typed references. A reference may
// point to a node on another server; TranslateBrowsePaths stops at such a
// reference and returns the remote node together with the index of the
// first path element it did not process, the way a real server reports a
// server boundary.
//
// Spaces are usually loaded from YAML:
//
//	servers:
//	  - uri: urn:plant
//	    nodes:
//	      - id: ns=2;s=Boiler
//	        browse_name: 2:Boiler
//	        class: Object
//	        parent: i=85
//	      - id: ns=2;s=Boiler.Temperature
//	        browse_name: 2:Temperature
//	        class: Variable
//	        parent: ns=2;s=Boiler
//	        parent_ref: HasComponent
//	        value: 71.5
//
// Requests are routed by the server URI of each node identifier; an
// identifier without a URI goes to the first server. Browse returns at
// most Config.MaxReferencesPerNode references per call and hands out a
// CBOR-encoded continuation point for the rest.
//
// Stats counts the requests per service, which makes a Space useful for
// asserting how often a client went to the network.
package addrspace
