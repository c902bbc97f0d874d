// Package ua defines the addressing and service data types shared by the
// resolution core and its service collaborators.
//
// The types follow the information model of industrial-automation servers:
//
//   - NodeID: a server-local identifier (numeric, string, GUID or opaque)
//     qualified by a namespace index and/or namespace URI
//   - ExpandedNodeID: a NodeID bound to its owning server
//   - QualifiedName: a namespace-qualified browse name
//   - RelativePath: a chain of (reference type, browse name) steps
//
// # Text Forms
//
// NodeIDs use the familiar "ns=2;i=5" notation:
//
//	i=85                      numeric, namespace 0
//	ns=2;s=Boiler.Temperature string identifier
//	nsu=urn:plant;i=1001      namespace given by URI
//	ns=1;g=09087e75-8e5e-499b-954f-f2a9603db28a
//	ns=1;b=M/RbKBsRVkePCePcx24oRA==
//
// An ExpandedNodeID appends the owning server URI: "ns=2;i=5@urn:srv".
//
// Relative paths use the standard browse-path grammar:
//
//	/2:Boiler/2:Temperature    hierarchical references
//	.2:Setpoint                aggregates
//	<Organizes>2:Temperature   explicit reference type
//	<!HasComponent>2:Parent    inverse direction
//	<#Organizes>2:Sensors      exclude subtypes
//
// # Status Codes
//
// StatusCode carries both the codes reported by servers (passed through
// untouched) and the codes produced locally by the resolution core.
package ua
