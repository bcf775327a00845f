// Package topofile loads a network topology from a strict YAML document:
// the serialized form of the node/edge shape network.TopologyBuilder
// assembles. Unknown keys are rejected the way LoadPolicyBundle rejects
// them, via yaml.v3's KnownFields decoder option.
package topofile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/icnsim/icnsim/internal/network"
	"gopkg.in/yaml.v3"
)

// NodeSpec is one node's YAML representation.
type NodeSpec struct {
	ID        string        `yaml:"id"`
	Stack     string        `yaml:"stack"` // "receiver" | "router" | "source"
	CacheSize int           `yaml:"cache_size,omitempty"`
	RsnSize   int           `yaml:"rsn_size,omitempty"`
	Contents  []network.Cid `yaml:"contents,omitempty"`
}

// EdgeSpec is one undirected link's YAML representation.
type EdgeSpec struct {
	U     string  `yaml:"u"`
	V     string  `yaml:"v"`
	Delay float64 `yaml:"delay,omitempty"`
	Type  string  `yaml:"type,omitempty"` // "internal" (default) | "external"
}

// Doc is the top-level topology document.
type Doc struct {
	Nodes []NodeSpec `yaml:"nodes"`
	Edges []EdgeSpec `yaml:"edges"`
}

func parseStack(s string) (network.StackKind, error) {
	switch s {
	case "receiver":
		return network.Receiver, nil
	case "router":
		return network.Router, nil
	case "source":
		return network.Source, nil
	default:
		return 0, fmt.Errorf("topofile: unknown stack kind %q", s)
	}
}

func parseEdgeType(s string) (network.EdgeType, error) {
	switch s {
	case "", "internal":
		return network.Internal, nil
	case "external":
		return network.External, nil
	default:
		return 0, fmt.Errorf("topofile: unknown edge type %q", s)
	}
}

// Load reads and builds a Topology from a YAML file at path.
func Load(path string) (*network.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("topofile: %w", err)
	}
	return Parse(data)
}

// Parse builds a Topology from raw YAML bytes, rejecting unknown fields.
func Parse(data []byte) (*network.Topology, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Doc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("topofile: decode: %w", err)
	}

	b := network.NewTopologyBuilder()
	for _, n := range doc.Nodes {
		stack, err := parseStack(n.Stack)
		if err != nil {
			return nil, err
		}
		attrs := network.NodeAttrs{Stack: stack, CacheSize: n.CacheSize, RsnSize: n.RsnSize}
		if len(n.Contents) > 0 {
			attrs.Contents = make(map[network.Cid]bool, len(n.Contents))
			for _, c := range n.Contents {
				attrs.Contents[c] = true
			}
		}
		if err := b.AddNode(network.NodeID(n.ID), attrs); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		typ, err := parseEdgeType(e.Type)
		if err != nil {
			return nil, err
		}
		if err := b.AddEdge(network.NodeID(e.U), network.NodeID(e.V), e.Delay, typ); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// ReceiverIDs returns every node id whose stack is "receiver", in
// topology order — the set a workload generator draws requests from.
func ReceiverIDs(t *network.Topology) []network.NodeID {
	var out []network.NodeID
	for _, n := range t.Nodes() {
		if attrs, ok := t.Attrs(n); ok && attrs.Stack == network.Receiver {
			out = append(out, n)
		}
	}
	return out
}
