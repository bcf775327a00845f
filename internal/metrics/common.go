package metrics

import (
	"strconv"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
)

// BaseCollector re-exports engine.BaseCollector so every collector in this
// package embeds the same no-op base without importing engine by name at
// every call site.
type BaseCollector = engine.BaseCollector

func cidKey(cid network.Cid) string { return strconv.FormatInt(int64(cid), 10) }

func nodeKey(u, v network.NodeID) string { return string(u) + "->" + string(v) }
