package workload

import (
	"math"
	"math/rand"
	"sort"

	"github.com/icnsim/icnsim/internal/detrng"
	"github.com/icnsim/icnsim/internal/ids"
)

// StationaryConfig configures a stationary Zipf-popularity request workload,
// covering the Workload configuration group: {name, alpha, n_contents,
// n_warmup, n_measured, rate, beta?, disconnection_rate?}.
type StationaryConfig struct {
	Alpha             float64
	NContents         int
	NWarmup           int
	NMeasured         int
	Rate              float64
	Beta              float64 // SIT-only: receiver re-sort skew
	DisconnectionRate float64 // SIT-only: probability a repeat request is replaced by a disconnection
}

// Stationary generates n_warmup + n_measured requests at uniformly-chosen
// receivers, content ids 1..n_contents drawn from a Zipf popularity
// distribution with exponent 1+alpha (P(c) proportional to c^-(1+alpha)).
// The first n_warmup events are emitted with Log=false.
type Stationary struct {
	cfg       StationaryConfig
	receivers []ids.NodeID
	zipf      *rand.Zipf
	rng       *rand.Rand
	emitted   int
	t         float64
}

// NewStationary builds a Stationary workload over the given receiver nodes,
// using the SubsystemWorkload RNG stream derived from masterSeed.
func NewStationary(cfg StationaryConfig, receivers []ids.NodeID, masterSeed int64) *Stationary {
	rng := detrng.NewPartitioned(masterSeed).ForSubsystem(detrng.SubsystemWorkload)
	s := 1 + cfg.Alpha
	if s <= 1 {
		s = 1.01 // rand.NewZipf requires s > 1
	}
	n := uint64(cfg.NContents)
	if n == 0 {
		n = 1
	}
	z := rand.NewZipf(rng, s, 1, n-1)

	sorted := append([]ids.NodeID(nil), receivers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return &Stationary{cfg: cfg, receivers: sorted, zipf: z, rng: rng}
}

// Next implements Iterator.
func (s *Stationary) Next() (TimedEvent, bool) {
	total := s.cfg.NWarmup + s.cfg.NMeasured
	if s.emitted >= total || len(s.receivers) == 0 {
		return TimedEvent{}, false
	}

	receiver := s.receivers[s.rng.Intn(len(s.receivers))]
	content := ids.Cid(s.zipf.Uint64()) + 1 // content ids numbered starting at 1
	log := s.emitted >= s.cfg.NWarmup

	te := TimedEvent{T: s.t, Event: Event{Receiver: receiver, Content: content, Log: log}}
	s.emitted++
	if s.cfg.Rate > 0 {
		s.t += 1.0 / s.cfg.Rate
	}
	return te, true
}

// StationarySit wraps Stationary for SIT-family strategies: receivers are
// weighted by Beta rather than chosen uniformly, and a drawn request for a
// content the receiver has already requested is, with probability
// DisconnectionRate, emitted as a synthetic disconnection event instead.
//
// Note: StationarySitWorkload re-sorts receivers by beta
// with a comment claiming "decreasing order" while the code's sort call
// itself passes reverse=False (ascending). This implementation preserves the
// *code's* ascending-order behavior deliberately — receiver weight increases
// with ascending sort position, i.e. the last (largest id) receiver is most
// favored when beta > 0 — and documents that here rather than "fixing" it to
// match the stale comment.
type StationarySit struct {
	base        *Stationary
	weights     []float64
	cumWeights  []float64
	rng         *rand.Rand
	outstanding map[ids.NodeID]map[ids.Cid]int // connection counters per receiver/content
}

// NewStationarySit builds a SIT-aware stationary workload.
func NewStationarySit(cfg StationaryConfig, receivers []ids.NodeID, masterSeed int64) *StationarySit {
	base := NewStationary(cfg, receivers, masterSeed)

	weights := make([]float64, len(base.receivers))
	cum := make([]float64, len(base.receivers))
	total := 0.0
	for i := range base.receivers {
		// ascending sort position -> weight (i+1)^beta; beta=0 recovers uniform.
		w := 1.0
		if cfg.Beta != 0 {
			w = math.Pow(float64(i+1), cfg.Beta)
		}
		weights[i] = w
		total += w
		cum[i] = total
	}

	return &StationarySit{
		base:        base,
		weights:     weights,
		cumWeights:  cum,
		rng:         base.rng,
		outstanding: make(map[ids.NodeID]map[ids.Cid]int),
	}
}

func (s *StationarySit) weightedReceiver() ids.NodeID {
	if len(s.base.receivers) == 0 {
		return ""
	}
	total := s.cumWeights[len(s.cumWeights)-1]
	r := s.rng.Float64() * total
	idx := sort.SearchFloat64s(s.cumWeights, r)
	if idx >= len(s.base.receivers) {
		idx = len(s.base.receivers) - 1
	}
	return s.base.receivers[idx]
}

// Next implements Iterator, mixing in disconnection events per
// DisconnectionRate.
func (s *StationarySit) Next() (TimedEvent, bool) {
	total := s.base.cfg.NWarmup + s.base.cfg.NMeasured
	if s.base.emitted >= total {
		return TimedEvent{}, false
	}

	receiver := s.weightedReceiver()
	content := ids.Cid(s.base.zipf.Uint64()) + 1
	log := s.base.emitted >= s.base.cfg.NWarmup
	s.base.emitted++
	t := s.base.t
	if s.base.cfg.Rate > 0 {
		s.base.t += 1.0 / s.base.cfg.Rate
	}

	if s.base.cfg.DisconnectionRate > 0 {
		if byReceiver, ok := s.outstanding[receiver]; ok && byReceiver[content] > 0 && s.rng.Float64() < s.base.cfg.DisconnectionRate {
			conns := map[ids.NodeID]int{receiver: byReceiver[content]}
			return TimedEvent{T: t, Event: Event{
				Receiver:    receiver,
				Content:     DisconnectionContent,
				Log:         log,
				Connections: conns,
			}}, true
		}
	}

	if s.outstanding[receiver] == nil {
		s.outstanding[receiver] = make(map[ids.Cid]int)
	}
	s.outstanding[receiver][content]++

	return TimedEvent{T: t, Event: Event{Receiver: receiver, Content: content, Log: log}}, true
}
