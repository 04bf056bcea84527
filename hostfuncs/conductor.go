package hostfuncs

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/zomekit-dev/zome-sdk/application/zome"
	"github.com/zomekit-dev/zome-sdk/hash"
)

// Conductor is an in-memory host. It owns agent keys, one source chain per
// agent, a shared link store, and a signal buffer. All methods are safe for
// concurrent use; each host call holds the conductor lock for its duration,
// which also gives calls the atomicity a real conductor provides per cell.
// The exception is remote calls, which rebind the process-global dispatcher
// trampoline for the nested invocation: tests that exercise call_remote
// must drive their host calls from a single goroutine.
type Conductor struct {
	mu         sync.Mutex
	cells      map[string]*cell // keyed by agent hash text form
	signals    *SignalBuffer
	logger     *slog.Logger
	now        func() time.Time
	entropy    *ulid.MonotonicEntropy
	dnaName    string
	properties map[string]any
}

// cell is one agent's slice of the conductor: its key pair, source chain,
// and optionally a zome definition that remote calls dispatch to.
type cell struct {
	agent   hash.Hash
	pub     ed25519.PublicKey
	priv    ed25519.PrivateKey
	chain   *sourceChain
	zomeDef *zome.ZomeDefinition
}

// ConductorOption configures a Conductor.
type ConductorOption func(*conductorConfig)

type conductorConfig struct {
	signalLimit int
	logger      *slog.Logger
	now         func() time.Time
	dnaName     string
	properties  map[string]any
}

// WithSignalBufferLimit caps how many emitted signals the conductor retains.
func WithSignalBufferLimit(limit int) ConductorOption {
	return func(c *conductorConfig) {
		c.signalLimit = limit
	}
}

// WithLogger routes guest log messages to the given logger.
func WithLogger(logger *slog.Logger) ConductorOption {
	return func(c *conductorConfig) {
		c.logger = logger
	}
}

// WithClock overrides the conductor's time source. Tests use this to get
// deterministic action timestamps.
func WithClock(now func() time.Time) ConductorOption {
	return func(c *conductorConfig) {
		c.now = now
	}
}

// WithDNA sets the DNA name and properties the conductor reports through
// the dna_info capability.
func WithDNA(name string, properties map[string]any) ConductorOption {
	return func(c *conductorConfig) {
		c.dnaName = name
		c.properties = properties
	}
}

// NewConductor creates an empty conductor with no agents.
func NewConductor(opts ...ConductorOption) *Conductor {
	cfg := conductorConfig{
		signalLimit: DefaultSignalBufferLimit,
		logger:      slog.Default(),
		now:         time.Now,
		dnaName:     "test-dna",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Conductor{
		cells:      make(map[string]*cell),
		signals:    NewSignalBuffer(cfg.signalLimit),
		logger:     cfg.logger,
		now:        cfg.now,
		entropy:    ulid.Monotonic(rand.Reader, 0),
		dnaName:    cfg.dnaName,
		properties: cfg.properties,
	}
}

// GenerateAgent creates a fresh ed25519 key pair, installs a cell for it,
// and returns the agent hash (the hash wraps the public key bytes).
func (c *Conductor) GenerateAgent() (hash.Hash, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return hash.Hash{}, fmt.Errorf("generate agent key: %w", err)
	}

	agent, err := hash.FromDigest(hash.KindAgent, pub)
	if err != nil {
		return hash.Hash{}, fmt.Errorf("derive agent hash: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells[agent.String()] = &cell{
		agent: agent,
		pub:   pub,
		priv:  priv,
		chain: newSourceChain(agent),
	}
	return agent, nil
}

// InstallZome attaches a zome definition to an agent's cell. Remote calls
// targeting that agent dispatch into the definition's registered functions.
func (c *Conductor) InstallZome(agent hash.Hash, def *zome.ZomeDefinition) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl, ok := c.cells[agent.String()]
	if !ok {
		return fmt.Errorf("no cell for agent %s", agent)
	}
	cl.zomeDef = def
	return nil
}

// Signals drains the buffered signals emitted so far.
func (c *Conductor) Signals() []SignalRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signals.Drain()
}

// ChainLength reports how many actions an agent has committed.
func (c *Conductor) ChainLength(agent hash.Hash) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl, ok := c.cells[agent.String()]
	if !ok {
		return 0
	}
	return len(cl.chain.records)
}

func (c *Conductor) cellFor(agent hash.Hash) (*cell, bool) {
	cl, ok := c.cells[agent.String()]
	return cl, ok
}

// nextRequestID mints a lexicographically sortable call identifier.
func (c *Conductor) nextRequestID() string {
	return ulid.MustNew(ulid.Timestamp(c.now()), c.entropy).String()
}
