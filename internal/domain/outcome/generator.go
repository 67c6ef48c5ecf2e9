// Package outcome produces the simulated process narratives and randomized
// results returned by the back-office assistant. Generation is a pure
// function of the catalog record and the random source.
package outcome

// Generator maps catalog records to simulated outcomes. It holds no mutable
// state of its own; concurrent use is safe when its Rand is.
type Generator struct {
	rand         Rand
	verification *Table[verificationTemplate]
}

// Option configures a Generator.
type Option func(*config)

type config struct {
	rand        Rand
	successRate float64
}

// WithRand sets the random source. The default is the process-wide
// math/rand/v2 generator.
func WithRand(r Rand) Option {
	return func(c *config) { c.rand = r }
}

// WithVerificationSuccessRate sets the probability that an eligibility check
// succeeds. It must lie within [0, 1].
func WithVerificationSuccessRate(p float64) Option {
	return func(c *config) { c.successRate = p }
}

func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := config{rand: globalRand{}, successRate: DefaultVerificationSuccessRate}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.rand == nil {
		cfg.rand = globalRand{}
	}
	table, err := verificationTable(cfg.successRate)
	if err != nil {
		return nil, err
	}
	return &Generator{rand: cfg.rand, verification: table}, nil
}

// SuccessRate returns the configured verification success probability.
func (g *Generator) SuccessRate() float64 {
	return g.verification.Probability(0)
}

// StopAck acknowledges a stop request.
type StopAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Stop acknowledges a request to stop the running process. Processes finish
// synchronously, so there is never anything to stop.
func Stop() StopAck {
	return StopAck{Status: "stopped", Message: "AI process stopped by user"}
}
