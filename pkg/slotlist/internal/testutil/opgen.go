package testutil

import "fmt"

// OpGenConfig weights operation kinds. A kind with weight 0 is never
// generated.
type OpGenConfig struct {
	Weights [opKindCount]int

	// ValueAlphabet bounds the number of distinct values so RemoveValue
	// and duplicates get exercised.
	ValueAlphabet int
}

// DefaultOpGenConfig favors adds and removals so holes accumulate, with
// occasional restructuring.
func DefaultOpGenConfig() OpGenConfig {
	var cfg OpGenConfig

	cfg.Weights[OpAdd] = 30
	cfg.Weights[OpInsertAt] = 2
	cfg.Weights[OpRemoveAt] = 25
	cfg.Weights[OpRemoveValue] = 8
	cfg.Weights[OpGet] = 10
	cfg.Weights[OpSet] = 6
	cfg.Weights[OpCompact] = 2
	cfg.Weights[OpClear] = 1
	cfg.Weights[OpReserve] = 2
	cfg.Weights[OpSetThreshold] = 2
	cfg.Weights[OpRemoveWhere] = 3
	cfg.ValueAlphabet = 24

	return cfg
}

// OpGenerator decodes operations from a byte stream.
type OpGenerator struct {
	stream *ByteStream
	cfg    OpGenConfig
	total  int
}

// NewOpGenerator returns a generator over data.
func NewOpGenerator(data []byte, cfg OpGenConfig) *OpGenerator {
	total := 0
	for _, w := range cfg.Weights {
		total += w
	}

	if cfg.ValueAlphabet <= 0 {
		cfg.ValueAlphabet = 1
	}

	return &OpGenerator{stream: NewByteStream(data), cfg: cfg, total: total}
}

// Next returns the next operation for a list currently lenWithHoles slots
// long. It returns false once the input is exhausted.
//
// Positions range over [-1, lenWithHoles] so out-of-range errors are
// exercised at both ends.
func (g *OpGenerator) Next(lenWithHoles int) (Op, bool) {
	if !g.stream.HasMore() || g.total == 0 {
		return Op{}, false
	}

	kind := g.pickKind()
	op := Op{Kind: kind}

	switch kind {
	case OpAdd, OpRemoveValue:
		op.Value = g.nextValue()
	case OpInsertAt, OpSet:
		op.Pos = g.nextPos(lenWithHoles)
		op.Value = g.nextValue()
	case OpRemoveAt, OpGet:
		op.Pos = g.nextPos(lenWithHoles)
	case OpReserve:
		op.N = g.stream.NextIntN(lenWithHoles*2 + 8)
	case OpSetThreshold:
		op.N = g.stream.NextIntN(6)
	case OpRemoveWhere:
		op.Value = string(rune('a' + g.stream.NextIntN(3)))
	}

	return op, true
}

func (g *OpGenerator) pickKind() OpKind {
	roll := g.stream.NextIntN(g.total)

	for kind, w := range g.cfg.Weights {
		if roll < w {
			return OpKind(kind)
		}

		roll -= w
	}

	return OpAdd
}

func (g *OpGenerator) nextPos(lenWithHoles int) int {
	return g.stream.NextIntN(lenWithHoles+2) - 1
}

// nextValue returns values like "a07": the letter is the RemoveWhere
// prefix class.
func (g *OpGenerator) nextValue() string {
	n := g.stream.NextIntN(g.cfg.ValueAlphabet)

	return fmt.Sprintf("%c%02d", 'a'+n%3, n)
}
