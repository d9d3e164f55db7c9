package utils

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultMaxAttempts = 10

// NewDocumentID returns a collision resistant identifier for documents and
// comments whose caller did not supply one.
func NewDocumentID() string {
	return uuid.NewString()
}

// DateKey formats t as DDMMYY.
func DateKey(t time.Time) string {
	return t.Format("020106")
}

// NextOrderNumber computes the next "<PREFIX>-<DDMMYY>-<NNN>" candidate for the
// day of now. Only codes with the same prefix and day are considered. The
// result is a candidate: uniqueness is enforced by the store.
func NextOrderNumber(prefix string, existing []string, now time.Time) string {
	dayPrefix := fmt.Sprintf("%s-%s-", prefix, DateKey(now))

	maxIncrement := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, dayPrefix) {
			continue
		}
		n, err := strconv.Atoi(code[strings.LastIndex(code, "-")+1:])
		if err != nil {
			continue
		}
		if n > maxIncrement {
			maxIncrement = n
		}
	}

	return fmt.Sprintf("%s%03d", dayPrefix, maxIncrement+1)
}

// CodeGenerator draws random fixed-width numeric codes with an optional letter
// prefix, retrying a bounded number of times while the code is taken.
type CodeGenerator struct {
	Prefix      string
	Digits      int
	Min         int // inclusive
	Max         int // exclusive
	MaxAttempts int
	Intn        func(n int) int
}

func NewClientCodeGenerator() *CodeGenerator {
	return &CodeGenerator{Prefix: "C", Digits: 5, Min: 0, Max: 100000, MaxAttempts: defaultMaxAttempts, Intn: rand.IntN}
}

func NewServiceCodeGenerator() *CodeGenerator {
	return &CodeGenerator{Prefix: "S", Digits: 5, Min: 0, Max: 100000, MaxAttempts: defaultMaxAttempts, Intn: rand.IntN}
}

func NewAccountIDGenerator() *CodeGenerator {
	return &CodeGenerator{Digits: 5, Min: 10000, Max: 100000, MaxAttempts: defaultMaxAttempts, Intn: rand.IntN}
}

// Draw returns one random code without checking for collisions.
func (g *CodeGenerator) Draw() string {
	value := g.Min + g.Intn(g.Max-g.Min)
	return fmt.Sprintf("%s%0*d", g.Prefix, g.Digits, value)
}

// Next draws codes until taken reports a free one, or fails with
// ErrIDGenerationExhausted after MaxAttempts collisions.
func (g *CodeGenerator) Next(ctx context.Context, taken func(ctx context.Context, code string) (bool, error)) (string, error) {
	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		code := g.Draw()
		exists, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrIDGenerationExhausted
}
