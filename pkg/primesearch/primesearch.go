// Package primesearch implements the two random-prime-generation
// algorithms: a vertical single-column search and
// a parallel race across independent workers, first finisher wins.
package primesearch

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/izlog"
	"github.com/Zprime137/iZ-lib/pkg/izmath"
)

var log = izlog.New("primesearch")

const (
	searchAttemptCap = 1_000_000
	testRounds       = 25
	minWorkers       = 1
	maxWorkers       = 16
)

var (
	bigSix = big.NewInt(6)
	bigOne = big.NewInt(1)
)

// SearchIZPrime draws a uniformly random starting column x0 in [0, vx),
// advances to the nearest column coprime with vx, then walks that column
// in strides of 6*vx (which keeps both the residue class pID and the
// coprimality with vx) looking for a probable prime. Gives up after
// searchAttemptCap tries and reports izerr.ErrNotFound, which callers
// may treat as retryable. ctx is checked once per attempt so a losing
// worker in a raceWorkers call stops promptly instead of running the CPU-
// bound search to completion after another worker has already won;
// pass context.Background() for a standalone, uncancellable search.
func SearchIZPrime(ctx context.Context, pID int, vx *big.Int) (*big.Int, error) {
	if pID != izmath.NegClass && pID != izmath.PosClass {
		return nil, fmt.Errorf("primesearch: p_id=%d: %w", pID, izerr.ErrInvalidArgument)
	}
	if vx.Sign() <= 0 {
		return nil, fmt.Errorf("primesearch: vx=%s: %w", vx, izerr.ErrInvalidArgument)
	}

	x0, err := rand.Int(rand.Reader, vx)
	if err != nil {
		return nil, fmt.Errorf("primesearch: reading OS entropy: %w", izerr.ErrIOFailed)
	}
	c := new(big.Int).Mul(x0, bigSix)
	c.Add(c, big.NewInt(int64(pID)))
	if c.Sign() < 0 {
		c.Add(c, bigSix)
	}

	gcd := new(big.Int)
	for {
		gcd.GCD(nil, nil, c, vx)
		if gcd.Cmp(bigOne) == 0 {
			break
		}
		c.Add(c, bigSix)
	}

	stride := new(big.Int).Mul(vx, bigSix)
	for attempt := 0; attempt < searchAttemptCap; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("primesearch: p_id=%d vx=%s: %w", pID, vx, err)
		}
		c.Add(c, stride)
		if c.ProbablyPrime(testRounds) {
			return new(big.Int).Set(c), nil
		}
	}
	return nil, fmt.Errorf("primesearch: p_id=%d vx=%s: %w", pID, vx, izerr.ErrNotFound)
}

// RandomIZPrime produces a probable prime of roughly bitSize bits on
// residue class pID. bitSize below 10 reports izerr.ErrTooSmall; workers
// is clamped to [1, 16]. With workers <= 1 it runs SearchIZPrime in-process; otherwise
// it races workers independent searches, all on the same pID, and
// returns the first success, cancelling the rest. extraRounds, if > 0,
// runs additional Miller-Rabin confirmation rounds on the winner beyond
// the shared testRounds constant.
func RandomIZPrime(pID, bitSize, workers, extraRounds int) (*big.Int, error) {
	if pID != izmath.NegClass && pID != izmath.PosClass {
		return nil, fmt.Errorf("primesearch: p_id=%d: %w", pID, izerr.ErrInvalidArgument)
	}
	if bitSize < 10 {
		return nil, fmt.Errorf("primesearch: bit_size=%d: %w", bitSize, izerr.ErrTooSmall)
	}
	if workers < minWorkers {
		workers = minWorkers
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	vx := izmath.ComputeMaxVXBig(bitSize)

	if workers <= 1 {
		p, err := SearchIZPrime(context.Background(), pID, vx)
		if err != nil {
			return nil, err
		}
		return confirm(p, extraRounds)
	}

	winner, err := raceWorkers(pID, vx, workers)
	if err != nil {
		return nil, err
	}
	return confirm(winner, extraRounds)
}

// raceWorkers spawns workers independent SearchIZPrime calls, all on
// residue class pID, over a single unidirectional results channel; the
// coordinator takes the first candidate, cancels the context, and does
// not wait for or merge any other result — no voting, first worker wins.
// Cancellation is prompt: each worker's SearchIZPrime call shares ctx and
// checks it once per attempt, so a losing worker stops within one
// attempt of cancel() firing rather than running to searchAttemptCap.
func raceWorkers(pID int, vx *big.Int, workers int) (*big.Int, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *big.Int, workers)
	g, _ := errgroup.WithContext(ctx)
	batchID := uuid.New()

	for i := 0; i < workers; i++ {
		worker := i
		g.Go(func() error {
			p, err := SearchIZPrime(ctx, pID, vx)
			if err != nil {
				log.Warnf("batch %s worker %d: %v", batchID, worker, err)
				return nil
			}
			select {
			case results <- p:
			case <-ctx.Done():
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()

	select {
	case winner := <-results:
		cancel()
		return winner, nil
	case <-done:
		return nil, fmt.Errorf("primesearch: batch %s, %d workers exhausted: %w", batchID, workers, izerr.ErrNotFound)
	}
}

func confirm(p *big.Int, extraRounds int) (*big.Int, error) {
	if extraRounds <= 0 {
		return p, nil
	}
	if !p.ProbablyPrime(extraRounds) {
		return nil, fmt.Errorf("primesearch: candidate failed %d extra confirmation rounds: %w", extraRounds, izerr.ErrNotFound)
	}
	return p, nil
}
