// Package nextprime implements the nearest-probable-prime search
// a fast edge-case path followed by a VX-base walk
// bounded by a segment cap.
package nextprime

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/izlog"
	"github.com/Zprime137/iZ-lib/pkg/izmath"
	"github.com/Zprime137/iZ-lib/pkg/vxbase"
)

var log = izlog.New("nextprime")

const (
	baseVX     = 5 * 7 * 11 * 13
	segmentCap = 1000
	testRounds = 25
)

var (
	assetsOnce   sync.Once
	sharedAssets *vxbase.Assets
	assetsErr    error
)

func getAssets() (*vxbase.Assets, error) {
	assetsOnce.Do(func() {
		sharedAssets, assetsErr = vxbase.BuildAssets(baseVX)
		if assetsErr != nil {
			log.Errorf("building shared vx=%d assets: %v", baseVX, assetsErr)
		}
	})
	return sharedAssets, assetsErr
}

// IZNextPrime finds the nearest probable prime > base (forward=true) or
// < base (forward=false), within a cap of segmentCap vx-sized segments
// (roughly 30 million natural numbers scanned at baseVX).
func IZNextPrime(base *big.Int, forward bool) (*big.Int, error) {
	if base.Sign() < 0 {
		return nil, fmt.Errorf("nextprime: base=%s: %w", base, izerr.ErrInvalidArgument)
	}

	mod6 := new(big.Int).Mod(base, big.NewInt(6)).Int64()
	if mod6 == 5 && forward {
		candidate := new(big.Int).Add(base, big.NewInt(2))
		if candidate.ProbablyPrime(testRounds) {
			return candidate, nil
		}
	}
	if mod6 == 1 && !forward {
		candidate := new(big.Int).Sub(base, big.NewInt(2))
		if candidate.Sign() > 0 && candidate.ProbablyPrime(testRounds) {
			return candidate, nil
		}
	}

	// The walk below starts one column index past base/6; first test that
	// index's own candidates on the far side of base.
	k6 := new(big.Int).Sub(base, big.NewInt(mod6))
	var near []int64
	switch {
	case forward && mod6 == 0:
		near = []int64{1}
	case !forward && mod6 == 0:
		near = []int64{-1}
	case !forward && mod6 >= 2:
		near = []int64{1, -1}
	}
	for _, d := range near {
		if c := new(big.Int).Add(k6, big.NewInt(d)); c.Sign() > 0 && c.ProbablyPrime(testRounds) {
			return c, nil
		}
	}

	assets, err := getAssets()
	if err != nil {
		return nil, err
	}
	vxBig := big.NewInt(baseVX)

	base6 := new(big.Int).Div(base, big.NewInt(6))
	yvx := new(big.Int).Div(base6, vxBig)
	yvx.Mul(yvx, vxBig)
	xStart := new(big.Int).Mod(base6, vxBig).Int64()

	if forward {
		xStart++
	} else {
		xStart--
	}

	for seg := 0; seg < segmentCap; seg++ {
		var xLo, xHi int64
		if forward {
			xHi = baseVX
			if seg == 0 {
				xLo = xStart
			} else {
				xLo = 1
			}
			for x := xLo; x <= xHi; x++ {
				ux := uint64(x)
				if assets.BaseX5.Get(ux) {
					c := izmath.IZBig(new(big.Int).Add(yvx, big.NewInt(x)), izmath.NegClass)
					if c.Cmp(base) > 0 && c.ProbablyPrime(testRounds) {
						return c, nil
					}
				}
				if assets.BaseX7.Get(ux) {
					c := izmath.IZBig(new(big.Int).Add(yvx, big.NewInt(x)), izmath.PosClass)
					if c.ProbablyPrime(testRounds) {
						return c, nil
					}
				}
			}
			yvx.Add(yvx, vxBig)
		} else {
			xLo = 1
			if seg == 0 {
				xHi = xStart
			} else {
				xHi = baseVX
			}
			for x := xHi; x >= xLo; x-- {
				ux := uint64(x)
				if assets.BaseX7.Get(ux) {
					c := izmath.IZBig(new(big.Int).Add(yvx, big.NewInt(x)), izmath.PosClass)
					if c.Sign() > 0 && c.ProbablyPrime(testRounds) {
						return c, nil
					}
				}
				if assets.BaseX5.Get(ux) {
					c := izmath.IZBig(new(big.Int).Add(yvx, big.NewInt(x)), izmath.NegClass)
					if c.Sign() > 0 && c.ProbablyPrime(testRounds) {
						return c, nil
					}
				}
			}
			yvx.Sub(yvx, vxBig)
		}
	}

	return nil, fmt.Errorf("nextprime: base=%s forward=%v: %w", base, forward, izerr.ErrNotFound)
}

// IZRandomNextPrime draws a uniformly random bitSize-bit integer and
// returns the nearest probable prime > it.
func IZRandomNextPrime(bitSize int) (*big.Int, error) {
	if bitSize < 10 {
		return nil, fmt.Errorf("nextprime: bitSize=%d: %w", bitSize, izerr.ErrTooSmall)
	}
	base, err := randBitSizeInt(bitSize)
	if err != nil {
		return nil, err
	}
	return IZNextPrime(base, true)
}

func randBitSizeInt(bitSize int) (*big.Int, error) {
	n, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(bitSize)))
	if err != nil {
		return nil, fmt.Errorf("nextprime: reading OS entropy: %w", izerr.ErrIOFailed)
	}
	n.SetBit(n, bitSize-1, 1)
	return n, nil
}
