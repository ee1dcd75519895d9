// Command izsieve is a CLI harness over the iZ sieve family: plain and
// segmented enumeration, VX-segment gap-list generation, nearest-prime
// search, and parallel random prime generation.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Zprime137/iZ-lib/pkg/izmath"
	"github.com/Zprime137/iZ-lib/pkg/nextprime"
	"github.com/Zprime137/iZ-lib/pkg/primesearch"
	"github.com/Zprime137/iZ-lib/pkg/sieve"
	"github.com/Zprime137/iZ-lib/pkg/vxkernel"
)

const outputDir = "output"

// runID tags every log line this process emits, the same correlation-ID
// role github.com/google/uuid plays for pkg/primesearch's batch IDs.
var runID = uuid.New()

var (
	op          string
	n           uint64
	segmented   bool
	vx          uint64
	startY      string
	count       int
	base        string
	forward     bool
	bits        int
	workers     int
	extraRounds int
	class       int
)

func init() {
	flag.StringVar(&op, "op", "", "operation: enumerate, vx-range, next-prime, random-prime")
	flag.Uint64Var(&n, "n", 0, "upper bound for enumerate")
	flag.BoolVar(&segmented, "segmented", true, "use the segmented sieve for enumerate")
	flag.Uint64Var(&vx, "vx", 1_616_615, "slab width for vx-range")
	flag.StringVar(&startY, "start-y", "0", "starting slab index (decimal) for vx-range")
	flag.IntVar(&count, "count", 1, "number of slabs for vx-range")
	flag.StringVar(&base, "base", "", "base value (decimal) for next-prime")
	flag.BoolVar(&forward, "forward", true, "search forward (> base) for next-prime, else backward (< base)")
	flag.IntVar(&bits, "bits", 1024, "bit size for random-prime")
	flag.IntVar(&workers, "workers", 4, "worker count for random-prime")
	flag.IntVar(&extraRounds, "extra-rounds", 0, "extra Miller-Rabin confirmation rounds for random-prime")
	flag.IntVar(&class, "class", -1, "residue class for random-prime: -1 (iZ-) or +1 (iZ+)")
}

func main() {
	flag.Parse()
	log.SetPrefix(fmt.Sprintf("[run=%s] ", runID))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("izsieve: starting op=%q run=%s", op, runID)

	switch op {
	case "enumerate":
		runEnumerate()
	case "vx-range":
		runVXRange()
	case "next-prime":
		runNextPrime()
	case "random-prime":
		runRandomPrime()
	default:
		flag.Usage()
		log.Fatalf("izsieve: unknown or missing -op %q", op)
	}
}

func ensureOutputDir() string {
	if err := os.MkdirAll(outputDir, 0700); err != nil {
		log.Fatalf("izsieve: creating %s: %v", outputDir, err)
	}
	return outputDir
}

func runEnumerate() {
	if n == 0 {
		log.Fatal("izsieve: -n is required for enumerate")
	}

	sieveFn := sieve.SieveIZSegmented
	if !segmented {
		sieveFn = sieve.SieveIZ
	}
	pl, err := sieveFn(n)
	if err != nil {
		log.Fatalf("izsieve: sieve failed: %v", err)
	}

	dir := ensureOutputDir()
	path := filepath.Join(dir, fmt.Sprintf("primes_%d.bin", n))
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("izsieve: creating %s: %v", path, err)
	}
	defer f.Close()

	if _, err := pl.WriteTo(f); err != nil {
		log.Fatalf("izsieve: writing %s: %v", path, err)
	}
	fmt.Printf("wrote %d primes (last=%d) to %s\n", pl.Len(), pl.Last(), path)
}

func runVXRange() {
	y, ok := new(big.Int).SetString(startY, 10)
	if !ok {
		log.Fatalf("izsieve: -start-y %q is not a decimal integer", startY)
	}

	gapLists, err := vxkernel.SieveVXRange(vx, y, count)
	if err != nil {
		log.Fatalf("izsieve: vx-range failed: %v", err)
	}

	dir := ensureOutputDir()
	cur := new(big.Int).Set(y)
	for _, gl := range gapLists {
		path := vxkernel.CanonicalPath(filepath.Join(dir, fmt.Sprintf("slab_%s", cur.String())))
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("izsieve: creating %s: %v", path, err)
		}
		if _, err := gl.WriteTo(f); err != nil {
			f.Close()
			log.Fatalf("izsieve: writing %s: %v", path, err)
		}
		f.Close()
		fmt.Printf("slab y=%s: %d gaps written to %s\n", cur.String(), gl.Len(), path)
		cur.Add(cur, big.NewInt(1))
	}
}

func runNextPrime() {
	if base == "" {
		log.Fatal("izsieve: -base is required for next-prime")
	}
	b, ok := new(big.Int).SetString(base, 10)
	if !ok {
		log.Fatalf("izsieve: -base %q is not a decimal integer", base)
	}

	p, err := nextprime.IZNextPrime(b, forward)
	if err != nil {
		log.Fatalf("izsieve: next-prime failed: %v", err)
	}
	fmt.Println(p.String())
}

func runRandomPrime() {
	pID := izmath.NegClass
	if class > 0 {
		pID = izmath.PosClass
	}
	p, err := primesearch.RandomIZPrime(pID, bits, workers, extraRounds)
	if err != nil {
		log.Fatalf("izsieve: random-prime failed: %v", err)
	}
	fmt.Println(p.String())
}
