package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	bench "github.com/fjl/dbbench-advisor"
)

func main() {
	var (
		prefix    = flag.String("prefix", bench.DefaultPrefix, "operation name prefix")
		tolerance = flag.Float64("tolerance", 0.05, "relative latency change to report")
	)
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <snapshot A> <snapshot B>")
		os.Exit(1)
	}

	dirA, dirB := flag.Arg(0), flag.Arg(1)
	a := mustReadSnapshot(dirA)
	b := mustReadSnapshot(dirB)

	printedAB := false
	for _, c := range bench.Diff(a, b, *prefix, *tolerance) {
		if !printedAB {
			fmt.Println("A =", dirA)
			fmt.Println("B =", dirB)
			printedAB = true
		}
		switch {
		case c.B == nil:
			fmt.Printf("%-10s %-24s only in A  latency=%.4f\n", c.Backend, c.Operation, c.A.Latency)
		case c.A == nil:
			fmt.Printf("%-10s %-24s only in B  latency=%.4f\n", c.Backend, c.Operation, c.B.Latency)
		default:
			fmt.Printf("%-10s %-24s latency %.4f -> %.4f (%+.1f%%)\n",
				c.Backend, c.Operation, c.A.Latency, c.B.Latency, c.LatencyDelta()*100)
		}
	}
	if !printedAB {
		fmt.Println("no differences")
	}
}

func mustReadSnapshot(dir string) bench.Tables {
	st, err := bench.OpenStore(dir)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()
	ts, err := st.Tables()
	if err != nil {
		log.Fatalf("can't read snapshot %s: %v", dir, err)
	}
	return ts
}
