package main

import (
	"flag"
	"fmt"
	"log"

	bench "github.com/fjl/dbbench-advisor"
	"gonum.org/v1/gonum/stat"
)

func main() {
	var (
		config = flag.String("config", "", "config file (default: $DBB_CONFIG or built-in backend files)")
		env    = flag.String("env", ".env", "dotenv file, used when -config is not set")
		cfg    bench.Config
		err    error
	)
	flag.Parse()
	if *config != "" {
		cfg, err = bench.LoadConfig(*config)
	} else {
		cfg, err = bench.LoadConfigEnv(*env)
	}
	if err != nil {
		log.Fatal(err)
	}
	tables := bench.MustLoadTables(cfg)
	ops := bench.Operations(tables, cfg.Prefix)

	tables.Each(func(t *bench.Table) {
		fmt.Printf("-- %s (%d rows)\n", t.Backend, len(t.Rows))
		for _, op := range ops {
			rows := t.Select(cfg.Prefix + op)
			if len(rows) == 0 {
				continue
			}
			var (
				lat       []float64
				weight    []float64
				totalTime float64
				totalOps  float64
			)
			for _, r := range rows {
				lat = append(lat, r.Latency)
				weight = append(weight, r.Operations)
				totalTime += r.Elapsed
				totalOps += r.Operations
			}
			meanLat, stdLat := stat.MeanStdDev(lat, weight)
			fmt.Printf("  %-24s %4d samples  %12.0f ops  %8.3fs  %9.4f ms/op (+- %.4f)\n",
				op, len(rows), totalOps, totalTime, meanLat, stdLat)
		}
	})

	fmt.Println()
	for _, op := range ops {
		best, _ := bench.Recommend(tables, cfg.Prefix, op)
		fmt.Printf("best for %-16s %s\n", op+":", best)
	}
}
