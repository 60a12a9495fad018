package main

import (
	"flag"
	"log"
	"os"

	bench "github.com/fjl/dbbench-advisor"
	"gonum.org/v1/plot/vg"
)

func main() {
	var (
		width  = flag.Int("width", 38, "width of plot in cm")
		height = flag.Int("height", 20, "height of plot in cm")
		config = flag.String("config", "", "config file (default: $DBB_CONFIG or built-in backend files)")
		env    = flag.String("env", ".env", "dotenv file, used when -config is not set")
		outdir = flag.String("out", ".", "output directory")
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
	if err := os.MkdirAll(*outdir, 0755); err != nil {
		log.Fatalf("can't create output dir: %v", err)
	}

	tables := bench.MustLoadTables(cfg)
	tables.Each(func(t *bench.Table) {
		if len(t.Rows) == 0 {
			log.Printf("Warning: backend %s has no %s rows", t.Backend, cfg.Prefix)
		}
	})
	files, err := bench.SaveCharts(*outdir, tables, vg.Length(*width)*vg.Centimeter, vg.Length(*height)*vg.Centimeter)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range files {
		log.Printf("wrote %s", f)
	}
}
