package main

import (
	"flag"
	"log"

	bench "github.com/fjl/dbbench-advisor"
)

func main() {
	var (
		config = flag.String("config", "", "config file (default: $DBB_CONFIG or built-in backend files)")
		env    = flag.String("env", ".env", "dotenv file, used when -config is not set")
		dir    = flag.String("dir", "snapshot", "snapshot database directory")
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
	if cfg.Snapshot != "" {
		log.Fatal("config already reads from a snapshot, nothing to import")
	}

	tables := bench.MustLoadTables(cfg)
	st, err := bench.OpenStore(*dir)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()
	if err := st.Put(tables); err != nil {
		log.Fatalf("can't write snapshot: %v", err)
	}
	log.Printf("stored %d backends in %s", tables.Len(), *dir)
}
