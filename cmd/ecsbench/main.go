// Command ecsbench stress-tests the registry's bind/unbind/query churn
// under github.com/pkg/profile.
//
//	go build ./cmd/ecsbench
//	./ecsbench -profile=mem -rounds=20 -iters=5000 -entities=2000
//	go tool pprof -http=:8000 ./ecsbench mem.pprof
package main

import (
	"flag"
	"log"

	"github.com/pkg/profile"

	"sparsecs/ecs"
)

type transform struct{ X, Y, Z float64 }
type rigidBody struct{ Vx, Vy, Vz float64 }

func main() {
	rounds := flag.Int("rounds", 10, "number of independent registry churns")
	iters := flag.Int("iters", 10000, "bind/query/unbind cycles per round")
	entities := flag.Int("entities", 1000, "entities created per cycle")
	kind := flag.String("profile", "cpu", "profile kind: cpu, mem, or none")
	flag.Parse()

	var stop interface{ Stop() }
	switch *kind {
	case "cpu":
		stop = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		stop = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	case "none":
		stop = noopStopper{}
	default:
		log.Fatalf("[ECSBENCH] unknown -profile kind %q", *kind)
	}

	log.Printf("[ECSBENCH] starting: rounds=%d iters=%d entities=%d profile=%s", *rounds, *iters, *entities, *kind)
	run(*rounds, *iters, *entities)
	stop.Stop()
	log.Printf("[ECSBENCH] done")
}

type noopStopper struct{}

func (noopStopper) Stop() {}

func run(rounds, iters, numEntities int) {
	for round := 0; round < rounds; round++ {
		r := ecs.NewRegistry[uint32]()

		for iter := 0; iter < iters; iter++ {
			ids := make([]uint32, numEntities)
			for i := range ids {
				ids[i] = r.MakeEntity()
				_ = ecs.Bind[uint32, transform](r, ids[i], transform{X: float64(i)})
				if i%2 == 0 {
					_ = ecs.Bind[uint32, rigidBody](r, ids[i], rigidBody{Vx: 1})
				}
			}

			for _, tup := range ecs.Query2[uint32, transform, rigidBody](r) {
				tup.C1.X += tup.C2.Vx
			}

			for _, id := range ids {
				r.KillEntity(id)
			}
		}

		if round%max(1, rounds/10) == 0 {
			log.Printf("[ECSBENCH] round %d/%d done, stats=%+v", round+1, rounds, r.Stats())
		}
	}
}
