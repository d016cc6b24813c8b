// Package heatgrid simulates 2D transient heat diffusion on a rectangular
// grid with an explicit 5-point finite-difference stencil, decomposed into
// blocks across cooperating owners that exchange halo borders every time
// step.
//
// # Quick Start
//
//	cfg := heatgrid.DefaultConfig()
//	cfg.Workers = 4
//	cfg.Threads = 2
//
//	sim, err := heatgrid.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	final, err := sim.Run(ctx, field.Initial(cfg.NX, cfg.NY))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The grid is cut into a near-square block grid, one block per owner. Every
// time step each owner:
//
//	POST      non-blocking sends/receives of its border cells
//	OVERLAP   computes the halo-independent interior while transfers fly
//	AWAIT     waits for the neighbor edges to arrive
//	EXTERIOR  computes the one-cell border strip
//	AWAIT     waits for its own sends to complete
//	SWAP      flips the read/write generations
//
// Owners share no field memory: they coordinate exclusively through
// point-to-point transfers over a pluggable transport — an in-process
// channel mesh by default, a NATS mesh for distributed runs. Inside each
// owner the compute passes fan out across a fixed worker pool over a
// static disjoint partition, so no cell is ever written twice in a step
// and no lock is needed.
//
// Cells on the outer edge of the global domain are a fixed zero boundary:
// they are never written and every block edge without a neighbor reads
// zeros in their place.
package heatgrid
