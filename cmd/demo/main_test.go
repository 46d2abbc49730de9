package main

import (
	"flag"
	"testing"
)

func TestSeedIfSet(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	seed := fs.Uint64("seed", 0, "")
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if got := seedIfSet(fs, "seed", *seed); got != nil {
		t.Fatalf("unset flag gave seed %v", *got)
	}

	fs = flag.NewFlagSet("demo", flag.ContinueOnError)
	seed = fs.Uint64("seed", 0, "")
	if err := fs.Parse([]string{"-seed", "0"}); err != nil {
		t.Fatal(err)
	}
	got := seedIfSet(fs, "seed", *seed)
	if got == nil || *got != 0 {
		t.Fatalf("explicit zero seed = %v", got)
	}
}

func TestRun_SmallSeeded(t *testing.T) {
	seed := uint64(0)
	if err := run(1000, &seed); err != nil {
		t.Fatalf("run: %v", err)
	}
}
